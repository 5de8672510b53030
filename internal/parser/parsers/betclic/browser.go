package betclic

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dmcruz/livebet/internal/pkg/config"
)

// Named steps of the per-match browser sequence.
const (
	StepNavigate      = "navigate"
	StepAcceptCookies = "accept_cookies"
	StepOpenStats     = "open_stats"
	StepExtractText   = "extract_text"
)

// Page anchors of the Betclic match page. These track the live site and
// break when its markup changes; breakage shows up as non-fatal step
// failures, not crashes.
const (
	consentButtonSelector = "#popin_tc_privacy_button_2"
	statsButtonSelector   = "sports-events-event-buttons button:nth-of-type(2)"
	statsModalSelector    = "sports-match-stats-modal"
)

// StepOutcome records whether one browser step completed.
type StepOutcome struct {
	Step  string `json:"step"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// StatsPageResult is the best-effort outcome of one match page visit. Text
// holds the statistics panel's rendered text when it could be located.
type StatsPageResult struct {
	Text  string        `json:"text"`
	Steps []StepOutcome `json:"steps"`
}

// HasText reports whether the statistics panel yielded any text.
func (r *StatsPageResult) HasText() bool {
	return r != nil && r.Text != ""
}

// StatsBrowser drives a headless browser through a match page to the
// statistics panel.
type StatsBrowser struct {
	cfg        config.BrowserConfig
	userAgents []string
}

func NewStatsBrowser(cfg *config.Config) *StatsBrowser {
	userAgents := cfg.Betclic.UserAgents
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &StatsBrowser{cfg: cfg.Browser, userAgents: userAgents}
}

// FetchStatsText runs the acquisition sequence against one match page:
// navigate, dismiss the consent dialog, open the statistics view, read the
// panel text. Only navigation is fatal; every later step records its
// outcome and the sequence proceeds regardless. The browser instance is
// released on every exit path.
//
// The upstream source answers rapid sequential visits with an access
// denial; callers own the pacing between calls.
func (b *StatsBrowser) FetchStatsText(ctx context.Context, matchURL string) (*StatsPageResult, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(b.userAgents[rand.Intn(len(b.userAgents))]),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	result := &StatsPageResult{}

	if err := b.runStep(browserCtx, result, StepNavigate, b.cfg.NavigateTimeout,
		chromedp.Navigate(matchURL),
		chromedp.Sleep(b.cfg.SettleDelay),
	); err != nil {
		return result, fmt.Errorf("navigate %s: %w", matchURL, err)
	}

	// Consent dialog may not appear at all (e.g. returning session);
	// failure here is expected and non-fatal.
	if err := b.runStep(browserCtx, result, StepAcceptCookies, b.cfg.ConsentTimeout,
		chromedp.WaitVisible(consentButtonSelector, chromedp.ByQuery),
		chromedp.Click(consentButtonSelector, chromedp.ByQuery),
	); err != nil {
		slog.Warn("Consent dialog not dismissed", "url", matchURL, "error", err)
	}

	if err := b.runStep(browserCtx, result, StepOpenStats, b.cfg.StatsTimeout,
		chromedp.WaitVisible(statsButtonSelector, chromedp.ByQuery),
		chromedp.Click(statsButtonSelector, chromedp.ByQuery),
		chromedp.Sleep(b.cfg.ModalDelay),
	); err != nil {
		slog.Warn("Statistics view not activated", "url", matchURL, "error", err)
	}

	var text string
	if err := b.runStep(browserCtx, result, StepExtractText, b.cfg.StatsTimeout,
		chromedp.Text(statsModalSelector, &text, chromedp.ByQuery),
	); err != nil {
		slog.Warn("Statistics panel text not extracted", "url", matchURL, "error", err)
		return result, nil
	}

	result.Text = text
	return result, nil
}

// runStep executes one bounded, named step and records its outcome.
func (b *StatsBrowser) runStep(ctx context.Context, result *StatsPageResult, step string, timeout time.Duration, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := chromedp.Run(stepCtx, actions...)
	outcome := StepOutcome{Step: step, OK: err == nil}
	if err != nil {
		outcome.Error = err.Error()
	}
	result.Steps = append(result.Steps, outcome)
	return err
}
