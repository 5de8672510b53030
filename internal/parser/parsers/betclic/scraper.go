package betclic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmcruz/livebet/internal/pkg/config"
	"github.com/dmcruz/livebet/internal/pkg/interfaces"
	"github.com/dmcruz/livebet/internal/pkg/models"
	"github.com/dmcruz/livebet/internal/pkg/storage"
)

// FeedSource acquires the live feed and per-match odds payloads.
type FeedSource interface {
	FetchLiveMatches(ctx context.Context) ([]models.RawMatch, error)
	MatchOdds(ctx context.Context, matchURL string) ([]any, error)
}

// DetailFetcher acquires the statistics panel text of one match page.
type DetailFetcher interface {
	FetchStatsText(ctx context.Context, matchURL string) (*StatsPageResult, error)
}

// StatsEntry is one match's slot in a batch result: either stats or an
// error message, never both.
type StatsEntry struct {
	URL   string             `json:"url"`
	Stats *models.MatchStats `json:"stats,omitempty"`
	Error string             `json:"error,omitempty"`
}

// ScraperOpts carries the optional collaborators of a Scraper.
type ScraperOpts struct {
	Audit     *storage.StatsLog
	Snapshots interfaces.SnapshotStorage
	Notifier  interfaces.Notifier
}

// Scraper exposes the scraping operations behind the HTTP surface. All
// acquisition is sequential; the batch delay between per-match visits is
// the anti-blocking measure, so no overlap is ever attempted.
type Scraper struct {
	feed       FeedSource
	details    DetailFetcher
	normalizer interfaces.StatsNormalizer
	audit      *storage.StatsLog
	snapshots  interfaces.SnapshotStorage
	notifier   interfaces.Notifier
	batchDelay time.Duration
}

func NewScraper(cfg *config.Config, feed FeedSource, details DetailFetcher, normalizer interfaces.StatsNormalizer, opts ScraperOpts) *Scraper {
	return &Scraper{
		feed:       feed,
		details:    details,
		normalizer: normalizer,
		audit:      opts.Audit,
		snapshots:  opts.Snapshots,
		notifier:   opts.Notifier,
		batchDelay: cfg.Betclic.BatchDelay,
	}
}

// RawMatches returns the live feed's match list untouched.
func (s *Scraper) RawMatches(ctx context.Context) ([]models.RawMatch, error) {
	return s.feed.FetchLiveMatches(ctx)
}

// LiveMatches returns the normalized records of every currently-live
// match. A match that is not an object at all is skipped with a log; a
// match with missing fields comes back with those fields absent.
func (s *Scraper) LiveMatches(ctx context.Context) ([]models.Match, error) {
	raw, err := s.feed.FetchLiveMatches(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]models.Match, 0, len(raw))
	for _, r := range raw {
		if isLive, _ := r["is_live"].(bool); !isLive {
			continue
		}
		m, err := NormalizeMatch(r)
		if err != nil {
			slog.Warn("Skipping unnormalizable entry in live feed", "error", err)
			continue
		}
		matches = append(matches, *m)
	}

	if s.snapshots != nil && len(matches) > 0 {
		if err := s.snapshots.SaveMatches(ctx, matches); err != nil {
			slog.Error("Failed to persist match snapshots", "error", err, "matches", len(matches))
		}
	}
	return matches, nil
}

// LiveMatchURLs maps "Home-Away" team-pair names to canonical match URLs.
// Matches without both team names or without both URL fragments are
// omitted.
func (s *Scraper) LiveMatchURLs(ctx context.Context) (map[string]string, error) {
	raw, err := s.feed.FetchLiveMatches(ctx)
	if err != nil {
		return nil, err
	}

	urls := make(map[string]string, len(raw))
	for _, r := range raw {
		m, err := NormalizeMatch(r)
		if err != nil {
			continue
		}
		name := m.Name()
		if name == "" || m.URL == nil {
			continue
		}
		urls[name] = *m.URL
	}
	return urls, nil
}

// MatchStats visits one match page, extracts the statistics panel text and
// hands it to the normalization boundary. Successful normalizations are
// appended to the audit log; an audit failure is logged, not propagated.
func (s *Scraper) MatchStats(ctx context.Context, matchURL string) (*models.MatchStats, error) {
	page, err := s.details.FetchStatsText(ctx, matchURL)
	if err != nil {
		return nil, err
	}
	if !page.HasText() {
		return nil, fmt.Errorf("%w: %s", ErrNoStatsText, matchURL)
	}

	stats, err := s.normalizer.StatsFromText(ctx, page.Text)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		if err := s.audit.Append(matchURL, stats); err != nil {
			slog.Error("Failed to append stats audit entry", "url", matchURL, "error", err)
		}
	}
	return stats, nil
}

// AllMatchStats runs MatchStats for every live match URL, sequentially,
// with the mandatory inter-request delay. Results are keyed by team-pair
// name; a failed match records its error under its own key and never
// aborts the siblings.
func (s *Scraper) AllMatchStats(ctx context.Context) (map[string]StatsEntry, error) {
	urls, err := s.LiveMatchURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, errors.New("no live match URLs found")
	}

	results := make(map[string]StatsEntry, len(urls))
	for name, matchURL := range urls {
		if err := s.pause(ctx); err != nil {
			return results, err
		}

		stats, err := s.MatchStats(ctx, matchURL)
		if err != nil {
			slog.Error("Failed to retrieve match stats", "match", name, "url", matchURL, "error", err)
			results[name] = StatsEntry{URL: matchURL, Error: err.Error()}
			continue
		}
		results[name] = StatsEntry{URL: matchURL, Stats: stats}
	}
	return results, nil
}

// pause sleeps for the batch delay unless the context ends first.
func (s *Scraper) pause(ctx context.Context) error {
	if s.batchDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.batchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MatchOdds returns every grouped-markets substructure found in the match
// page payload.
func (s *Scraper) MatchOdds(ctx context.Context, matchURL string) ([]any, error) {
	return s.feed.MatchOdds(ctx, matchURL)
}

// PositiveEVOdds combines a match's odds and normalized statistics and
// asks the analysis boundary for positive-expected-value wagers. Found
// bets are announced through the notifier when one is configured.
func (s *Scraper) PositiveEVOdds(ctx context.Context, matchURL string) ([]models.EVBet, error) {
	stats, err := s.MatchStats(ctx, matchURL)
	if err != nil {
		return nil, err
	}

	odds, err := s.feed.MatchOdds(ctx, matchURL)
	if err != nil {
		return nil, err
	}

	oddsJSON, err := json.Marshal(odds)
	if err != nil {
		return nil, fmt.Errorf("marshal odds for analysis: %w", err)
	}

	bets, err := s.normalizer.PositiveEV(ctx, string(oddsJSON), stats)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && len(bets) > 0 {
		s.notifier.NotifyValueBets(matchURL, bets)
	}
	return bets, nil
}
