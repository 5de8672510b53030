package betclic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmcruz/livebet/internal/pkg/config"
)

type Client struct {
	baseURL     string
	listingPath string
	client      *http.Client
	userAgents  []string
}

func NewClient(cfg *config.BetclicConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgents := cfg.UserAgents
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &Client{
		baseURL:     baseURL,
		listingPath: cfg.ListingPath,
		client:      &http.Client{Timeout: timeout},
		userAgents:  userAgents,
	}
}

// ListingURL returns the absolute URL of the live football listing page.
func (c *Client) ListingURL() string {
	return c.baseURL + c.listingPath
}

// fetchPage issues one GET and returns the raw HTML. A 403 maps to
// ErrAccessDenied, any other non-2xx and transport failures to ErrNetwork.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", c.userAgents[rand.Intn(len(c.userAgents))])
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, pageURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return body, nil
}

// extractPayload locates the single ng-state script element in the markup
// and parses its text as JSON. Absent anchor -> ErrPayloadNotFound,
// malformed JSON -> ErrParse.
func extractPayload(html []byte) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	script := doc.Find(payloadScriptSelector).First()
	if script.Length() == 0 {
		return nil, ErrPayloadNotFound
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(script.Text())), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return payload, nil
}

// FetchPagePayload fetches a page and returns its embedded JSON payload.
func (c *Client) FetchPagePayload(ctx context.Context, pageURL string) (map[string]any, error) {
	html, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractPayload(html)
}
