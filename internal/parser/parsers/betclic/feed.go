package betclic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmcruz/livebet/internal/pkg/jsontree"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

// FetchLiveMatches fetches the listing page, locates the embedded payload
// and extracts the live match list. No retries here; every failure mode
// (network, missing anchor, malformed JSON, missing structure) surfaces as
// its own sentinel and is logged with enough context to diagnose upstream
// drift.
func (c *Client) FetchLiveMatches(ctx context.Context) ([]models.RawMatch, error) {
	listingURL := c.ListingURL()

	payload, err := c.FetchPagePayload(ctx, listingURL)
	if err != nil {
		slog.Error("Failed to acquire live feed", "url", listingURL, "error", err)
		return nil, err
	}

	liveGames, ok := payload[liveGamesKey]
	if !ok {
		slog.Error("Live games key not found in payload", "url", listingURL, "key", liveGamesKey)
		return nil, fmt.Errorf("%w: live games key %q", ErrStructureMissing, liveGamesKey)
	}

	matchesValue, ok := jsontree.Dig(liveGames, matchesPath...)
	if !ok {
		slog.Error("Match list not found under live games section", "url", listingURL, "path", matchesPath)
		return nil, fmt.Errorf("%w: matches path %v", ErrStructureMissing, matchesPath)
	}

	list, ok := matchesValue.([]any)
	if !ok {
		slog.Error("Match list has unexpected type", "url", listingURL, "type", fmt.Sprintf("%T", matchesValue))
		return nil, fmt.Errorf("%w: matches value is not a list", ErrStructureMissing)
	}

	matches := make([]models.RawMatch, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			matches = append(matches, m)
		}
	}

	slog.Info("Live feed acquired", "url", listingURL, "matches", len(matches))
	return matches, nil
}

// MatchOdds fetches a single match page and recursively locates every
// grouped-markets substructure in its payload.
func (c *Client) MatchOdds(ctx context.Context, matchURL string) ([]any, error) {
	payload, err := c.FetchPagePayload(ctx, matchURL)
	if err != nil {
		slog.Error("Failed to acquire match odds", "url", matchURL, "error", err)
		return nil, err
	}

	markets := jsontree.FindAll(payload, groupedMarketsKey)
	slog.Info("Match odds located", "url", matchURL, "grouped_markets", len(markets))
	return markets, nil
}
