package interfaces

import (
	"context"

	"github.com/dmcruz/livebet/internal/pkg/models"
)

// StatsNormalizer converts unstructured scraped data into typed records.
// The production implementation delegates to an LLM; tests use fakes.
type StatsNormalizer interface {
	// StatsFromText turns the free text of a match statistics panel into
	// a MatchStats record, or fails when the model output is unusable.
	StatsFromText(ctx context.Context, rawText string) (*models.MatchStats, error)

	// PositiveEV flags wagers with positive expected value given the
	// match's odds substructure and its normalized statistics.
	PositiveEV(ctx context.Context, oddsJSON string, stats *models.MatchStats) ([]models.EVBet, error)
}

// SnapshotStorage persists normalized live-match snapshots.
type SnapshotStorage interface {
	SaveMatches(ctx context.Context, matches []models.Match) error
	Close() error
}

// Notifier announces flagged positive-EV bets.
type Notifier interface {
	NotifyValueBets(matchName string, bets []models.EVBet)
}
