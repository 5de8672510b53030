package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/dmcruz/livebet/internal/pkg/config"
	"github.com/dmcruz/livebet/internal/pkg/interfaces"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

// Ensure PostgresSnapshotStorage implements SnapshotStorage
var _ interfaces.SnapshotStorage = (*PostgresSnapshotStorage)(nil)

// PostgresSnapshotStorage keeps a history of normalized live-match
// snapshots for offline analysis. The scrape path treats it as
// best-effort: an insert failure is logged by the caller and the batch
// proceeds.
type PostgresSnapshotStorage struct {
	db *sql.DB
}

func NewPostgresSnapshotStorage(cfg *config.PostgresConfig) (*PostgresSnapshotStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresSnapshotStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL snapshot storage initialized")
	return s, nil
}

func (s *PostgresSnapshotStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS live_match_snapshots (
		id SERIAL PRIMARY KEY,
		match_id BIGINT,
		match_name VARCHAR(500),
		competition VARCHAR(500),
		kickoff VARCHAR(100),
		home_win_odds DECIMAL(10, 4),
		draw_odds DECIMAL(10, 4),
		away_win_odds DECIMAL(10, 4),
		home_score INTEGER NOT NULL DEFAULT 0,
		away_score INTEGER NOT NULL DEFAULT 0,
		current_minute INTEGER NOT NULL DEFAULT 0,
		is_live BOOLEAN NOT NULL DEFAULT FALSE,
		url VARCHAR(1000),
		recorded_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_live_match_snapshots_match_id
		ON live_match_snapshots (match_id, recorded_at);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// SaveMatches appends one snapshot row per match.
func (s *PostgresSnapshotStorage) SaveMatches(ctx context.Context, matches []models.Match) error {
	query := `
	INSERT INTO live_match_snapshots
		(match_id, match_name, competition, kickoff, home_win_odds, draw_odds, away_win_odds,
		 home_score, away_score, current_minute, is_live, url, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now().UTC()
	for i := range matches {
		m := &matches[i]
		_, err := s.db.ExecContext(ctx, query,
			nullInt64(m.MatchID),
			m.Name(),
			nullString(m.Competition.Name),
			nullString(m.Kickoff),
			nullFloat(m.Odds.HomeWin),
			nullFloat(m.Odds.Draw),
			nullFloat(m.Odds.AwayWin),
			m.Result.HomeScore,
			m.Result.AwayScore,
			m.Result.CurrentMinute,
			m.Status.IsLive,
			nullString(m.URL),
			now,
		)
		if err != nil {
			return fmt.Errorf("insert snapshot for %q: %w", m.Name(), err)
		}
	}
	return nil
}

func (s *PostgresSnapshotStorage) Close() error {
	return s.db.Close()
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
