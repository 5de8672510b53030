package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmcruz/livebet/internal/pkg/models"
)

// StatsLogEntry is one line of the stats audit log.
type StatsLogEntry struct {
	RecordedAt time.Time          `json:"recorded_at"`
	MatchURL   string             `json:"match_url"`
	Stats      *models.MatchStats `json:"stats"`
}

// StatsLog is an append-only JSONL audit file: every successful stats
// normalization is appended as one JSON line. The file is write-only from
// the service's point of view; it exists for offline audit.
type StatsLog struct {
	mu   sync.Mutex
	path string
}

func NewStatsLog(path string) *StatsLog {
	return &StatsLog{path: path}
}

// Append writes one entry as a single JSON line.
func (l *StatsLog) Append(matchURL string, stats *models.MatchStats) error {
	entry := StatsLogEntry{
		RecordedAt: time.Now().UTC(),
		MatchURL:   matchURL,
		Stats:      stats,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal stats log entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stats log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write stats log: %w", err)
	}
	return nil
}
