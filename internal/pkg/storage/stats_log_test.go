package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmcruz/livebet/internal/pkg/models"
)

func TestStatsLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_stats.jsonl")
	log := NewStatsLog(path)

	urls := []string{
		"https://www.betclic.pt/futebol-s1/liga/benfica-porto-m1",
		"https://www.betclic.pt/futebol-s1/liga/sporting-braga-m2",
	}
	for _, u := range urls {
		stats := &models.MatchStats{HomeTeam: models.TeamStats{ProbabilityWin: 55}}
		if err := log.Append(u, stats); err != nil {
			t.Fatalf("Append(%q): %v", u, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []StatsLogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry StatsLogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d lines, want 2", len(entries))
	}
	for i, entry := range entries {
		if entry.MatchURL != urls[i] {
			t.Errorf("line %d url = %q, want %q", i+1, entry.MatchURL, urls[i])
		}
		if entry.RecordedAt.IsZero() {
			t.Errorf("line %d has zero recorded_at", i+1)
		}
		if entry.Stats == nil || entry.Stats.HomeTeam.ProbabilityWin != 55 {
			t.Errorf("line %d stats = %+v", i+1, entry.Stats)
		}
	}
}

func TestStatsLogAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.jsonl")
	if err := NewStatsLog(path).Append("u", &models.MatchStats{}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
