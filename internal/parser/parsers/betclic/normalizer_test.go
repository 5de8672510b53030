package betclic

import (
	"encoding/json"
	"testing"

	"github.com/dmcruz/livebet/internal/pkg/models"
)

// fullRawMatch mirrors the shape of one upstream match object with every
// field present.
const fullRawMatch = `{
	"id": 3002641355,
	"date": "2024-11-02T20:30:00Z",
	"is_live": true,
	"relative_desktop_url": "benfica-fc-porto-m3002641355",
	"competition": {
		"name": "Liga Betclic",
		"relative_desktop_url": "futebol-s1/liga-betclic-c32",
		"country": {"code": "PT"},
		"sport": {"name": "Futebol"},
		"info": {"round_name": "Jornada 10"}
	},
	"contestants": [
		{"name": "Benfica"},
		{"name": "FC Porto"}
	],
	"grouped_markets": [
		{"markets": [
			{"selections": [
				[{"odds": 2.10}],
				[{"odds": 3.25}],
				[{"odds": 3.60}]
			]}
		]}
	],
	"live_data": {
		"scoreboard": {
			"current_score": {"contestant1": "2", "contestant2": 1},
			"elapsed_time": 3725
		}
	}
}`

func decodeRawMatch(t *testing.T, data string) models.RawMatch {
	t.Helper()
	var raw models.RawMatch
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return raw
}

func TestNormalizeMatchFull(t *testing.T) {
	m, err := NormalizeMatch(decodeRawMatch(t, fullRawMatch))
	if err != nil {
		t.Fatalf("NormalizeMatch: %v", err)
	}

	if m.MatchID == nil || *m.MatchID != 3002641355 {
		t.Errorf("MatchID = %v, want 3002641355", m.MatchID)
	}
	if m.Competition.Name == nil || *m.Competition.Name != "Liga Betclic" {
		t.Errorf("Competition.Name = %v", m.Competition.Name)
	}
	if m.Competition.CountryCode == nil || *m.Competition.CountryCode != "PT" {
		t.Errorf("Competition.CountryCode = %v", m.Competition.CountryCode)
	}
	if m.Teams.Home == nil || *m.Teams.Home != "Benfica" {
		t.Errorf("Teams.Home = %v", m.Teams.Home)
	}
	if m.Teams.Away == nil || *m.Teams.Away != "FC Porto" {
		t.Errorf("Teams.Away = %v", m.Teams.Away)
	}
	if m.Odds.HomeWin == nil || *m.Odds.HomeWin != 2.10 {
		t.Errorf("Odds.HomeWin = %v, want 2.10", m.Odds.HomeWin)
	}
	if m.Odds.Draw == nil || *m.Odds.Draw != 3.25 {
		t.Errorf("Odds.Draw = %v, want 3.25", m.Odds.Draw)
	}
	if m.Odds.AwayWin == nil || *m.Odds.AwayWin != 3.60 {
		t.Errorf("Odds.AwayWin = %v, want 3.60", m.Odds.AwayWin)
	}
	// contestant1 is a string in the fixture: coercion must still work.
	if m.Result.HomeScore != 2 || m.Result.AwayScore != 1 {
		t.Errorf("scores = %d:%d, want 2:1", m.Result.HomeScore, m.Result.AwayScore)
	}
	if m.Result.Winner != models.WinnerHome {
		t.Errorf("Winner = %q, want home", m.Result.Winner)
	}
	if m.Result.CurrentMinute != 62 {
		t.Errorf("CurrentMinute = %d, want 62 (3725s)", m.Result.CurrentMinute)
	}
	if !m.Status.IsLive {
		t.Error("IsLive = false, want true")
	}
	if m.URL == nil || *m.URL != "https://www.betclic.pt/futebol-s1/liga-betclic-c32/benfica-fc-porto-m3002641355" {
		t.Errorf("URL = %v", m.URL)
	}
	if m.Name() != "Benfica-FC Porto" {
		t.Errorf("Name() = %q", m.Name())
	}
}

// TestNormalizeMatchSingleFieldAbsent removes one optional field at a time
// and checks that only that field degrades to absent; nothing cascades.
func TestNormalizeMatchSingleFieldAbsent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(raw models.RawMatch)
		check  func(t *testing.T, m *models.Match)
	}{
		{
			"no id",
			func(raw models.RawMatch) { delete(raw, "id") },
			func(t *testing.T, m *models.Match) {
				if m.MatchID != nil {
					t.Errorf("MatchID = %v, want nil", m.MatchID)
				}
				if m.Teams.Home == nil {
					t.Error("Teams.Home lost alongside id")
				}
			},
		},
		{
			"no date",
			func(raw models.RawMatch) { delete(raw, "date") },
			func(t *testing.T, m *models.Match) {
				if m.Kickoff != nil {
					t.Errorf("Kickoff = %v, want nil", m.Kickoff)
				}
				if m.Odds.HomeWin == nil {
					t.Error("Odds lost alongside date")
				}
			},
		},
		{
			"no competition at all",
			func(raw models.RawMatch) { delete(raw, "competition") },
			func(t *testing.T, m *models.Match) {
				if m.Competition.Name != nil || m.Competition.CountryCode != nil {
					t.Error("Competition fields should be nil")
				}
				if m.URL != nil {
					t.Error("URL should be absent without the competition fragment")
				}
				if m.Teams.Home == nil || m.Odds.Draw == nil {
					t.Error("teams/odds lost alongside competition")
				}
			},
		},
		{
			"no match url fragment",
			func(raw models.RawMatch) { delete(raw, "relative_desktop_url") },
			func(t *testing.T, m *models.Match) {
				if m.URL != nil {
					t.Error("URL should be absent without the match fragment")
				}
			},
		},
		{
			"no contestants",
			func(raw models.RawMatch) { delete(raw, "contestants") },
			func(t *testing.T, m *models.Match) {
				if m.Teams.Home != nil || m.Teams.Away != nil {
					t.Error("team names should be nil")
				}
				if m.Name() != "" {
					t.Errorf("Name() = %q, want empty", m.Name())
				}
				if m.Odds.HomeWin == nil {
					t.Error("odds lost alongside contestants")
				}
			},
		},
		{
			"single contestant",
			func(raw models.RawMatch) {
				raw["contestants"] = []any{map[string]any{"name": "Benfica"}}
			},
			func(t *testing.T, m *models.Match) {
				if m.Teams.Home == nil || *m.Teams.Home != "Benfica" {
					t.Errorf("Teams.Home = %v", m.Teams.Home)
				}
				if m.Teams.Away != nil {
					t.Error("Teams.Away should be nil")
				}
			},
		},
		{
			"no grouped markets",
			func(raw models.RawMatch) { delete(raw, "grouped_markets") },
			func(t *testing.T, m *models.Match) {
				if m.Odds.HomeWin != nil || m.Odds.Draw != nil || m.Odds.AwayWin != nil {
					t.Error("odds should all be nil")
				}
				if m.Result.HomeScore != 2 {
					t.Error("score lost alongside odds")
				}
			},
		},
		{
			"no live data",
			func(raw models.RawMatch) { delete(raw, "live_data") },
			func(t *testing.T, m *models.Match) {
				if m.Result.HomeScore != 0 || m.Result.AwayScore != 0 {
					t.Error("scores should default to 0")
				}
				if m.Result.Winner != models.WinnerDraw {
					t.Errorf("Winner = %q, want draw at 0:0", m.Result.Winner)
				}
				if m.Result.CurrentMinute != 0 {
					t.Errorf("CurrentMinute = %d, want 0", m.Result.CurrentMinute)
				}
			},
		},
		{
			"no is_live",
			func(raw models.RawMatch) { delete(raw, "is_live") },
			func(t *testing.T, m *models.Match) {
				if m.Status.IsLive {
					t.Error("IsLive should default to false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodeRawMatch(t, fullRawMatch)
			tt.mutate(raw)
			m, err := NormalizeMatch(raw)
			if err != nil {
				t.Fatalf("NormalizeMatch: %v", err)
			}
			tt.check(t, m)
		})
	}
}

func TestNormalizeMatchNotAnObject(t *testing.T) {
	for _, v := range []any{nil, "text", float64(1), []any{"a"}} {
		if _, err := NormalizeMatch(v); err == nil {
			t.Errorf("NormalizeMatch(%v) should fail with ErrNotMatch", v)
		}
	}
}

func TestSelectionOddsShortList(t *testing.T) {
	// Two selections only (draw present, away missing): index 2 must read
	// as absent without any out-of-range failure.
	raw := decodeRawMatch(t, fullRawMatch)
	grouped := raw["grouped_markets"].([]any)
	market := grouped[0].(map[string]any)["markets"].([]any)[0].(map[string]any)
	market["selections"] = market["selections"].([]any)[:2]

	m, err := NormalizeMatch(raw)
	if err != nil {
		t.Fatalf("NormalizeMatch: %v", err)
	}
	if m.Odds.HomeWin == nil || m.Odds.Draw == nil {
		t.Error("first two selections should survive")
	}
	if m.Odds.AwayWin != nil {
		t.Errorf("Odds.AwayWin = %v, want nil", m.Odds.AwayWin)
	}
}

func TestSelectionOddsEmptySlot(t *testing.T) {
	raw := decodeRawMatch(t, fullRawMatch)
	grouped := raw["grouped_markets"].([]any)
	market := grouped[0].(map[string]any)["markets"].([]any)[0].(map[string]any)
	market["selections"] = []any{
		[]any{map[string]any{"odds": 2.1}},
		[]any{}, // suspended draw selection
		[]any{map[string]any{"odds": 3.6}},
	}

	m, err := NormalizeMatch(raw)
	if err != nil {
		t.Fatalf("NormalizeMatch: %v", err)
	}
	if m.Odds.Draw != nil {
		t.Errorf("Odds.Draw = %v, want nil for empty slot", m.Odds.Draw)
	}
	if m.Odds.HomeWin == nil || m.Odds.AwayWin == nil {
		t.Error("home/away odds should survive an empty draw slot")
	}
}

func TestDeriveWinner(t *testing.T) {
	tests := []struct {
		home, away int
		want       string
	}{
		{2, 2, models.WinnerDraw},
		{3, 1, models.WinnerHome},
		{0, 1, models.WinnerAway},
		{0, 0, models.WinnerDraw},
	}
	for _, tt := range tests {
		if got := deriveWinner(tt.home, tt.away); got != tt.want {
			t.Errorf("deriveWinner(%d, %d) = %q, want %q", tt.home, tt.away, got, tt.want)
		}
	}
}

func TestScoreCoercionFailureDefaultsToZero(t *testing.T) {
	raw := decodeRawMatch(t, fullRawMatch)
	scoreboard := raw["live_data"].(map[string]any)["scoreboard"].(map[string]any)
	scoreboard["current_score"] = map[string]any{
		"contestant1": "abandoned",
		"contestant2": true,
	}

	m, err := NormalizeMatch(raw)
	if err != nil {
		t.Fatalf("NormalizeMatch: %v", err)
	}
	if m.Result.HomeScore != 0 || m.Result.AwayScore != 0 {
		t.Errorf("scores = %d:%d, want 0:0 on coercion failure", m.Result.HomeScore, m.Result.AwayScore)
	}
}
