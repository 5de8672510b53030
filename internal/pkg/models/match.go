package models

// RawMatch is one match object exactly as delivered inside the Betclic
// page payload. No shape is guaranteed: any field may be absent, null or
// of an unexpected type, so all access goes through defensive lookups.
type RawMatch = map[string]any

// Match is the normalized record built from one RawMatch.
//
// Every field is independently optional: a missing upstream field degrades
// to nil (or to zero for scores, which default to 0 on purpose) and never
// fails the rest of the record.
type Match struct {
	MatchID     *int64      `json:"match_id"`
	Competition Competition `json:"competition"`
	Teams       Teams       `json:"teams"`
	Kickoff     *string     `json:"datetime"`
	Odds        Odds1X2     `json:"odds"`
	Result      Result      `json:"result"`
	Status      MatchStatus `json:"match_status"`
	URL         *string     `json:"url"`
}

// Competition holds competition metadata for a match.
type Competition struct {
	Name        *string `json:"name"`
	CountryCode *string `json:"country"`
	Sport       *string `json:"sport"`
	Round       *string `json:"round"`
}

// Teams is the ordered home/away pair. Upstream convention: contestant
// index 0 is home, index 1 is away.
type Teams struct {
	Home *string `json:"home"`
	Away *string `json:"away"`
}

// Odds1X2 holds the three match-winner prices. A missing selection leaves
// the corresponding price nil.
type Odds1X2 struct {
	HomeWin *float64 `json:"home_win"`
	Draw    *float64 `json:"draw"`
	AwayWin *float64 `json:"away_win"`
}

// Winner values for Result.Winner.
const (
	WinnerHome = "home"
	WinnerAway = "away"
	WinnerDraw = "draw"
)

// Result is the live score state. Scores default to 0 when the scoreboard
// is absent or not numeric; CurrentMinute is derived from elapsed seconds.
type Result struct {
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	Winner        string `json:"winner"`
	CurrentMinute int    `json:"current_minute"`
}

// MatchStatus carries the live flag.
type MatchStatus struct {
	IsLive bool `json:"is_live"`
}

// Name returns "Home-Away" when both team names are present, else "".
// Used as the key in URL maps and batch result maps.
func (m *Match) Name() string {
	if m.Teams.Home == nil || m.Teams.Away == nil {
		return ""
	}
	return *m.Teams.Home + "-" + *m.Teams.Away
}
