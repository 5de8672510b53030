package betclic

import (
	"strconv"
	"strings"

	"github.com/dmcruz/livebet/internal/pkg/jsontree"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

// NormalizeMatch maps one raw match object into the canonical record.
//
// The only permanent error is ErrNotMatch (the value is not an object at
// all). Inside a match object every field is read defensively and degrades
// to an explicit absence on its own: a missing kickoff never costs the
// odds, a broken scoreboard never costs the URL.
func NormalizeMatch(v any) (*models.Match, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotMatch
	}

	m := &models.Match{
		MatchID: asInt64(raw["id"]),
		Competition: models.Competition{
			Name:        digString(raw, "competition", "name"),
			CountryCode: digString(raw, "competition", "country", "code"),
			Sport:       digString(raw, "competition", "sport", "name"),
			Round:       digString(raw, "competition", "info", "round_name"),
		},
		Kickoff: asString(raw["date"]),
	}

	if contestants, ok := raw["contestants"].([]any); ok {
		m.Teams.Home = contestantName(contestants, 0)
		m.Teams.Away = contestantName(contestants, 1)
	}

	selections := extractSelections(raw)
	m.Odds = models.Odds1X2{
		HomeWin: selectionOdds(selections, 0),
		Draw:    selectionOdds(selections, 1),
		AwayWin: selectionOdds(selections, 2),
	}

	m.Result = extractResult(raw)

	if isLive, ok := raw["is_live"].(bool); ok {
		m.Status.IsLive = isLive
	}

	competitionPath := digString(raw, "competition", "relative_desktop_url")
	matchPath := asString(raw["relative_desktop_url"])
	if competitionPath != nil && matchPath != nil {
		u := CombineMatchURL(*competitionPath, *matchPath)
		m.URL = &u
	}

	return m, nil
}

// extractSelections locates the 1X2 selection list: first grouped-markets
// entry, first market, its selections. This is the single place that
// assumes upstream orders selections home/draw/away; if that observed (not
// contractual) ordering ever changes, swap this for label-based lookup.
func extractSelections(raw models.RawMatch) []any {
	grouped, ok := raw[groupedMarketsKey].([]any)
	if !ok || len(grouped) == 0 {
		return nil
	}
	first, ok := grouped[0].(map[string]any)
	if !ok {
		return nil
	}
	markets, ok := first["markets"].([]any)
	if !ok || len(markets) == 0 {
		return nil
	}
	market, ok := markets[0].(map[string]any)
	if !ok {
		return nil
	}
	selections, _ := market["selections"].([]any)
	return selections
}

// selectionOdds reads the price of the selection at idx. Each slot is a
// list whose first element carries the odds field; a short list, empty
// slot or missing field all yield nil.
func selectionOdds(selections []any, idx int) *float64 {
	if idx >= len(selections) {
		return nil
	}
	slot, ok := selections[idx].([]any)
	if !ok || len(slot) == 0 {
		return nil
	}
	entry, ok := slot[0].(map[string]any)
	if !ok {
		return nil
	}
	return asFloat(entry["odds"])
}

// extractResult reads the live scoreboard. Scores default to 0 when absent
// or not numerically coercible; the winner is derived from the scores and
// the current minute from elapsed seconds.
func extractResult(raw models.RawMatch) models.Result {
	scoreboard, _ := jsontree.Dig(raw, "live_data", "scoreboard")

	homeVal, _ := jsontree.Dig(scoreboard, "current_score", "contestant1")
	awayVal, _ := jsontree.Dig(scoreboard, "current_score", "contestant2")
	homeScore := coerceInt(homeVal)
	awayScore := coerceInt(awayVal)

	minute := 0
	if elapsed, ok := jsontree.Dig(scoreboard, "elapsed_time"); ok {
		minute = coerceInt(elapsed) / 60
	}

	return models.Result{
		HomeScore:     homeScore,
		AwayScore:     awayScore,
		Winner:        deriveWinner(homeScore, awayScore),
		CurrentMinute: minute,
	}
}

func deriveWinner(homeScore, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return models.WinnerHome
	case awayScore > homeScore:
		return models.WinnerAway
	default:
		return models.WinnerDraw
	}
}

func digString(root any, path ...string) *string {
	v, ok := jsontree.Dig(root, path...)
	if !ok {
		return nil
	}
	return asString(v)
}

func contestantName(contestants []any, idx int) *string {
	if idx >= len(contestants) {
		return nil
	}
	entry, ok := contestants[idx].(map[string]any)
	if !ok {
		return nil
	}
	return asString(entry["name"])
}

func asString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

func asInt64(v any) *int64 {
	f := asFloat(v)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// coerceInt converts a scoreboard value to int, swallowing coercion
// failures as 0.
func coerceInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
	}
	return 0
}
