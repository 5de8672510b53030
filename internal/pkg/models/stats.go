package models

// MatchStats is the structured form of a match's statistics panel, as
// produced by the LLM normalization boundary. The field schema mirrors the
// upstream panel: per-team probabilities, head-to-head counts, goal and
// card/corner averages, a free-text blurb and the recent-game list.
type MatchStats struct {
	HomeTeam TeamStats `json:"home_team"`
	AwayTeam TeamStats `json:"away_team"`
}

// TeamStats holds one team's side of the statistics panel. AEM is an
// upstream-defined strength metric, opaque beyond being numeric.
type TeamStats struct {
	ProbabilityWin         float64    `json:"probability_win"`
	ProbabilityDraw        float64    `json:"probability_draw"`
	ProbabilityOpponentWin float64    `json:"probability_opponent_win"`
	VictoriesHomeVsAway    float64    `json:"victories_home_vs_away"`
	DrawsHomeVsAway        float64    `json:"draws_home_vs_away"`
	LossesHomeVsAway       float64    `json:"losses_home_vs_away"`
	GoalsScored            float64    `json:"goals_scored"`
	AEM                    float64    `json:"AEM"`
	MoreThan15Probability  float64    `json:"more_than_1_5_probability"`
	MoreThan25Probability  float64    `json:"more_than_2_5_probability"`
	CardsHome              float64    `json:"cards_home"`
	CardsAway              float64    `json:"cards_away"`
	CornersHome            float64    `json:"corners_home"`
	CornersAway            float64    `json:"corners_away"`
	Stats                  string     `json:"stats"`
	LastGames              []LastGame `json:"last_games"`
}

// LastGame is one entry in a team's recent-game list.
type LastGame struct {
	Date        string `json:"date"`
	Competition string `json:"competition"`
	Match       string `json:"match"`
}

// EVBet is one positive-expected-value wager flagged by the analysis step.
type EVBet struct {
	OddID         int64   `json:"odd_id"`
	Name          string  `json:"name"`
	Odds          float64 `json:"odds"`
	ExpectedValue float64 `json:"expected_value"`
	Justification string  `json:"justification"`
}
