package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/dmcruz/livebet/internal/pkg/config"
	"github.com/dmcruz/livebet/internal/pkg/interfaces"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

const statsSystemPrompt = "You are a helpful assistant that converts raw football match data into strict JSON. " +
	"Reply with a single JSON object and nothing else: no prose, no markdown fences."

const evSystemPrompt = "You are a sports betting analyst. Calculate expected value (EV) for each bet and " +
	"return only those with positive EV, as a single strict JSON object and nothing else."

// Normalizer implements the stats/EV normalization boundary on top of the
// model API.
type Normalizer struct {
	client    Client
	model     string
	maxTokens int64
}

var _ interfaces.StatsNormalizer = (*Normalizer)(nil)

func NewNormalizer(cfg *config.LLMConfig, client Client) *Normalizer {
	return &Normalizer{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// StatsFromText converts free-form statistics panel text into a
// MatchStats record. Malformed or absent model output fails with
// ErrModelResponse; it never yields a partially-guessed record.
func (n *Normalizer) StatsFromText(ctx context.Context, rawText string) (*models.MatchStats, error) {
	prompt := fmt.Sprintf(`Translate the following raw football match text data into JSON, following this order of fields for both teams as they appear in the raw text:

Probabilities: probability of win for the home team, probability of draw, probability of win for the away team.
Head-to-head: victories of the home team against the away team, draws between the teams, losses of the home team against the away team.
Goals: average goals scored, the 'AEM' metric, probability of more than 1.5 goals, probability of more than 2.5 goals.
Cards and corners: average cards for each team (home and away), average corners for each team (home and away).
Recent games: last games for each team with date, competition and result.

Answer with exactly this JSON shape, numbers as numbers:
{"home_team": {"probability_win": 0, "probability_draw": 0, "probability_opponent_win": 0, "victories_home_vs_away": 0, "draws_home_vs_away": 0, "losses_home_vs_away": 0, "goals_scored": 0, "AEM": 0, "more_than_1_5_probability": 0, "more_than_2_5_probability": 0, "cards_home": 0, "cards_away": 0, "corners_home": 0, "corners_away": 0, "stats": "", "last_games": [{"date": "", "competition": "", "match": ""}]}, "away_team": { ...same fields... }}

Raw text:
%s`, rawText)

	resp, err := n.client.CreateMessage(ctx, MessageRequest{
		Model:     n.model,
		MaxTokens: n.maxTokens,
		System:    statsSystemPrompt,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "llm: stats normalization request")
	}

	var stats models.MatchStats
	if err := decodeJSONResponse(resp, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// positiveEVResponse is the expected shape of the EV analysis answer.
type positiveEVResponse struct {
	PositiveEVOdds []models.EVBet `json:"positive_ev_odds"`
}

// PositiveEV asks the model to flag wagers whose estimated fair value
// exceeds their cost, given the match's odds substructure and stats.
func (n *Normalizer) PositiveEV(ctx context.Context, oddsJSON string, stats *models.MatchStats) ([]models.EVBet, error) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, eris.Wrap(err, "llm: marshal stats")
	}

	prompt := fmt.Sprintf(`You are provided with JSON data for a match's odds and relevant statistics. For each betting odd, calculate the Expected Value (EV) using:

EV = (Fair Win Probability x Profit if Win) - (Fair Loss Probability x Stake)

1. Identify the fair probabilities for each outcome.
2. Calculate EV with Profit if Win = Odds - 1 and a Stake of 1 unit.
3. Adjust probabilities using the statistics provided for both teams.
4. Keep only bets with positive EV; justify each in at most 400 characters.

Answer with exactly this JSON shape:
{"positive_ev_odds": [{"odd_id": 0, "name": "", "odds": 0, "expected_value": 0, "justification": ""}]}

Odds data:
%s

Match and team stats data:
%s`, oddsJSON, statsJSON)

	resp, err := n.client.CreateMessage(ctx, MessageRequest{
		Model:     n.model,
		MaxTokens: n.maxTokens,
		System:    evSystemPrompt,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "llm: positive EV request")
	}

	var parsed positiveEVResponse
	if err := decodeJSONResponse(resp, &parsed); err != nil {
		return nil, err
	}
	return parsed.PositiveEVOdds, nil
}

// decodeJSONResponse extracts the JSON object from a model reply and
// unmarshals it. Models occasionally wrap output in markdown fences or
// stray prose despite instructions, so decoding starts at the first '{'
// and ends at the last '}'.
func decodeJSONResponse(resp *MessageResponse, out any) error {
	text := resp.Text()
	if text == "" {
		slog.Error("Model returned no text content", "stop_reason", resp.StopReason)
		return ErrModelResponse
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		slog.Error("Model response carries no JSON object", "length", len(text))
		return ErrModelResponse
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		slog.Error("Failed to parse model response", "error", err)
		return fmt.Errorf("%w: %v", ErrModelResponse, err)
	}
	return nil
}
