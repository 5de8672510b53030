package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// urlRequest is the body of the per-match POST endpoints.
type urlRequest struct {
	URL string `json:"url"`
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleLiveMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.scraper.LiveMatches(r.Context())
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"live_matches": matches})
}

func (s *Server) handleLiveMatchURLs(w http.ResponseWriter, r *http.Request) {
	urls, err := s.scraper.LiveMatchURLs(r.Context())
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"live_match_urls": urls})
}

func (s *Server) handleRawMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.scraper.RawMatches(r.Context())
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{
		"match_count": len(matches),
		"matches":     matches,
	})
}

func (s *Server) handleMatchStats(w http.ResponseWriter, r *http.Request) {
	matchURL, ok := decodeURLRequest(w, r)
	if !ok {
		return
	}
	stats, err := s.scraper.MatchStats(r.Context(), matchURL)
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"match_stats": stats})
}

func (s *Server) handleAllMatchStats(w http.ResponseWriter, r *http.Request) {
	results, err := s.scraper.AllMatchStats(r.Context())
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"match_stats_data": results})
}

func (s *Server) handleMatchOdds(w http.ResponseWriter, r *http.Request) {
	matchURL, ok := decodeURLRequest(w, r)
	if !ok {
		return
	}
	odds, err := s.scraper.MatchOdds(r.Context(), matchURL)
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"match_odds": odds})
}

func (s *Server) handlePositiveEVOdds(w http.ResponseWriter, r *http.Request) {
	matchURL, ok := decodeURLRequest(w, r)
	if !ok {
		return
	}
	bets, err := s.scraper.PositiveEVOdds(r.Context(), matchURL)
	if err != nil {
		writeError(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"positive_ev_odds": bets})
}

func decodeURLRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "match URL must be provided")
		return "", false
	}
	return req.URL, true
}

func writeSuccess(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	body := map[string]any{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": message,
	})
}
