package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmcruz/livebet/internal/parser/parsers/betclic"
	"github.com/dmcruz/livebet/internal/pkg/config"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

// Scraper is the set of core operations the HTTP surface passes through
// to. The production implementation is *betclic.Scraper.
type Scraper interface {
	LiveMatches(ctx context.Context) ([]models.Match, error)
	LiveMatchURLs(ctx context.Context) (map[string]string, error)
	RawMatches(ctx context.Context) ([]models.RawMatch, error)
	MatchStats(ctx context.Context, matchURL string) (*models.MatchStats, error)
	AllMatchStats(ctx context.Context) (map[string]betclic.StatsEntry, error)
	MatchOdds(ctx context.Context, matchURL string) ([]any, error)
	PositiveEVOdds(ctx context.Context, matchURL string) ([]models.EVBet, error)
}

// Server is a thin HTTP layer over the Scraper operations. Every error
// surfaces as a structured status/message payload, never as an opaque
// failure.
type Server struct {
	scraper Scraper
	cfg     config.ServerConfig
}

func New(cfg *config.Config, scraper Scraper) *Server {
	return &Server{scraper: scraper, cfg: cfg.Server}
}

// Run starts the HTTP server and shuts it down when ctx ends.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read_header_timeout must be specified in config")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.mux(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Scraper API listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("scraper API server: %w", err)
	}
	return nil
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlePing)
	mux.HandleFunc("GET /health", handleHealth)

	mux.HandleFunc("GET /live-matches", s.handleLiveMatches)
	mux.HandleFunc("GET /live-match-urls", s.handleLiveMatchURLs)
	mux.HandleFunc("GET /raw-matches", s.handleRawMatches)
	mux.HandleFunc("GET /all-match-stats", s.handleAllMatchStats)
	mux.HandleFunc("POST /match-stats", s.handleMatchStats)
	mux.HandleFunc("POST /match-odds", s.handleMatchOdds)
	mux.HandleFunc("POST /positive-ev-odds", s.handlePositiveEVOdds)

	return mux
}
