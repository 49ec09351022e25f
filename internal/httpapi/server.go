// Package httpapi exposes the score database as a read-only JSON API.
//
// Routes:
//
//	GET /health
//	GET /api/games
//	GET /api/scores/{game}?limit=N
//	GET /api/stats/{game}
//	GET /api/runs/{id}
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// ScoreReader is the part of the score store the API reads from.
type ScoreReader interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	ScoreByRunID(runID string) (*storage.ScoreEntry, error)
}

// maxLimit caps the number of scores a single request may ask for.
const maxLimit = 100

// Server serves the scoreboard over HTTP.
type Server struct {
	r      *chi.Mux
	scores ScoreReader
	logger *log.Logger
}

// New builds the router and registers routes. logger may be nil.
func New(scores ScoreReader, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), scores: scores, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleGames)
		r.With(knownGame).Get("/scores/{game}", s.handleScores)
		r.With(knownGame).Get("/stats/{game}", s.handleStats)
		r.Get("/runs/{id}", s.handleRun)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("Starting HTTP API", "addr", addr)
	return srv.ListenAndServe()
}

type gameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type scoreJSON struct {
	RunID     string    `json:"runId"`
	GameID    string    `json:"gameId"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	SessionID string    `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type statsJSON struct {
	GameID     string  `json:"gameId"`
	Games      int     `json:"games"`
	HighScore  int     `json:"highScore"`
	AvgScore   float64 `json:"avgScore"`
	TotalLines int64   `json:"totalLines"`
	BestLines  int     `json:"bestLines"`
	LastPlayed string  `json:"lastPlayed,omitempty"`
}

func toScoreJSON(e storage.ScoreEntry) scoreJSON {
	return scoreJSON{
		RunID:     e.RunID,
		GameID:    e.GameID,
		Score:     e.Score,
		Lines:     e.Lines,
		SessionID: e.SessionID,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	out := []gameInfo{}
	for _, g := range registry.List() {
		out = append(out, gameInfo{ID: g.ID, Title: g.Title})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.scores.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("Top scores query failed", "game", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	out := make([]scoreJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toScoreJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")

	stats, err := s.scores.GetGameStats(gameID)
	if err != nil {
		s.logger.Error("Stats query failed", "game", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	out := statsJSON{
		GameID:     gameID,
		Games:      stats.GamesCount,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		TotalLines: stats.TotalLines,
		BestLines:  stats.BestLines,
	}
	if !stats.LastPlayed.IsZero() {
		out.LastPlayed = stats.LastPlayed.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")

	entry, err := s.scores.ScoreByRunID(runID)
	if err != nil {
		s.logger.Error("Run lookup failed", "run", runID, "err", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "run_not_found")
		return
	}
	writeJSON(w, http.StatusOK, toScoreJSON(*entry))
}

// knownGame rejects game IDs that are not registered.
func knownGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !registry.Exists(chi.URLParam(r, "game")) {
			writeError(w, http.StatusNotFound, "unknown_game")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
