// internal/httpserver/server.go
//
// HTTP server wiring for the wordchain backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, JSON, CORS, access log).
//   - Public endpoints: "/", "/health", "/hub".
//   - Game endpoints (optional auth): POST /game/new, /game/link, /game/giveup, /game/hint; GET /game/{id}.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: see auth.go.
//
// Notes:
//   - In-flight games live in store.Store; every accepted link, rejection and
//     finish is mirrored to SQLite on a best-effort basis (see persist.go).
//   - Rejections are normal 200 responses carrying result.rejected; only malformed
//     requests, unknown games and finished games produce error statuses.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordchain/internal/config"
	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/hint"
	"github.com/robalobadob/wordchain/internal/store"
	"github.com/robalobadob/wordchain/internal/words"
)

// Server bundles router, in-memory game store, validator and DB handle.
type Server struct {
	r     *chi.Mux
	cfg   *config.Config
	store store.Store
	db    *sql.DB
	v     *game.Validator
	hints *hint.Engine
}

// New constructs a Server, installs middleware, and registers routes.
// hints may be nil, in which case /game/hint answers 503.
func New(cfg *config.Config, st store.Store, db *sql.DB, v *game.Validator, hints *hint.Engine) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, db: db, v: v, hints: hints}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time (relation lookups included)
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordchain","endpoints":["/health","/hub","POST /game/new","POST /game/link","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/hub", s.handleHub)

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/link", s.handleLink)
		r.Post("/game/giveup", s.handleGiveUp)
		r.Post("/game/hint", s.handleHint)
		r.Get("/game/{id}", s.handleGetGame)
	})

	// Daily Challenge: OPTIONAL AUTH (guests can play; results persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// Debug: puzzle table counts
	s.r.Get("/debug/puzzles", func(w http.ResponseWriter, r *http.Request) {
		by, total := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]any{"total": total, "byDifficulty": by})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// gameView is the public snapshot of a game. The chain includes canonical word casing.
type gameView struct {
	GameID       string           `json:"gameId"`
	Start        string           `json:"start"`
	Target       string           `json:"target"`
	State        string           `json:"state"` // "playing" | "won" | "lost"
	Chain        []game.ChainLink `json:"chain"`
	HubPenalties int              `json:"hubPenalties"`
	Failures     int              `json:"failures"`
	MaxLinks     int              `json:"maxLinks"`
	Score        game.Score       `json:"score"`
	MostCreative *game.ChainLink  `json:"mostCreative,omitempty"`
}

func viewOf(g *game.Game) gameView {
	v := gameView{
		GameID:       g.ID,
		Start:        g.Start,
		Target:       g.Target,
		State:        g.State(),
		Chain:        append([]game.ChainLink{}, g.Chain...),
		HubPenalties: g.HubPenalties,
		Failures:     g.Failures,
		MaxLinks:     g.MaxLinks,
		Score:        g.Score(),
	}
	if best, ok := game.MostCreativeLink(g.Chain); ok {
		v.MostCreative = &best
	}
	return v
}

// newGameReq is the payload for POST /game/new. An empty body or both words empty → random puzzle.
type newGameReq struct {
	Start  string `json:"start"`
	Target string `json:"target"`
}

// handleNewGame creates a new in-memory game and persists an owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}

	if req.Start == "" && req.Target == "" {
		p := words.RandomPuzzle()
		req.Start, req.Target = p.Start, p.Target
	}
	g, err := game.NewChecked(req.Start, req.Target, s.cfg.MaxLinks)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_puzzle")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	owner, isUser := s.playerID(w, r)
	s.insertGame(r.Context(), g, owner, isUser)

	_ = json.NewEncoder(w).Encode(viewOf(g))
}

// linkReq is the payload for POST /game/link.
type linkReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// linkRes carries the validation result plus the updated game.
type linkRes struct {
	Result game.Result `json:"result"`
	gameView
}

// handleLink validates a submitted word against the game's chain and applies it.
func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req linkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res game.Result
	var view gameView
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		var err error
		res, err = g.Submit(r.Context(), s.v, req.Word)
		if err != nil {
			return err
		}
		view = viewOf(g)
		return nil
	})
	if !s.gameErr(w, err) {
		return
	}

	s.recordSubmission(r.Context(), view, res)
	_ = json.NewEncoder(w).Encode(linkRes{Result: res, gameView: view})
}

// handleGiveUp ends a game as lost.
func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	var req linkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var view gameView
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Finished {
			return game.ErrFinished
		}
		g.GiveUp()
		view = viewOf(g)
		return nil
	})
	if !s.gameErr(w, err) {
		return
	}
	s.finishGame(r.Context(), view)
	_ = json.NewEncoder(w).Encode(view)
}

// handleGetGame returns the current snapshot of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var view gameView
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		view = viewOf(g)
		return nil
	})
	if !s.gameErr(w, err) {
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleHint suggests a legal next word without applying it.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	if s.hints == nil {
		jsonError(w, http.StatusServiceUnavailable, "hints_disabled")
		return
	}
	var req linkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var h hint.Hint
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Finished {
			return game.ErrFinished
		}
		var err error
		h, err = s.hints.For(r.Context(), g)
		return err
	})
	if errors.Is(err, hint.ErrNoHint) {
		jsonError(w, http.StatusNotFound, "no_hint")
		return
	}
	if !s.gameErr(w, err) {
		return
	}
	_ = json.NewEncoder(w).Encode(h)
}

// handleHub lets clients preview whether a word would cost a hub penalty.
func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		jsonError(w, http.StatusBadRequest, "missing_word")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"word": word, "hub": game.IsHubWord(word)})
}

// gameErr maps store/game errors to responses. It reports whether the handler may continue.
func (s *Server) gameErr(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrFinished):
		jsonError(w, http.StatusConflict, "game_finished")
	default:
		log.Error().Err(err).Msg("game request failed")
		jsonError(w, http.StatusInternalServerError, "server_error")
	}
	return false
}

// ------------------------------- small util --------------------------------

// jsonError writes {"error": code} with status.
func jsonError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// newID returns a ULID string for users and anonymous players.
func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
