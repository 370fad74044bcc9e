// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's daily chain (creates or reuses session)
//   - POST /daily/link        → submit the next word for today's chain
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each player gets one attempt per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// Deterministic puzzle selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordchain/internal/daily"
	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by playerID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily chain.
type dailySession struct {
	mu          sync.Mutex // serializes submissions for one player
	PlayerID    string
	Date        string
	PuzzleIndex int
	Game        *game.Game
	Start       time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/link", dd.handleLink)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, puzzle index and puzzle.
func (d *dailyServer) today() (date string, idx int, p words.Puzzle) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	idx = daily.PuzzleIndex(now, d.salt, len(words.Puzzles()))
	return date, idx, words.At(idx)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Start  string `json:"start"`
	Target string `json:"target"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return its game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, _ := d.srv.playerID(w, r)
	date, idx, p := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Start: p.Start, Target: p.Target, Played: true})
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			PlayerID:    uid,
			Date:        date,
			PuzzleIndex: idx,
			Game:        game.New(p.Start, p.Target, d.srv.cfg.MaxLinks),
			Start:       time.Now(),
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	sess.mu.Lock()
	res := dailyNewRes{
		GameID: sess.Game.ID,
		Date:   date,
		Start:  sess.Game.Start,
		Target: sess.Game.Target,
		Played: sess.Game.Finished,
	}
	sess.mu.Unlock()
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /daily/link

// dailyLinkRes is the response payload for /daily/link.
type dailyLinkRes struct {
	Result game.Result      `json:"result"`
	State  string           `json:"state"` // playing | won | lost | locked
	Chain  []game.ChainLink `json:"chain"`
	Score  game.Score       `json:"score"`
}

// handleLink validates and applies a word for today's daily session.
// Finished sessions answer "locked"; a win is persisted to daily_results.
func (d *dailyServer) handleLink(w http.ResponseWriter, r *http.Request) {
	uid, _ := d.srv.playerID(w, r)

	var req linkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _, _ := d.today()

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || sess.Game.ID != req.GameID {
		jsonError(w, http.StatusConflict, "no_session")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	g := sess.Game
	if g.Finished {
		_ = json.NewEncoder(w).Encode(dailyLinkRes{State: "locked", Chain: g.Chain, Score: g.Score()})
		return
	}

	res, err := g.Submit(r.Context(), d.srv.v, req.Word)
	if err != nil {
		jsonError(w, http.StatusConflict, "game_finished")
		return
	}

	if g.Won {
		sc := g.Score()
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:      uid,
			Date:        date,
			PuzzleIndex: sess.PuzzleIndex,
			Steps:       len(g.Chain),
			Stars:       g.TotalStars,
			FinalScore:  sc.Final,
			ElapsedMs:   int(time.Since(sess.Start).Milliseconds()),
		}); err != nil {
			log.Warn().Err(err).Str("player", uid).Msg("daily result insert")
		}
	}
	_ = json.NewEncoder(w).Encode(dailyLinkRes{Result: res, State: g.State(), Chain: g.Chain, Score: g.Score()})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		jsonError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
