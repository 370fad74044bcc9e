package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordchain/internal/game"
)

// SQLite mirrors of in-memory games. All writes are best-effort: a failed
// write is logged and play continues from the in-memory store.

func (s *Server) insertGame(ctx context.Context, g *game.Game, owner string, isUser bool) {
	var userID, anonID any
	if isUser {
		userID = owner
	} else {
		anonID = owner
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, start_word, target_word, started_at, status)
		 VALUES (?,?,?,?,?,?,?)`,
		g.ID, userID, anonID, g.Start, g.Target, g.StartedAt.Format(time.RFC3339), g.State())
	if err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("insert game")
	}
}

// recordSubmission stores an accepted link or counts a failure, then finishes
// the row when the submission ended the game.
func (s *Server) recordSubmission(ctx context.Context, v gameView, res game.Result) {
	if res.OK() {
		l := v.Chain[len(v.Chain)-1]
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO game_links (game_id, seq, word, relation, heat, stars, is_hub) VALUES (?,?,?,?,?,?,?)`,
			v.GameID, len(v.Chain), l.Word, string(l.Relation), l.Heat, l.Stars, l.IsHub)
		if err != nil {
			log.Warn().Err(err).Str("game", v.GameID).Msg("insert link")
		}
		_, err = s.db.ExecContext(ctx, `UPDATE games SET steps=? WHERE id=?`, len(v.Chain), v.GameID)
		if err != nil {
			log.Warn().Err(err).Str("game", v.GameID).Msg("update steps")
		}
	} else {
		_, err := s.db.ExecContext(ctx, `UPDATE games SET failures=? WHERE id=?`, v.Failures, v.GameID)
		if err != nil {
			log.Warn().Err(err).Str("game", v.GameID).Msg("update failures")
		}
	}
	if v.State != "playing" {
		s.finishGame(ctx, v)
	}
}

// finishGame stamps the final status and score, and bumps the stats of the
// user who owns the row. Guest games count for nobody until claimed.
func (s *Server) finishGame(ctx context.Context, v gameView) {
	var score any
	if v.State == "won" {
		score = v.Score.Final
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET status=?, steps=?, failures=?, final_score=?, finished_at=? WHERE id=?`,
		v.State, len(v.Chain), v.Failures, score, time.Now().UTC().Format(time.RFC3339), v.GameID)
	if err != nil {
		log.Warn().Err(err).Str("game", v.GameID).Msg("finish game")
	}

	var owner sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT user_id FROM games WHERE id=?`, v.GameID).Scan(&owner)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Str("game", v.GameID).Msg("game owner")
		return
	}
	if owner.Valid && owner.String != "" {
		s.bumpStats(ctx, owner.String, v)
	}
}

// bumpStats updates games_played, wins, streak and best_score for a user.
// best_score keeps the lowest winning score.
func (s *Server) bumpStats(ctx context.Context, userID string, v gameView) {
	var err error
	if v.State == "won" {
		_, err = s.db.ExecContext(ctx, `
			UPDATE users SET games_played = games_played + 1,
			                 wins = wins + 1,
			                 streak = streak + 1,
			                 best_score = CASE WHEN best_score IS NULL OR ? < best_score THEN ? ELSE best_score END
			WHERE id=?`, v.Score.Final, v.Score.Final, userID)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + 1, streak = 0 WHERE id=?`, userID)
	}
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("bump stats")
	}
}
