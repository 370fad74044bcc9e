package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one player's finished daily puzzle.
type Result struct {
	UserID      string  `json:"userId"`
	Date        string  `json:"date"`
	PuzzleIndex int     `json:"puzzleIndex"`
	Steps       int     `json:"steps"`
	Stars       int     `json:"stars"`
	FinalScore  float64 `json:"finalScore"`
	ElapsedMs   int     `json:"elapsedMs"`
}

// LBRow is one leaderboard line.
type LBRow struct {
	UserID     string  `json:"userId"`
	Steps      int     `json:"steps"`
	FinalScore float64 `json:"finalScore"`
	ElapsedMs  int     `json:"elapsedMs"`
}

// Store persists daily results. One row per user and date.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("daily played: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records r. A second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, puzzle_index, steps, stars, final_score, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.PuzzleIndex, r.Steps, r.Stars, r.FinalScore, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("daily insert: %w", err)
	}
	return nil
}

// Leaderboard returns the best results for date: lowest score, then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, steps, final_score, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY final_score ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Steps, &r.FinalScore, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
