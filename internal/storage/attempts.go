package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Attempt is one play of one level, from start to finish.
type Attempt struct {
	ID         string // UUID assigned by the caller
	Player     string
	Mode       string
	Level      int
	Seed       int64
	Status     string
	Score      int
	Reward     int
	StartedAt  time.Time
	FinishedAt time.Time // zero while in progress
}

// StartAttempt records a new in-progress attempt.
func (s *Store) StartAttempt(a Attempt) error {
	_, err := s.db.Exec(
		`INSERT INTO attempts (id, player, mode, level, seed, status)
		 VALUES (?, ?, ?, ?, ?, 'playing')`,
		a.ID, a.Player, a.Mode, a.Level, a.Seed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot start attempt: %w", err)
	}
	return nil
}

// FinishAttempt stores the final status, score and reward of an attempt.
func (s *Store) FinishAttempt(id, status string, score, reward int) error {
	res, err := s.db.Exec(
		`UPDATE attempts SET status = ?, score = ?, reward = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, score, reward, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish attempt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoAttempt
	}
	return nil
}

// RecentAttempts returns the player's latest attempts, newest first.
func (s *Store) RecentAttempts(player string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, level, seed, status, score, reward, started_at, finished_at
		 FROM attempts
		 WHERE player = ?
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var started, finished any
		if err := rows.Scan(&a.ID, &a.Player, &a.Mode, &a.Level, &a.Seed, &a.Status,
			&a.Score, &a.Reward, &started, &finished); err != nil {
			return nil, fmt.Errorf("storage: cannot scan attempt: %w", err)
		}
		a.StartedAt = parseTime(started)
		a.FinishedAt = parseTime(finished)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// AttemptCounts returns how many attempts of each status the player has.
func (s *Store) AttemptCounts(player string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT status, COUNT(*) FROM attempts WHERE player = ? GROUP BY status",
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count attempts: %w", err)
	}
	return scanCounts(rows)
}

func scanCounts(rows *sql.Rows) (map[string]int, error) {
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan count: %w", err)
		}
		out[k] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
