package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Profile is a player's persistent progress.
type Profile struct {
	Player    string
	Coins     int
	MaxLevel  int // highest unlocked campaign level
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnsureProfile returns the player's profile, creating it with starter
// inventory if it does not exist yet.
func (s *Store) EnsureProfile(player string, starter map[string]int) (Profile, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec("INSERT OR IGNORE INTO profiles (player) VALUES (?)", player)
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot create profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		for kind, qty := range starter {
			if qty <= 0 {
				continue
			}
			if _, err := tx.Exec(
				"INSERT INTO inventory (player, power_up, qty) VALUES (?, ?, ?)",
				player, kind, qty,
			); err != nil {
				return Profile{}, fmt.Errorf("storage: cannot seed inventory: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Profile{}, fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return s.Profile(player)
}

// Profile returns the player's profile or ErrNoProfile.
func (s *Store) Profile(player string) (Profile, error) {
	p := Profile{Player: player}
	var created, updated any
	err := s.db.QueryRow(
		"SELECT coins, max_level, created_at, updated_at FROM profiles WHERE player = ?",
		player,
	).Scan(&p.Coins, &p.MaxLevel, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNoProfile
	}
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot load profile: %w", err)
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// AddCoins adjusts the player's coin balance and returns the new balance.
// The balance never goes below zero.
func (s *Store) AddCoins(player string, delta int) (int, error) {
	res, err := s.db.Exec(
		`UPDATE profiles SET coins = coins + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE player = ? AND coins + ? >= 0`,
		delta, player, delta,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add coins: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.Profile(player); err != nil {
			return 0, err
		}
		return 0, ErrInsufficient
	}

	p, err := s.Profile(player)
	if err != nil {
		return 0, err
	}
	return p.Coins, nil
}

// UnlockLevel raises the player's highest unlocked level to at least
// level and returns the resulting value. It never lowers it.
func (s *Store) UnlockLevel(player string, level int) (int, error) {
	res, err := s.db.Exec(
		`UPDATE profiles SET max_level = MAX(max_level, ?), updated_at = CURRENT_TIMESTAMP
		 WHERE player = ?`,
		level, player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot unlock level: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNoProfile
	}

	p, err := s.Profile(player)
	if err != nil {
		return 0, err
	}
	return p.MaxLevel, nil
}

// Inventory returns the player's power-up stock keyed by power-up key.
func (s *Store) Inventory(player string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT power_up, qty FROM inventory WHERE player = ?",
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inventory: %w", err)
	}
	defer rows.Close()

	inv := make(map[string]int)
	for rows.Next() {
		var kind string
		var qty int
		if err := rows.Scan(&kind, &qty); err != nil {
			return nil, fmt.Errorf("storage: cannot scan inventory row: %w", err)
		}
		inv[kind] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inv, nil
}

// AdjustInventory adds delta to one power-up's stock and returns the new
// quantity. It returns ErrInsufficient if the stock would go negative.
func (s *Store) AdjustInventory(player, kind string, delta int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var qty int
	err = tx.QueryRow(
		"SELECT qty FROM inventory WHERE player = ? AND power_up = ?",
		player, kind,
	).Scan(&qty)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: cannot read inventory: %w", err)
	}

	qty += delta
	if qty < 0 {
		return 0, ErrInsufficient
	}

	if _, err := tx.Exec(
		`INSERT INTO inventory (player, power_up, qty) VALUES (?, ?, ?)
		 ON CONFLICT(player, power_up) DO UPDATE SET qty = excluded.qty`,
		player, kind, qty,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot update inventory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit inventory: %w", err)
	}
	return qty, nil
}

// MarkDailyCompleted records the player's daily completion for day.
// It returns false if the day was already completed.
func (s *Store) MarkDailyCompleted(player, day string, score int) (bool, error) {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO daily_completions (player, day, score) VALUES (?, ?, ?)",
		player, day, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot record daily completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n == 1, nil
}

// DailyCompleted reports whether the player completed day.
func (s *Store) DailyCompleted(player, day string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM daily_completions WHERE player = ? AND day = ?",
		player, day,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query daily completion: %w", err)
	}
	return n > 0, nil
}

// DailyStreak returns how many consecutive days ending at day the player
// completed.
func (s *Store) DailyStreak(player string, day time.Time) (int, error) {
	streak := 0
	for d := day; ; d = d.AddDate(0, 0, -1) {
		done, err := s.DailyCompleted(player, d.Format("2006-01-02"))
		if err != nil {
			return 0, err
		}
		if !done {
			return streak, nil
		}
		streak++
	}
}
