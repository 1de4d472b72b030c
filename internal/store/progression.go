package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/progression"
)

// LoadProgression returns the saved state, or ok=false when nothing has been
// saved yet.
func (s *Store) LoadProgression() (st progression.State, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT xp, total_xp, currency, click_power, auto_rate FROM progression WHERE id = 1`,
	).Scan(&st.XP, &st.TotalXP, &st.Currency, &st.ClickPower, &st.AutoRatePerSecond)
	if err == sql.ErrNoRows {
		return progression.State{}, false, nil
	}
	if err != nil {
		return progression.State{}, false, fmt.Errorf("load progression: %w", err)
	}

	rows, err := s.db.Query(`SELECT upgrade_id, count FROM owned_upgrades WHERE count > 0`)
	if err != nil {
		return progression.State{}, false, fmt.Errorf("load upgrades: %w", err)
	}
	defer rows.Close()

	st.Owned = map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return progression.State{}, false, err
		}
		st.Owned[id] = n
	}
	if err := rows.Err(); err != nil {
		return progression.State{}, false, err
	}
	return st, true, nil
}

// SaveProgression writes the state and its owned upgrades in one
// transaction.
func (s *Store) SaveProgression(st progression.State) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO progression (id, xp, total_xp, currency, click_power, auto_rate, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				xp = excluded.xp, total_xp = excluded.total_xp, currency = excluded.currency,
				click_power = excluded.click_power, auto_rate = excluded.auto_rate,
				updated_at = excluded.updated_at`,
			st.XP, st.TotalXP, st.Currency, st.ClickPower, st.AutoRatePerSecond, now,
		)
		if err != nil {
			return fmt.Errorf("save progression: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM owned_upgrades`); err != nil {
			return fmt.Errorf("clear upgrades: %w", err)
		}
		for id, n := range st.Owned {
			if n <= 0 {
				continue
			}
			if _, err := tx.Exec(`INSERT INTO owned_upgrades (upgrade_id, count) VALUES (?, ?)`, id, n); err != nil {
				return fmt.Errorf("save upgrade %q: %w", id, err)
			}
		}
		return nil
	})
}

// Checkpoint persists the session: earnings since the last checkpoint are
// added to today's totals and the state is saved if it changed.
func (s *Store) Checkpoint(sess *progression.Session, now time.Time) error {
	if earned := sess.DrainEarnings(); len(earned) > 0 {
		if err := s.AddDailyXP(now, earned); err != nil {
			return err
		}
	}
	st, dirty := sess.Checkout()
	if !dirty {
		return nil
	}
	if err := s.SaveProgression(st); err != nil {
		sess.MarkDirty()
		return err
	}
	return nil
}

// ResetProgression deletes the saved state and owned upgrades.
func (s *Store) ResetProgression() error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM progression`); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM owned_upgrades`)
		return err
	})
}

const filterKey = "filter"

// LoadFilter returns the saved filter, or def when none is stored.
func (s *Store) LoadFilter(def board.FilterConfig) (board.FilterConfig, error) {
	raw, err := s.GetSetting(filterKey)
	if err != nil {
		if isNotFound(err) {
			return def, nil
		}
		return def, err
	}
	var f board.FilterConfig
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return def, fmt.Errorf("decode filter: %w", err)
	}
	if f.SortMode == "" {
		f.SortMode = board.SortOriginal
	}
	return f, nil
}

func (s *Store) SaveFilter(f board.FilterConfig) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}
	return s.SetSetting(filterKey, string(raw))
}
