package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/progression"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func isNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }

// Tunables are the runtime knobs edited from the settings view.
type Tunables struct {
	Engine      progression.Config
	GachaCost   int64
	DefaultSort board.SortMode
}

// LoadTunables reads the tunables, falling back to defaults for any key that
// is missing or malformed.
func (s *Store) LoadTunables() (Tunables, error) {
	t := Tunables{
		Engine:      progression.DefaultConfig(),
		GachaCost:   100,
		DefaultSort: board.SortOriginal,
	}
	settings, err := s.GetAllSettings()
	if err != nil {
		return t, err
	}
	for _, kv := range settings {
		switch kv.Key {
		case "starting_currency":
			if v, err := strconv.ParseInt(kv.Value, 10, 64); err == nil && v >= 0 {
				t.Engine.StartingCurrency = v
			}
		case "base_click_power":
			if v, err := strconv.ParseInt(kv.Value, 10, 64); err == nil && v > 0 {
				t.Engine.BaseClickPower = v
			}
		case "price_growth":
			if v, err := strconv.ParseFloat(kv.Value, 64); err == nil && v >= 1 {
				t.Engine.PriceGrowth = v
			}
		case "idle_currency_rate":
			if v, err := strconv.ParseFloat(kv.Value, 64); err == nil && v >= 0 {
				t.Engine.IdleCurrencyRate = v
			}
		case "gacha_cost":
			if v, err := strconv.ParseInt(kv.Value, 10, 64); err == nil && v > 0 {
				t.GachaCost = v
			}
		case "default_sort":
			if m, err := board.ParseSortMode(kv.Value); err == nil {
				t.DefaultSort = m
			}
		}
	}
	return t, nil
}

// SaveTunables writes every tunable back to the settings table.
func (s *Store) SaveTunables(t Tunables) error {
	kv := map[string]string{
		"starting_currency":  strconv.FormatInt(t.Engine.StartingCurrency, 10),
		"base_click_power":   strconv.FormatInt(t.Engine.BaseClickPower, 10),
		"price_growth":       strconv.FormatFloat(t.Engine.PriceGrowth, 'g', -1, 64),
		"idle_currency_rate": strconv.FormatFloat(t.Engine.IdleCurrencyRate, 'g', -1, 64),
		"gacha_cost":         strconv.FormatInt(t.GachaCost, 10),
		"default_sort":       string(t.DefaultSort),
	}
	for k, v := range kv {
		if err := s.SetSetting(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

const lastLoginKey = "last_login"

// RecordLogin stores day as the last login and reports whether this is the
// very first login and whether day differs from the previous one.
func (s *Store) RecordLogin(day string) (first, newDay bool, err error) {
	prev, err := s.GetSetting(lastLoginKey)
	switch {
	case isNotFound(err):
		first, newDay = true, true
	case err != nil:
		return false, false, err
	default:
		newDay = prev != day
	}
	if newDay {
		if err := s.SetSetting(lastLoginKey, day); err != nil {
			return false, false, err
		}
	}
	return first, newDay, nil
}
