package store

import (
	"fmt"
	"strconv"
)

// Settings live in a key/value table seeded at migration time with:
//
//	default_skill    skill pre-filled on new records and shifts ("Picker")
//	strict_shifts    "1" makes StartShift reject a second open shift
//	week_start       "monday" or "sunday", anchors the weekly stats window
//	recent_limit     how many records the home view lists
//	debug_log_lines  how many log lines the debug panel shows
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// GetSettingInt reads a count-valued setting. Missing, unparsable or
// non-positive values fall back.
func (s *Store) GetSettingInt(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// GetSettingBool reports whether a toggle setting is on ("1").
func (s *Store) GetSettingBool(key string) bool {
	v, err := s.GetSetting(key)
	return err == nil && v == "1"
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
