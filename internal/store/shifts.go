package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kvural/perftrack/internal/perf"
)

// StartShift inserts a new shift row. The store does not enforce a single
// open shift unless the strict_shifts setting is on, in which case a start
// while another shift is open fails with ErrShiftOpen.
func (s *Store) StartShift(startTime, skill string) (*Shift, error) {
	if s.GetSettingBool("strict_shifts") {
		open, err := s.GetCurrentShift()
		if err != nil {
			return nil, err
		}
		if open != nil {
			return nil, ErrShiftOpen
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO shifts (start_time, skill, created_at) VALUES (?, ?, ?)`,
		startTime, skill, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start shift: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.getShift(id)
}

// FinishShift sets the end time on the most recently created open shift and
// returns it. When no shift is open it is a silent no-op returning (nil, nil).
// Older open shifts are never touched; starting twice and finishing once
// strands the first one open.
func (s *Store) FinishShift(endTime string) (*Shift, error) {
	open, err := s.GetCurrentShift()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	_, err = s.db.Exec(`UPDATE shifts SET end_time = ? WHERE id = ?`, endTime, open.ID)
	if err != nil {
		return nil, fmt.Errorf("finish shift: %w", err)
	}
	return s.getShift(open.ID)
}

// GetCurrentShift returns the most recently created shift with no end time,
// or (nil, nil) when none is open.
func (s *Store) GetCurrentShift() (*Shift, error) {
	row := s.db.QueryRow(
		`SELECT id, start_time, end_time, skill, created_at
		 FROM shifts WHERE end_time IS NULL
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
	)
	sh, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current shift: %w", err)
	}
	return sh, nil
}

// GetShiftHistory returns all closed shifts, newest-first.
func (s *Store) GetShiftHistory() ([]Shift, error) {
	rows, err := s.db.Query(
		`SELECT id, start_time, end_time, skill, created_at
		 FROM shifts WHERE end_time IS NOT NULL
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("shift history: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *sh)
	}
	return shifts, rows.Err()
}

func (s *Store) getShift(id int64) (*Shift, error) {
	row := s.db.QueryRow(
		`SELECT id, start_time, end_time, skill, created_at FROM shifts WHERE id = ?`, id,
	)
	sh, err := scanShift(row)
	if err != nil {
		return nil, fmt.Errorf("get shift %d: %w", id, err)
	}
	return sh, nil
}

func scanShift(row rowScanner) (*Shift, error) {
	sh := &Shift{}
	var endTime sql.NullString
	var createdAt string
	if err := row.Scan(&sh.ID, &sh.StartTime, &endTime, &sh.Skill, &createdAt); err != nil {
		return nil, err
	}
	if endTime.Valid {
		sh.EndTime = &endTime.String
	}
	sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sh, nil
}

// ShiftDuration returns end minus start in minutes, floored at 0. Missing or
// malformed boundaries yield 0 rather than an error.
func ShiftDuration(sh *Shift) float64 {
	if sh == nil || sh.EndTime == nil {
		return 0
	}
	start, err := perf.ParseClock(sh.StartTime)
	if err != nil {
		return 0
	}
	end, err := perf.ParseClock(*sh.EndTime)
	if err != nil {
		return 0
	}
	d := float64(end - start)
	if d < 0 {
		return 0
	}
	return d
}

// CurrentShiftDuration returns now minus start in minutes for an open shift,
// floored at 0 with the same lenient handling as ShiftDuration.
func CurrentShiftDuration(sh *Shift, now time.Time) float64 {
	if sh == nil {
		return 0
	}
	start, err := perf.ParseClock(sh.StartTime)
	if err != nil {
		return 0
	}
	d := float64(now.Hour()*60 + now.Minute() - start)
	if d < 0 {
		return 0
	}
	return d
}
