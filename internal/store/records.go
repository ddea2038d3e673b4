package store

import (
	"database/sql"
	"fmt"
	"time"
)

const recordColumns = `pr.id, pr.task_id, t.name, t.target_time, pr.actual_time,
	pr.performance_percentage, pr.start_time, pr.end_time, pr.break_type,
	pr.break_time, pr.has_break, pr.delays_time, pr.has_delays, pr.delay_notes,
	pr.skill, pr.paid_break_time, pr.unpaid_break_time, pr.created_at`

// SaveRecord upserts a performance record. With a nil id it inserts and
// returns the new identifier; otherwise it updates the existing row and
// returns ErrRecordNotFound when no row has that id. Either way the task is
// resolved through GetOrCreateTask so (name, target) pairs are reused.
func (s *Store) SaveRecord(in RecordInput, id *int64) (int64, error) {
	task, err := s.GetOrCreateTask(in.TaskName, in.TargetTime)
	if err != nil {
		return 0, err
	}

	if id != nil {
		res, err := s.db.Exec(
			`UPDATE performance_records
			 SET task_id = ?, actual_time = ?, performance_percentage = ?,
			     start_time = ?, end_time = ?, break_type = ?, break_time = ?,
			     has_break = ?, delays_time = ?, has_delays = ?, delay_notes = ?,
			     skill = ?, paid_break_time = ?, unpaid_break_time = ?
			 WHERE id = ?`,
			task.ID, in.ActualTime, in.Performance,
			in.StartTime, in.EndTime, in.BreakType, in.BreakTime,
			boolToInt(in.HasBreak), in.DelaysTime, boolToInt(in.HasDelays), in.DelayNotes,
			in.Skill, in.PaidBreakTime, in.UnpaidBreakTime,
			*id,
		)
		if err != nil {
			return 0, fmt.Errorf("update record %d: %w", *id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("update record %d: %w", *id, err)
		}
		if n == 0 {
			return 0, fmt.Errorf("update record %d: %w", *id, ErrRecordNotFound)
		}
		return *id, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO performance_records (
			task_id, actual_time, performance_percentage, start_time, end_time,
			break_type, break_time, has_break, delays_time, has_delays,
			delay_notes, skill, paid_break_time, unpaid_break_time, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, in.ActualTime, in.Performance, in.StartTime, in.EndTime,
		in.BreakType, in.BreakTime, boolToInt(in.HasBreak), in.DelaysTime, boolToInt(in.HasDelays),
		in.DelayNotes, in.Skill, in.PaidBreakTime, in.UnpaidBreakTime, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	newID, _ := res.LastInsertId()
	return newID, nil
}

// GetRecord returns the record with the given id, or (nil, nil) when absent.
func (s *Store) GetRecord(id int64) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT `+recordColumns+`
		 FROM performance_records pr
		 JOIN tasks t ON t.id = pr.task_id
		 WHERE pr.id = ?`, id,
	)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return r, nil
}

// DeleteRecord removes a record. Deleting a missing id is a no-op.
func (s *Store) DeleteRecord(id int64) error {
	_, err := s.db.Exec(`DELETE FROM performance_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return nil
}

// ListRecords returns records newest-first. A limit of 0 means no limit.
func (s *Store) ListRecords(limit int) ([]Record, error) {
	query := `SELECT ` + recordColumns + `
		 FROM performance_records pr
		 JOIN tasks t ON t.id = pr.task_id
		 ORDER BY pr.created_at DESC, pr.id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// GetRecordsForDate returns the records created on the given day, newest-first.
func (s *Store) GetRecordsForDate(date time.Time) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT `+recordColumns+`
		 FROM performance_records pr
		 JOIN tasks t ON t.id = pr.task_id
		 WHERE date(pr.created_at) = ?
		 ORDER BY pr.created_at DESC, pr.id DESC`,
		date.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("records for date: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	r := &Record{}
	var hasBreak, hasDelays int
	var createdAt string
	err := row.Scan(
		&r.ID, &r.TaskID, &r.TaskName, &r.TargetTime, &r.ActualTime,
		&r.Performance, &r.StartTime, &r.EndTime, &r.BreakType,
		&r.BreakTime, &hasBreak, &r.DelaysTime, &hasDelays, &r.DelayNotes,
		&r.Skill, &r.PaidBreakTime, &r.UnpaidBreakTime, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	r.HasBreak = hasBreak == 1
	r.HasDelays = hasDelays == 1
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
