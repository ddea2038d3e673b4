package store

import (
	"database/sql"
	"fmt"
	"time"
)

// GetOrCreateTask returns the task with an exact (name, target) match,
// inserting it first if no such task exists. Records always resolve their
// task through here, so (name, target) pairs stay de-duplicated.
func (s *Store) GetOrCreateTask(name string, targetTime float64) (*Task, error) {
	t, err := s.getTaskByName(name, targetTime)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (name, target_time, created_at) VALUES (?, ?, ?)`,
		name, targetTime, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) getTaskByName(name string, targetTime float64) (*Task, error) {
	t := &Task{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, target_time, created_at FROM tasks WHERE name = ? AND target_time = ?`,
		name, targetTime,
	).Scan(&t.ID, &t.Name, &t.TargetTime, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task by name: %w", err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, target_time, created_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.TargetTime, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(`SELECT id, name, target_time, created_at FROM tasks ORDER BY name, target_time`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.TargetTime, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
