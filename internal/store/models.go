package store

import "time"

// Task is a named unit of work with a target duration in minutes. Tasks are
// created lazily the first time a record references an unseen (name, target)
// pair and are never updated or deleted.
type Task struct {
	ID         int64
	Name       string
	TargetTime float64
	CreatedAt  time.Time
}

// Record is one completed task instance with its derived metrics. Task name
// and target come from the owning tasks row.
type Record struct {
	ID              int64
	TaskID          int64
	TaskName        string
	TargetTime      float64
	ActualTime      float64
	Performance     float64
	StartTime       string // "HH:MM"
	EndTime         string // "HH:MM"
	BreakType       string
	BreakTime       float64
	HasBreak        bool
	DelaysTime      float64
	HasDelays       bool
	DelayNotes      string
	Skill           string
	PaidBreakTime   float64
	UnpaidBreakTime float64
	CreatedAt       time.Time
}

// RecordInput is the full field set written by SaveRecord. Derived fields
// (actual time, performance) are computed by the caller before saving.
type RecordInput struct {
	TaskName        string
	TargetTime      float64
	ActualTime      float64
	Performance     float64
	StartTime       string
	EndTime         string
	BreakType       string
	BreakTime       float64
	HasBreak        bool
	DelaysTime      float64
	HasDelays       bool
	DelayNotes      string
	Skill           string
	PaidBreakTime   float64
	UnpaidBreakTime float64
}

// Shift is a labeled work session. EndTime is nil while the shift is open.
type Shift struct {
	ID        int64
	StartTime string // "HH:MM"
	EndTime   *string
	Skill     string
	CreatedAt time.Time
}

// Stats aggregates the records of one day. All fields are zero when no
// records match, never absent.
type Stats struct {
	AvgPerformance   float64
	TotalRecords     int
	TotalTime        float64
	TotalBreakTime   float64
	TotalDelayTime   float64
	BestPerformance  float64
	WorstPerformance float64
}

// WeeklyStats aggregates a 7-day window and counts the days that had records.
type WeeklyStats struct {
	Stats
	ActiveDays int
}

type Setting struct {
	Key   string
	Value string
}
