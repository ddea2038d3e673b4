// Package perf derives performance metrics from raw shift-task input.
// It is pure: no storage, no logging, errors go to the caller.
package perf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTimeFormat reports a time string that is not 24-hour "HH:MM".
	ErrTimeFormat = errors.New("time must be in HH:MM format")
	// ErrTargetTime reports a non-positive target time.
	ErrTargetTime = errors.New("target time must be positive")
)

// Break is a predefined break category with a fixed duration.
type Break string

const (
	BreakNone  Break = "none"
	BreakShort Break = "break" // 15 minutes
	BreakLunch Break = "lunch" // 30 minutes
)

// BreakMinutes resolves a break category to its fixed duration in minutes.
// Unknown categories count as no break.
func BreakMinutes(b Break) float64 {
	switch b {
	case BreakShort:
		return 15
	case BreakLunch:
		return 30
	default:
		return 0
	}
}

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	return h*60 + m, nil
}

// Input is the raw form data for one completed task.
type Input struct {
	Start      string // "HH:MM"
	Finish     string // "HH:MM"
	TargetTime float64
	BreakType  Break
	HasBreak   bool
	PaidBreak  float64
	UnpaidBreak float64
	DelaysTime float64
}

// Metrics is the derived result for one completed task.
type Metrics struct {
	TotalElapsed  float64 // minutes between start and finish, day-wrap applied
	BreakTime     float64
	ActualTime    float64 // elapsed minus breaks, never negative
	EffectiveTime float64 // actual minus delays, floored at 1 minute
	Performance   float64 // target / effective * 100, unbounded above
}

// Calculate transforms raw input into performance metrics.
//
// A finish time earlier than the start time means the task crossed midnight,
// so 24 hours are added before differencing. Effective time is floored at one
// minute so that over-subtracted intervals still produce a defined (very
// high) percentage instead of a division by zero.
func Calculate(in Input) (Metrics, error) {
	if in.TargetTime <= 0 {
		return Metrics{}, fmt.Errorf("%w: got %v", ErrTargetTime, in.TargetTime)
	}
	start, err := ParseClock(in.Start)
	if err != nil {
		return Metrics{}, fmt.Errorf("start time: %w", err)
	}
	finish, err := ParseClock(in.Finish)
	if err != nil {
		return Metrics{}, fmt.Errorf("finish time: %w", err)
	}
	if finish < start {
		finish += 24 * 60
	}

	m := Metrics{TotalElapsed: float64(finish - start)}
	m.BreakTime = in.breakTime()
	m.ActualTime = m.TotalElapsed - m.BreakTime
	if m.ActualTime < 0 {
		m.ActualTime = 0
	}
	m.EffectiveTime = m.ActualTime - in.DelaysTime
	if m.EffectiveTime < 1 {
		m.EffectiveTime = 1
	}
	m.Performance = in.TargetTime / m.EffectiveTime * 100
	return m, nil
}

// breakTime resolves total break minutes: a category wins over explicit
// entries, explicit paid+unpaid apply only when the break flag is set.
func (in Input) breakTime() float64 {
	if in.BreakType != "" && in.BreakType != BreakNone {
		return BreakMinutes(in.BreakType)
	}
	if in.HasBreak {
		return in.PaidBreak + in.UnpaidBreak
	}
	return 0
}
