package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewRecordForm
	viewRecords
	viewStats
	viewShifts
	viewSettings
	viewDebug
)

var viewNames = []string{"Home", "New Record", "Records", "Stats", "Shifts", "Settings", "Debug"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type recordSavedMsg struct {
	id      int64
	updated bool
}

type recordDeletedMsg struct {
	id int64
}

// editRecordMsg asks the app to open the record form pre-filled for editing.
type editRecordMsg struct {
	id int64
}

type shiftStartedMsg struct{}
type shiftFinishedMsg struct {
	closed bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMinutes(m float64) string {
	h := int(m) / 60
	mm := int(m) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", mm)
	}
	return fmt.Sprintf("%dh %02dm", h, mm)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
