package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/store"
)

// debugModel shows the most recent log lines from the process-wide ring.
type debugModel struct {
	store  *store.Store
	width  int
	height int
}

func newDebugModel(s *store.Store) debugModel {
	return debugModel{store: s}
}

func (m *debugModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m debugModel) view() string {
	w := m.width - 4

	lines := m.store.GetSettingInt("debug_log_lines", 50)

	var rows []string
	rows = append(rows, titleStyle.Render("Debug Panel"), "")

	recent := logbuf.Recent(lines)
	if len(recent) == 0 {
		rows = append(rows, mutedStyle.Render("  No log lines yet"))
	}
	for _, line := range recent {
		rows = append(rows, "  "+mutedStyle.Render(truncate(line, w-4)))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(rows, "\n"),
	))
}
