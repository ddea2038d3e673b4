package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/store"
)

type recordsModel struct {
	store  *store.Store
	width  int
	height int

	records []store.Record
	cursor  int

	// Two-step delete: first press arms, second confirms. The store deletes
	// unconditionally once asked; confirmation lives here.
	confirmingDelete bool
}

func newRecordsModel(s *store.Store) recordsModel {
	return recordsModel{store: s}
}

func (m *recordsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type recordsDataMsg struct {
	records []store.Record
}

func (m recordsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := m.store.ListRecords(0)
		return recordsDataMsg{records: records}
	}
}

func (m recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsDataMsg:
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmingDelete {
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if len(m.records) > 0 {
				m.confirmingDelete = true
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			if len(m.records) > 0 {
				id := m.records[m.cursor].ID
				return m, func() tea.Msg { return editRecordMsg{id: id} }
			}
		}
	}
	return m, nil
}

func (m recordsModel) updateConfirm(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Delete):
		m.confirmingDelete = false
		if m.cursor < len(m.records) {
			id := m.records[m.cursor].ID
			s := m.store
			return m, func() tea.Msg {
				if err := s.DeleteRecord(id); err != nil {
					logbuf.Error("delete record failed", "id", id, "err", err)
					return statusMsg{text: fmt.Sprintf("Could not delete record: %v", err), isError: true}
				}
				logbuf.Info("record deleted", "id", id)
				return recordDeletedMsg{id: id}
			}
		}
	default:
		m.confirmingDelete = false
	}
	return m, nil
}

func (m recordsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Records")

	if len(m.records) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No records yet. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf(
		"  %-10s %-22s %7s %7s %9s %-11s %s",
		"Date", "Task", "Target", "Actual", "Perf", "Time", "Notes",
	)))

	for i, r := range m.records {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		notes := ""
		if r.HasDelays && r.DelayNotes != "" {
			notes = truncate(r.DelayNotes, 20)
		}
		perf := perfStyle(r.Performance).Render(fmt.Sprintf("%8.1f%%", r.Performance))
		row := style.Render(fmt.Sprintf("%s%-10s %-22s %6.0fm %6.0fm",
			cursor, r.CreatedAt.Local().Format("2006-01-02"),
			truncate(r.TaskName, 22), r.TargetTime, r.ActualTime,
		)) + fmt.Sprintf(" %s %-11s %s", perf, r.StartTime+"–"+r.EndTime, mutedStyle.Render(notes))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	if m.confirmingDelete {
		rows = append(rows, errorStyle.Render("  Delete this record? It cannot be undone. enter: delete  any other key: cancel"))
	} else {
		rows = append(rows, mutedStyle.Render("  enter/e: edit  d: delete  x: export"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
