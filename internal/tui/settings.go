package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings []store.Setting
	cursor   int

	formActive bool
	form       *huh.Form
	formValue  *string
	editingKey string
}

func newSettingsModel(s *store.Store) settingsModel {
	value := ""
	return settingsModel{store: s, formValue: &value}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := m.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		if m.cursor >= len(m.settings) {
			m.cursor = max(0, len(m.settings)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.settings)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			if len(m.settings) > 0 {
				return m.showEditForm()
			}
		}
	}
	return m, nil
}

func (m settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	setting := m.settings[m.cursor]
	m.editingKey = setting.Key
	*m.formValue = setting.Value

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(setting.Key).Value(m.formValue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State == huh.StateAborted {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		key, value := m.editingKey, *m.formValue
		if err := m.store.SetSetting(key, value); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Could not save setting: %v", err), isError: true}
			}
		}
		logbuf.Info("setting changed", "key", key, "value", value)
		return m, m.refresh()
	}

	return m, cmd
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit Setting"), "", m.form.View(),
		))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"), "")

	for i, setting := range m.settings {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %s", cursor, setting.Key, setting.Value)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
