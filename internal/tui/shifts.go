package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/perf"
	"github.com/kvural/perftrack/internal/store"
)

type shiftsModel struct {
	store  *store.Store
	width  int
	height int

	current *store.Shift
	history []store.Shift
	now     time.Time

	form     *huh.Form
	formType string // "start", "finish"

	startTime *string
	skill     *string
	endTime   *string
	confirmed *bool
}

func newShiftsModel(s *store.Store) shiftsModel {
	startTime, skill, endTime := "", "", ""
	confirmed := false
	return shiftsModel{
		store:     s,
		now:       time.Now(),
		startTime: &startTime,
		skill:     &skill,
		endTime:   &endTime,
		confirmed: &confirmed,
	}
}

func (m *shiftsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type shiftsDataMsg struct {
	current *store.Shift
	history []store.Shift
}

func (m shiftsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		current, _ := m.store.GetCurrentShift()
		history, _ := m.store.GetShiftHistory()
		return shiftsDataMsg{current: current, history: history}
	}
}

func (m shiftsModel) update(msg tea.Msg) (shiftsModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case shiftsDataMsg:
		m.current = msg.current
		m.history = msg.history
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return m.showStartForm()
		case key.Matches(msg, keys.Finish):
			return m.showFinishForm()
		}
	}
	return m, nil
}

func (m shiftsModel) showStartForm() (shiftsModel, tea.Cmd) {
	*m.startTime = time.Now().Format("15:04")
	if skill, err := m.store.GetSetting("default_skill"); err == nil {
		*m.skill = skill
	}
	m.formType = "start"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Shift start (HH:MM)").Value(m.startTime).Validate(validateClock),
			huh.NewInput().Title("Skill").Value(m.skill),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return m, m.form.Init()
}

func (m shiftsModel) showFinishForm() (shiftsModel, tea.Cmd) {
	*m.endTime = time.Now().Format("15:04")
	*m.confirmed = false
	m.formType = "finish"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Shift end (HH:MM)").Value(m.endTime).Validate(validateClock),
			huh.NewConfirm().
				Title("Finish shift?").
				Description("You cannot add more records to this shift after finishing.").
				Value(m.confirmed),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return m, m.form.Init()
}

func (m shiftsModel) updateForm(msg tea.Msg) (shiftsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		formType := m.formType
		m.form = nil
		switch formType {
		case "start":
			return m, m.doStart(strings.TrimSpace(*m.startTime), strings.TrimSpace(*m.skill))
		case "finish":
			if !*m.confirmed {
				return m, nil
			}
			return m, m.doFinish(strings.TrimSpace(*m.endTime))
		}
	}

	return m, cmd
}

func (m shiftsModel) doStart(startTime, skill string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.StartShift(startTime, skill)
		if errors.Is(err, store.ErrShiftOpen) {
			return statusMsg{text: "A shift is already open — finish it first", isError: true}
		}
		if err != nil {
			logbuf.Error("start shift failed", "err", err)
			return statusMsg{text: fmt.Sprintf("Could not start shift: %v", err), isError: true}
		}
		logbuf.Info("shift started", "start", startTime, "skill", skill)
		return shiftStartedMsg{}
	}
}

func (m shiftsModel) doFinish(endTime string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		sh, err := s.FinishShift(endTime)
		if err != nil {
			logbuf.Error("finish shift failed", "err", err)
			return statusMsg{text: fmt.Sprintf("Could not finish shift: %v", err), isError: true}
		}
		if sh == nil {
			return shiftFinishedMsg{closed: false}
		}
		logbuf.Info("shift finished", "end", endTime)
		return shiftFinishedMsg{closed: true}
	}
}

func (m shiftsModel) formActive() bool {
	return m.form != nil
}

func (m shiftsModel) view() string {
	w := m.width - 4

	if m.form != nil {
		title := titleStyle.Render("Start Shift")
		if m.formType == "finish" {
			title = titleStyle.Render("Finish Shift")
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", m.form.View(),
		))
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Shifts"), "")

	if m.current != nil {
		elapsed := store.CurrentShiftDuration(m.current, m.now)
		rows = append(rows, fmt.Sprintf("  %s %s since %s — %s",
			successStyle.Render("●"), m.current.Skill, m.current.StartTime,
			titleStyle.Render(formatMinutes(elapsed)),
		))
	} else {
		rows = append(rows, mutedStyle.Render("  No shift running"))
	}
	rows = append(rows, "")

	rows = append(rows, titleStyle.Render("History"), "")
	if len(m.history) == 0 {
		rows = append(rows, mutedStyle.Render("  No finished shifts yet"))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-10s %-7s %-7s %s", "Date", "Skill", "Start", "End", "Duration")))
		for _, sh := range m.history {
			end := ""
			if sh.EndTime != nil {
				end = *sh.EndTime
			}
			rows = append(rows, fmt.Sprintf("  %-12s %-10s %-7s %-7s %s",
				sh.CreatedAt.Local().Format("2006-01-02"), sh.Skill,
				sh.StartTime, end, formatMinutes(store.ShiftDuration(&sh)),
			))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: start shift  f: finish shift"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func validateClock(s string) error {
	_, err := perf.ParseClock(strings.TrimSpace(s))
	return err
}
