package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/perf"
	"github.com/kvural/perftrack/internal/store"
)

// formModel collects raw record input, derives metrics through the
// calculator and hands the combined result to the store. With editingID set
// it updates the existing record instead of inserting.
type formModel struct {
	store  *store.Store
	width  int
	height int

	form      *huh.Form
	editingID *int64

	// Field pointers survive huh's value copies.
	taskName    *string
	target      *string
	start       *string
	finish      *string
	hasBreak    *bool
	breakType   *string
	paidBreak   *string
	unpaidBreak *string
	hasDelays   *bool
	delaysTime  *string
	delayNotes  *string
}

func newFormModel(s *store.Store) formModel {
	taskName, target, start, finish := "", "", "", ""
	breakType := string(perf.BreakNone)
	paidBreak, unpaidBreak, delaysTime, delayNotes := "0", "0", "0", ""
	hasBreak, hasDelays := false, false

	return formModel{
		store:       s,
		taskName:    &taskName,
		target:      &target,
		start:       &start,
		finish:      &finish,
		hasBreak:    &hasBreak,
		breakType:   &breakType,
		paidBreak:   &paidBreak,
		unpaidBreak: &unpaidBreak,
		hasDelays:   &hasDelays,
		delaysTime:  &delaysTime,
		delayNotes:  &delayNotes,
	}
}

func (f *formModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

// reset clears the fields and builds a fresh form for a new record.
func (f formModel) reset() (formModel, tea.Cmd) {
	*f.taskName, *f.target, *f.start, *f.finish = "", "", "", ""
	*f.hasBreak, *f.hasDelays = false, false
	*f.breakType = string(perf.BreakNone)
	*f.paidBreak, *f.unpaidBreak, *f.delaysTime, *f.delayNotes = "0", "0", "0", ""
	f.editingID = nil
	return f.build()
}

// loadRecord pre-fills the form from an existing record for editing.
func (f formModel) loadRecord(id int64) (formModel, tea.Cmd) {
	r, err := f.store.GetRecord(id)
	if err != nil || r == nil {
		m, cmd := f.reset()
		return m, cmd
	}

	*f.taskName = r.TaskName
	*f.target = strconv.FormatFloat(r.TargetTime, 'f', -1, 64)
	*f.start = r.StartTime
	*f.finish = r.EndTime
	*f.hasBreak = r.HasBreak
	*f.breakType = r.BreakType
	*f.paidBreak = strconv.FormatFloat(r.PaidBreakTime, 'f', -1, 64)
	*f.unpaidBreak = strconv.FormatFloat(r.UnpaidBreakTime, 'f', -1, 64)
	*f.hasDelays = r.HasDelays
	*f.delaysTime = strconv.FormatFloat(r.DelaysTime, 'f', -1, 64)
	*f.delayNotes = r.DelayNotes
	f.editingID = &id
	return f.build()
}

func (f formModel) build() (formModel, tea.Cmd) {
	breakOptions := []huh.Option[string]{
		huh.NewOption("None", string(perf.BreakNone)),
		huh.NewOption("Short break (15m)", string(perf.BreakShort)),
		huh.NewOption("Lunch (30m)", string(perf.BreakLunch)),
	}

	validTarget := func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("enter minutes as a number")
		}
		if v <= 0 {
			return perf.ErrTargetTime
		}
		return nil
	}
	validMinutes := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < 0 {
			return fmt.Errorf("enter minutes as a non-negative number")
		}
		return nil
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(f.taskName),
			huh.NewInput().Title("Target time (minutes)").Value(f.target).Validate(validTarget),
			huh.NewInput().Title("Start (HH:MM)").Value(f.start).Validate(validateClock),
			huh.NewInput().Title("Finish (HH:MM)").Value(f.finish).Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Took a break?").Value(f.hasBreak),
			huh.NewSelect[string]().Title("Break type").Options(breakOptions...).Value(f.breakType),
			huh.NewInput().Title("Paid break (minutes)").Value(f.paidBreak).Validate(validMinutes),
			huh.NewInput().Title("Unpaid break (minutes)").Value(f.unpaidBreak).Validate(validMinutes),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Any delays?").Value(f.hasDelays),
			huh.NewInput().Title("Delay time (minutes)").Value(f.delaysTime).Validate(validMinutes),
			huh.NewInput().Title("Delay notes").Value(f.delayNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f, f.form.Init()
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if f.form == nil {
		return f, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		f.form = nil
		f.editingID = nil
		return f, func() tea.Msg { return statusMsg{text: "Record discarded"} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		saveCmd := f.save()
		f.form = nil
		return f, saveCmd
	}
	if f.form.State == huh.StateAborted {
		f.form = nil
		f.editingID = nil
		return f, nil
	}

	return f, cmd
}

// save derives metrics from the collected fields and writes the record.
func (f formModel) save() tea.Cmd {
	editingID := f.editingID
	in := perf.Input{
		Start:       strings.TrimSpace(*f.start),
		Finish:      strings.TrimSpace(*f.finish),
		TargetTime:  parseMinutes(*f.target),
		BreakType:   perf.Break(*f.breakType),
		HasBreak:    *f.hasBreak,
		PaidBreak:   parseMinutes(*f.paidBreak),
		UnpaidBreak: parseMinutes(*f.unpaidBreak),
	}
	if *f.hasDelays {
		in.DelaysTime = parseMinutes(*f.delaysTime)
	}
	taskName := strings.TrimSpace(*f.taskName)
	delayNotes := *f.delayNotes
	hasDelays := *f.hasDelays
	s := f.store

	return func() tea.Msg {
		metrics, err := perf.Calculate(in)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}

		skill, _ := s.GetSetting("default_skill")

		id, err := s.SaveRecord(store.RecordInput{
			TaskName:        taskName,
			TargetTime:      in.TargetTime,
			ActualTime:      metrics.ActualTime,
			Performance:     metrics.Performance,
			StartTime:       in.Start,
			EndTime:         in.Finish,
			BreakType:       string(in.BreakType),
			BreakTime:       metrics.BreakTime,
			HasBreak:        in.HasBreak,
			DelaysTime:      in.DelaysTime,
			HasDelays:       hasDelays,
			DelayNotes:      delayNotes,
			Skill:           skill,
			PaidBreakTime:   in.PaidBreak,
			UnpaidBreakTime: in.UnpaidBreak,
		}, editingID)
		if err != nil {
			logbuf.Error("save record failed", "err", err)
			return statusMsg{text: fmt.Sprintf("Could not save record: %v", err), isError: true}
		}

		logbuf.Info("record saved", "id", id, "task", taskName, "performance", metrics.Performance)
		return recordSavedMsg{id: id, updated: editingID != nil}
	}
}

func (f formModel) active() bool {
	return f.form != nil
}

func (f formModel) view() string {
	w := f.width - 4

	title := titleStyle.Render("New Record")
	if f.editingID != nil {
		title = titleStyle.Render(fmt.Sprintf("Edit Record #%d", *f.editingID))
	}

	if f.form == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Record saved. Press n for another."),
		))
	}

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", f.form.View(),
	))
}

// parseMinutes reads a minutes field, treating blank or bad input as 0.
// Field validators already reject bad input before submission.
func parseMinutes(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
