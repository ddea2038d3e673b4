package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/export"
	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home     homeModel
	form     formModel
	records  recordsModel
	stats    statsModel
	shifts   shiftsModel
	settings settingsModel
	debug    debugModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewHome,
		home:       newHomeModel(s),
		form:       newFormModel(s),
		records:    newRecordsModel(s),
		stats:      newStatsModel(s),
		shifts:     newShiftsModel(s),
		settings:   newSettingsModel(s),
		debug:      newDebugModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.home.loadData(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.form.setSize(a.width, contentHeight)
		a.records.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.shifts.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.debug.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.New):
			a.activeView = viewRecordForm
			var cmd tea.Cmd
			a.form, cmd = a.form.reset()
			return a, cmd
		case key.Matches(msg, keys.Start):
			a.activeView = viewShifts
			var cmd tea.Cmd
			a.shifts, cmd = a.shifts.showStartForm()
			return a, tea.Batch(a.shifts.refresh(), cmd)
		case key.Matches(msg, keys.Finish):
			a.activeView = viewShifts
			var cmd tea.Cmd
			a.shifts, cmd = a.shifts.showFinishForm()
			return a, tea.Batch(a.shifts.refresh(), cmd)
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewHome)
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewRecordForm
			var cmd tea.Cmd
			a.form, cmd = a.form.reset()
			return a, cmd
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewRecords)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewShifts)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab7):
			return a.switchView(viewDebug)
		case key.Matches(msg, keys.Tab):
			next := (a.activeView + 1) % viewState(len(viewNames))
			return a.switchView(next)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.home, cmd = a.home.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.shifts, cmd = a.shifts.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case recordSavedMsg:
		if msg.updated {
			a.status = fmt.Sprintf("Record #%d updated", msg.id)
		} else {
			a.status = fmt.Sprintf("Record #%d saved", msg.id)
		}
		a.activeView = viewRecords
		return a, tea.Batch(a.records.refresh(), a.home.loadData())

	case recordDeletedMsg:
		a.status = "Record deleted"
		return a, tea.Batch(a.records.refresh(), a.home.loadData())

	case editRecordMsg:
		a.activeView = viewRecordForm
		var cmd tea.Cmd
		a.form, cmd = a.form.loadRecord(msg.id)
		return a, cmd

	case shiftStartedMsg:
		a.status = "Shift started"
		return a, tea.Batch(a.shifts.refresh(), a.home.loadData())

	case shiftFinishedMsg:
		if msg.closed {
			a.status = "Shift finished. Great work!"
		} else {
			a.status = "No open shift to finish"
		}
		return a, tea.Batch(a.shifts.refresh(), a.home.loadData())

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	logbuf.Debug("view switched", "view", viewNames[v])
	return a, a.refreshView(v)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewRecordForm:
		a.form, cmd = a.form.update(msg)
	case viewRecords:
		a.records, cmd = a.records.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewShifts:
		a.shifts, cmd = a.shifts.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewRecordForm:
		return a.form.active()
	case viewShifts:
		return a.shifts.formActive()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshView(v viewState) tea.Cmd {
	switch v {
	case viewHome:
		return a.home.loadData()
	case viewRecords:
		return a.records.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewShifts:
		return a.shifts.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewRecordForm:
		content = a.form.view()
	case viewRecords:
		content = a.records.view()
	case viewStats:
		content = a.stats.view()
	case viewShifts:
		content = a.shifts.view()
	case viewSettings:
		content = a.settings.view()
	case viewDebug:
		content = a.debug.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("perftrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Open shift indicator in footer
	shiftInfo := ""
	if a.home.currentShift != nil {
		elapsed := store.CurrentShiftDuration(a.home.currentShift, a.home.now)
		shiftInfo = successStyle.Render(" ● " + formatMinutes(elapsed))
	}

	left := footerStyle.Render(helpView)
	right := shiftInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		records, err := a.store.ListRecords(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("perftrack-export-%s.csv", dateStr))
			if err := export.ToCSV(records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("perftrack-export-%s.json", dateStr))
			if err := export.ToJSON(records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		logbuf.Info("records exported", "path", path, "count", len(records))
		return exportDoneMsg{path: path}
	}
}
