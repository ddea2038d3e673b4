package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/store"
)

type homeModel struct {
	store  *store.Store
	width  int
	height int

	currentShift *store.Shift
	todayStats   store.Stats
	recent       []store.Record
	now          time.Time
}

func newHomeModel(s *store.Store) homeModel {
	return homeModel{store: s, now: time.Now()}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type homeDataMsg struct {
	shift  *store.Shift
	stats  store.Stats
	recent []store.Record
}

func (h homeModel) loadData() tea.Cmd {
	return func() tea.Msg {
		shift, _ := h.store.GetCurrentShift()
		stats, _ := h.store.GetDailyStats(time.Now())

		limit := h.store.GetSettingInt("recent_limit", 5)
		recent, _ := h.store.ListRecords(limit)

		return homeDataMsg{shift: shift, stats: stats, recent: recent}
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		h.currentShift = msg.shift
		h.todayStats = msg.stats
		h.recent = msg.recent
		return h, nil

	case tickMsg:
		h.now = time.Time(msg)
		return h, nil
	}
	return h, nil
}

func (h homeModel) view() string {
	w := h.width - 4

	shiftCard := h.renderShiftCard()
	statsCard := h.renderTodayStats()
	recentCard := h.renderRecent()

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(shiftCard),
		panelStyle.Width(w).Render(statsCard),
		panelStyle.Width(w).Render(recentCard),
	)
}

func (h homeModel) renderShiftCard() string {
	title := titleStyle.Render("Shift")

	if h.currentShift == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No shift running. Press s to start one."),
		)
	}

	elapsed := store.CurrentShiftDuration(h.currentShift, h.now)
	line := fmt.Sprintf("%s  started %s  %s",
		successStyle.Render("● "+h.currentShift.Skill),
		h.currentShift.StartTime,
		titleStyle.Render(formatMinutes(elapsed)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		line,
		"",
		mutedStyle.Render("f: finish shift"),
	)
}

func (h homeModel) renderTodayStats() string {
	title := titleStyle.Render("Today")
	st := h.todayStats

	if st.TotalRecords == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No records yet today."),
		)
	}

	avg := perfStyle(st.AvgPerformance).Render(formatPercent(st.AvgPerformance))
	line1 := fmt.Sprintf("Avg %s over %d records", avg, st.TotalRecords)
	line2 := fmt.Sprintf("Worked %s   breaks %s   delays %s",
		formatMinutes(st.TotalTime),
		formatMinutes(st.TotalBreakTime),
		formatMinutes(st.TotalDelayTime),
	)
	line3 := fmt.Sprintf("Best %s   worst %s",
		successStyle.Render(formatPercent(st.BestPerformance)),
		errorStyle.Render(formatPercent(st.WorstPerformance)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", line1, line2, line3)
}

func (h homeModel) renderRecent() string {
	title := titleStyle.Render("Recent Records")

	if len(h.recent) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Nothing recorded yet. Press n to add a record."),
		)
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %8s %8s %9s", "Task", "Target", "Actual", "Perf")))
	for _, r := range h.recent {
		perf := perfStyle(r.Performance).Render(fmt.Sprintf("%8.1f%%", r.Performance))
		rows = append(rows, fmt.Sprintf("  %-24s %7.0fm %7.0fm %s",
			truncate(r.TaskName, 24), r.TargetTime, r.ActualTime, perf,
		))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
