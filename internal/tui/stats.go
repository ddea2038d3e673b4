package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvural/perftrack/internal/store"
)

type statsMode int

const (
	statsDaily statsMode = iota
	statsWeekly
	statsMonthly
)

var statsModeNames = []string{"Daily", "Weekly", "Month"}

type dayPoint struct {
	date  string // "2006-01-02"
	label string // "Mon 02"
	stats store.Stats
}

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode   statsMode
	offset int // days, weeks or months back from today (0 = current)

	days    []dayPoint // per-day points for the chart window
	summary store.WeeklyStats

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	days    []dayPoint
	summary store.WeeklyStats
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()

		var days []dayPoint
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			st, _ := m.store.GetDailyStats(d)
			days = append(days, dayPoint{
				date:  d.Format("2006-01-02"),
				label: d.Format("Mon 02"),
				stats: st,
			})
		}

		summary, _ := m.store.GetRangeStats(from, to)
		return statsDataMsg{days: days, summary: summary}
	}
}

// dateRange returns the inclusive window for the current mode and offset.
func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch m.mode {
	case statsWeekly:
		weekday := int(today.Weekday())
		var start time.Time
		if ws, _ := m.store.GetSetting("week_start"); ws == "sunday" {
			start = today.AddDate(0, 0, -weekday)
		} else {
			if weekday == 0 {
				weekday = 7
			}
			start = today.AddDate(0, 0, -(weekday - 1))
		}
		start = start.AddDate(0, 0, -7*m.offset)
		return start, start.AddDate(0, 0, 6)
	case statsMonthly:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -m.offset, 0)
		return first, first.AddDate(0, 1, -1)
	default:
		// Daily: trailing 7 days ending today.
		end := today.AddDate(0, 0, -7*m.offset)
		return end.AddDate(0, 0, -6), end
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.days = msg.days
		m.summary = msg.summary
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		case key.Matches(msg, keys.Tab):
			m.mode = (m.mode + 1) % 3
			m.offset = 0
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	// Month windows are too wide for one bar per day; chart the daily and
	// weekly windows only.
	if m.mode == statsMonthly {
		return
	}

	var bars []barchart.BarData
	for _, day := range m.days {
		p := day.stats.AvgPerformance
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if day.stats.TotalRecords > 0 {
			style = perfStyle(p)
		}
		bars = append(bars, barchart.BarData{
			Label: day.label,
			Values: []barchart.BarValue{
				{Name: "avg", Value: p, Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	// Mode tabs
	var tabs []string
	for i, name := range statsModeNames {
		if statsMode(i) == m.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", modeTabs, "  ", dateLabel,
	)

	var body string
	if m.mode == statsMonthly {
		body = m.renderSummary()
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.chart.View(), "", m.renderSummary())
	}

	nav := mutedStyle.Render("  ←/→: navigate  tab: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (m statsModel) renderSummary() string {
	st := m.summary
	if st.TotalRecords == 0 {
		return mutedStyle.Render("  No records for this period")
	}

	var rows []string
	rows = append(rows, fmt.Sprintf("  Avg performance  %s",
		perfStyle(st.AvgPerformance).Render(formatPercent(st.AvgPerformance))))
	rows = append(rows, fmt.Sprintf("  Records          %d over %d active days", st.TotalRecords, st.ActiveDays))
	rows = append(rows, fmt.Sprintf("  Work time        %s", formatMinutes(st.TotalTime)))
	rows = append(rows, fmt.Sprintf("  Break time       %s", formatMinutes(st.TotalBreakTime)))
	rows = append(rows, fmt.Sprintf("  Delay time       %s", formatMinutes(st.TotalDelayTime)))
	rows = append(rows, fmt.Sprintf("  Best / worst     %s / %s",
		successStyle.Render(formatPercent(st.BestPerformance)),
		errorStyle.Render(formatPercent(st.WorstPerformance))))

	return strings.Join(rows, "\n")
}
