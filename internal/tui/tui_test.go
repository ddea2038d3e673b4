package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvural/perftrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func saveTestRecord(t *testing.T, s *store.Store, task string, performance float64) int64 {
	t.Helper()
	id, err := s.SaveRecord(store.RecordInput{
		TaskName:    task,
		TargetTime:  30,
		ActualTime:  30,
		Performance: performance,
		StartTime:   "09:00",
		EndTime:     "09:30",
		BreakType:   "none",
		Skill:       "Picker",
	}, nil)
	if err != nil {
		t.Fatalf("save record: %v", err)
	}
	return id
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 7 {
		t.Fatalf("expected 7 view names, got %d", len(viewNames))
	}
	expected := []string{"Home", "New Record", "Records", "Stats", "Shifts", "Settings", "Debug"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewHome != 0 || viewRecordForm != 1 || viewRecords != 2 ||
		viewStats != 3 || viewShifts != 4 || viewSettings != 5 || viewDebug != 6 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		m    float64
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{90, "1h 30m"},
		{125, "2h 05m"},
	}
	for _, tt := range tests {
		got := formatMinutes(tt.m)
		if got != tt.want {
			t.Errorf("formatMinutes(%v) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(66.666); got != "66.7%" {
		t.Fatalf("formatPercent(66.666) = %q", got)
	}
	if got := formatPercent(100); got != "100.0%" {
		t.Fatalf("formatPercent(100) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate should keep short strings, got %q", got)
	}
	got := truncate("a very long task name", 10)
	if len([]byte(got)) == 0 || got == "a very long task name" {
		t.Fatal("truncate should shorten long strings")
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated string should end with ellipsis, got %q", got)
	}
}

func TestTruncateNarrowWidths(t *testing.T) {
	if got := truncate("anything", 0); got != "" {
		t.Fatalf("zero width should give empty string, got %q", got)
	}
	if got := truncate("anything", -3); got != "" {
		t.Fatalf("negative width should give empty string, got %q", got)
	}
	if got := truncate("anything", 1); got != "a" {
		t.Fatalf("width 1 should keep one rune, got %q", got)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	in := "ürün topla ve paketle"
	got := truncate(in, 5)
	if got != "ürün…" {
		t.Fatalf("truncate should count runes, got %q", got)
	}
	if got := truncate("ürün", 4); got != "ürün" {
		t.Fatalf("exact rune fit should pass through, got %q", got)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30", 30},
		{" 15.5 ", 15.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseMinutes(tt.in); got != tt.want {
			t.Errorf("parseMinutes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateClock(t *testing.T) {
	if err := validateClock("09:30"); err != nil {
		t.Fatalf("valid clock rejected: %v", err)
	}
	if err := validateClock(" 23:59 "); err != nil {
		t.Fatalf("padded clock rejected: %v", err)
	}
	if err := validateClock("25:00"); err == nil {
		t.Fatal("out-of-range hour accepted")
	}
	if err := validateClock("nope"); err == nil {
		t.Fatal("garbage accepted")
	}
}

// ============================================================
// Home model
// ============================================================

func TestHomeLoadData(t *testing.T) {
	s := newTestStore(t)
	saveTestRecord(t, s, "Pick order", 100)

	h := newHomeModel(s)
	msg := h.loadData()()
	data, ok := msg.(homeDataMsg)
	if !ok {
		t.Fatalf("expected homeDataMsg, got %T", msg)
	}
	if len(data.recent) != 1 {
		t.Fatalf("expected 1 recent record, got %d", len(data.recent))
	}
	if data.stats.TotalRecords != 1 {
		t.Fatalf("expected 1 record in today stats, got %d", data.stats.TotalRecords)
	}

	h, _ = h.update(data)
	if len(h.recent) != 1 {
		t.Fatal("update should store recent records")
	}
}

func TestHomeRecentLimitSetting(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 4; i++ {
		saveTestRecord(t, s, "Pick order", 100)
	}
	s.SetSetting("recent_limit", "2")

	h := newHomeModel(s)
	data := h.loadData()().(homeDataMsg)
	if len(data.recent) != 2 {
		t.Fatalf("recent list should honor recent_limit, got %d records", len(data.recent))
	}
}

func TestHomeTickUpdatesClock(t *testing.T) {
	s := newTestStore(t)
	h := newHomeModel(s)

	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h, _ = h.update(tickMsg(want))
	if !h.now.Equal(want) {
		t.Fatalf("tick should update now, got %v", h.now)
	}
}

func TestHomeViewEmpty(t *testing.T) {
	s := newTestStore(t)
	h := newHomeModel(s)
	h.setSize(100, 40)

	out := h.view()
	if !strings.Contains(out, "No shift running") {
		t.Fatal("empty home should say no shift is running")
	}
	if !strings.Contains(out, "No records yet today") {
		t.Fatal("empty home should say there are no records")
	}
}

func TestHomeViewWithShift(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.StartShift("08:00", "Picker"); err != nil {
		t.Fatal(err)
	}

	h := newHomeModel(s)
	h.setSize(100, 40)
	data := h.loadData()().(homeDataMsg)
	h, _ = h.update(data)

	if h.currentShift == nil {
		t.Fatal("home should pick up the open shift")
	}
	out := h.view()
	if !strings.Contains(out, "Picker") {
		t.Fatal("shift card should show the skill")
	}
}

// ============================================================
// Record form model
// ============================================================

func TestFormResetActivates(t *testing.T) {
	s := newTestStore(t)
	f := newFormModel(s)

	if f.active() {
		t.Fatal("form should start inactive")
	}
	f, _ = f.reset()
	if !f.active() {
		t.Fatal("reset should build an active form")
	}
	if f.editingID != nil {
		t.Fatal("reset should clear editing state")
	}
}

func TestFormLoadRecordPrefills(t *testing.T) {
	s := newTestStore(t)
	id := saveTestRecord(t, s, "Pack order", 95)

	f := newFormModel(s)
	f, _ = f.loadRecord(id)

	if f.editingID == nil || *f.editingID != id {
		t.Fatal("loadRecord should set editingID")
	}
	if *f.taskName != "Pack order" {
		t.Fatalf("task not prefilled, got %q", *f.taskName)
	}
	if *f.start != "09:00" || *f.finish != "09:30" {
		t.Fatalf("times not prefilled, got %q-%q", *f.start, *f.finish)
	}
}

func TestFormLoadMissingRecordFallsBackToNew(t *testing.T) {
	s := newTestStore(t)
	f := newFormModel(s)

	f, _ = f.loadRecord(9999)
	if f.editingID != nil {
		t.Fatal("missing record should fall back to a blank form")
	}
	if !f.active() {
		t.Fatal("form should still be active")
	}
}

func TestFormSaveCreatesRecord(t *testing.T) {
	s := newTestStore(t)
	f := newFormModel(s)
	f, _ = f.reset()

	*f.taskName = "Pick order"
	*f.target = "30"
	*f.start = "09:00"
	*f.finish = "09:30"

	msg := f.save()()
	saved, ok := msg.(recordSavedMsg)
	if !ok {
		t.Fatalf("expected recordSavedMsg, got %#v", msg)
	}
	if saved.updated {
		t.Fatal("fresh save should not be flagged as update")
	}

	r, err := s.GetRecord(saved.id)
	if err != nil || r == nil {
		t.Fatalf("saved record not found: %v", err)
	}
	if r.Performance != 100 {
		t.Fatalf("expected 100%% performance, got %v", r.Performance)
	}
	if r.Skill != "Picker" {
		t.Fatalf("default skill not applied, got %q", r.Skill)
	}
}

func TestFormSaveInvalidTimeSurfacesError(t *testing.T) {
	s := newTestStore(t)
	f := newFormModel(s)
	f, _ = f.reset()

	*f.taskName = "Pick order"
	*f.target = "30"
	*f.start = "bogus"
	*f.finish = "09:30"

	msg := f.save()()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %#v", msg)
	}
	if !status.isError {
		t.Fatal("bad input should produce an error status")
	}
}

func TestFormSaveUpdatesExisting(t *testing.T) {
	s := newTestStore(t)
	id := saveTestRecord(t, s, "Pack order", 95)

	f := newFormModel(s)
	f, _ = f.loadRecord(id)
	*f.finish = "10:00"

	msg := f.save()()
	saved, ok := msg.(recordSavedMsg)
	if !ok {
		t.Fatalf("expected recordSavedMsg, got %#v", msg)
	}
	if !saved.updated || saved.id != id {
		t.Fatalf("expected update of record %d, got %+v", id, saved)
	}

	r, _ := s.GetRecord(id)
	if r.EndTime != "10:00" {
		t.Fatalf("end time not updated, got %q", r.EndTime)
	}
}

func TestFormEscDiscards(t *testing.T) {
	s := newTestStore(t)
	f := newFormModel(s)
	f, _ = f.reset()

	f, cmd := f.update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.active() {
		t.Fatal("esc should close the form")
	}
	if cmd == nil {
		t.Fatal("esc should emit a status message")
	}
}

// ============================================================
// Records model
// ============================================================

func TestRecordsRefreshAndCursor(t *testing.T) {
	s := newTestStore(t)
	saveTestRecord(t, s, "One", 90)
	saveTestRecord(t, s, "Two", 110)

	m := newRecordsModel(s)
	data := m.refresh()().(recordsDataMsg)
	m, _ = m.update(data)
	if len(m.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(m.records))
	}

	m, _ = m.update(keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("cursor should move down, got %d", m.cursor)
	}
	m, _ = m.update(keyRune('j'))
	if m.cursor != 1 {
		t.Fatal("cursor should stop at the last record")
	}
	m, _ = m.update(keyRune('k'))
	if m.cursor != 0 {
		t.Fatal("cursor should move back up")
	}
}

func TestRecordsCursorClampsAfterRefresh(t *testing.T) {
	s := newTestStore(t)
	id := saveTestRecord(t, s, "One", 90)
	saveTestRecord(t, s, "Two", 110)

	m := newRecordsModel(s)
	m, _ = m.update(m.refresh()().(recordsDataMsg))
	m.cursor = 1

	if err := s.DeleteRecord(id); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(m.refresh()().(recordsDataMsg))
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to remaining records, got %d", m.cursor)
	}
}

func TestRecordsDeleteNeedsConfirmation(t *testing.T) {
	s := newTestStore(t)
	saveTestRecord(t, s, "One", 90)

	m := newRecordsModel(s)
	m, _ = m.update(m.refresh()().(recordsDataMsg))

	m, cmd := m.update(keyRune('d'))
	if !m.confirmingDelete {
		t.Fatal("first press should only arm the confirmation")
	}
	if cmd != nil {
		t.Fatal("arming should not delete anything")
	}

	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirmingDelete {
		t.Fatal("confirmation should disarm after enter")
	}
	if cmd == nil {
		t.Fatal("confirmed delete should return a command")
	}
	if _, ok := cmd().(recordDeletedMsg); !ok {
		t.Fatal("confirmed delete should emit recordDeletedMsg")
	}

	records, _ := s.ListRecords(0)
	if len(records) != 0 {
		t.Fatal("record should be gone from the store")
	}
}

func TestRecordsDeleteCancelledByOtherKey(t *testing.T) {
	s := newTestStore(t)
	saveTestRecord(t, s, "One", 90)

	m := newRecordsModel(s)
	m, _ = m.update(m.refresh()().(recordsDataMsg))

	m, _ = m.update(keyRune('d'))
	m, cmd := m.update(keyRune('k'))
	if m.confirmingDelete {
		t.Fatal("any other key should cancel the confirmation")
	}
	if cmd != nil {
		t.Fatal("cancelled delete should not run anything")
	}

	records, _ := s.ListRecords(0)
	if len(records) != 1 {
		t.Fatal("record should survive a cancelled delete")
	}
}

func TestRecordsEnterOpensEditor(t *testing.T) {
	s := newTestStore(t)
	id := saveTestRecord(t, s, "One", 90)

	m := newRecordsModel(s)
	m, _ = m.update(m.refresh()().(recordsDataMsg))

	_, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit an edit request")
	}
	edit, ok := cmd().(editRecordMsg)
	if !ok {
		t.Fatal("expected editRecordMsg")
	}
	if edit.id != id {
		t.Fatalf("edit targets wrong record: %d", edit.id)
	}
}

// ============================================================
// Stats model
// ============================================================

func TestStatsDateRangeDaily(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)

	from, to := m.dateRange()
	if to.Sub(from) != 6*24*time.Hour {
		t.Fatalf("daily window should span 7 days, got %v", to.Sub(from))
	}
}

func TestStatsDateRangeWeeklyStartsMonday(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)
	m.mode = statsWeekly

	from, to := m.dateRange()
	if from.Weekday() != time.Monday {
		t.Fatalf("week should start Monday, got %v", from.Weekday())
	}
	if to.Sub(from) != 6*24*time.Hour {
		t.Fatalf("week window should span 7 days, got %v", to.Sub(from))
	}
}

func TestStatsDateRangeWeeklySundayStart(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("week_start", "sunday")

	m := newStatsModel(s)
	m.mode = statsWeekly

	from, to := m.dateRange()
	if from.Weekday() != time.Sunday {
		t.Fatalf("week should start Sunday, got %v", from.Weekday())
	}
	if to.Sub(from) != 6*24*time.Hour {
		t.Fatalf("week window should span 7 days, got %v", to.Sub(from))
	}
	if from.After(time.Now()) {
		t.Fatal("current week should not start in the future")
	}
}

func TestStatsDateRangeMonthly(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)
	m.mode = statsMonthly

	from, to := m.dateRange()
	if from.Day() != 1 {
		t.Fatalf("month should start on day 1, got %d", from.Day())
	}
	if to.Month() != from.Month() {
		t.Fatal("month window should stay within one month")
	}
}

func TestStatsRefreshBuildsWindow(t *testing.T) {
	s := newTestStore(t)
	saveTestRecord(t, s, "Pick order", 100)

	m := newStatsModel(s)
	m.setSize(100, 40)
	data := m.refresh()().(statsDataMsg)
	if len(data.days) != 7 {
		t.Fatalf("daily window should have 7 points, got %d", len(data.days))
	}
	if data.summary.TotalRecords != 1 {
		t.Fatalf("summary should count today's record, got %d", data.summary.TotalRecords)
	}

	m, _ = m.update(data)
	if len(m.days) != 7 {
		t.Fatal("update should keep the day points")
	}
}

func TestStatsNavigation(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)

	m, _ = m.update(keyRune('h'))
	if m.offset != 1 {
		t.Fatalf("left should go back one window, offset=%d", m.offset)
	}
	m, _ = m.update(keyRune('l'))
	if m.offset != 0 {
		t.Fatalf("right should come forward, offset=%d", m.offset)
	}
	m, _ = m.update(keyRune('l'))
	if m.offset != 0 {
		t.Fatal("offset should never go past the present")
	}
}

func TestStatsModeCycle(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)
	m.offset = 3

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != statsWeekly {
		t.Fatalf("tab should switch to weekly, got %d", m.mode)
	}
	if m.offset != 0 {
		t.Fatal("mode switch should reset the offset")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != statsDaily {
		t.Fatal("tab should cycle back to daily")
	}
}

// ============================================================
// Shifts model
// ============================================================

func TestShiftsStartFormActivates(t *testing.T) {
	s := newTestStore(t)
	m := newShiftsModel(s)

	if m.formActive() {
		t.Fatal("no form should be active initially")
	}
	m, _ = m.showStartForm()
	if !m.formActive() {
		t.Fatal("start form should be active")
	}
	if m.formType != "start" {
		t.Fatalf("wrong form type %q", m.formType)
	}
	if *m.skill != "Picker" {
		t.Fatalf("skill should default from settings, got %q", *m.skill)
	}
}

func TestShiftsDoStart(t *testing.T) {
	s := newTestStore(t)
	m := newShiftsModel(s)

	msg := m.doStart("08:00", "Picker")()
	if _, ok := msg.(shiftStartedMsg); !ok {
		t.Fatalf("expected shiftStartedMsg, got %#v", msg)
	}

	current, _ := s.GetCurrentShift()
	if current == nil {
		t.Fatal("shift should be open in the store")
	}
}

func TestShiftsDoStartStrictMode(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("strict_shifts", "1")
	m := newShiftsModel(s)

	m.doStart("08:00", "Picker")()
	msg := m.doStart("09:00", "Packer")()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %#v", msg)
	}
	if !status.isError {
		t.Fatal("second start should be rejected in strict mode")
	}
}

func TestShiftsDoFinish(t *testing.T) {
	s := newTestStore(t)
	m := newShiftsModel(s)

	m.doStart("08:00", "Picker")()
	msg := m.doFinish("16:00")()
	fin, ok := msg.(shiftFinishedMsg)
	if !ok {
		t.Fatalf("expected shiftFinishedMsg, got %#v", msg)
	}
	if !fin.closed {
		t.Fatal("finish should close the open shift")
	}

	current, _ := s.GetCurrentShift()
	if current != nil {
		t.Fatal("no shift should remain open")
	}
}

func TestShiftsDoFinishWithoutOpenShift(t *testing.T) {
	s := newTestStore(t)
	m := newShiftsModel(s)

	msg := m.doFinish("16:00")()
	fin, ok := msg.(shiftFinishedMsg)
	if !ok {
		t.Fatalf("expected shiftFinishedMsg, got %#v", msg)
	}
	if fin.closed {
		t.Fatal("finish with no open shift should report closed=false")
	}
}

func TestShiftsEscClosesForm(t *testing.T) {
	s := newTestStore(t)
	m := newShiftsModel(s)
	m, _ = m.showStartForm()

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive() {
		t.Fatal("esc should dismiss the form")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefreshLoadsDefaults(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	data := m.refresh()().(settingsDataMsg)
	if len(data.settings) == 0 {
		t.Fatal("defaults should be present")
	}

	found := false
	for _, st := range data.settings {
		if st.Key == "default_skill" && st.Value == "Picker" {
			found = true
		}
	}
	if !found {
		t.Fatal("default_skill should default to Picker")
	}
}

func TestSettingsEditFormActivates(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m, _ = m.update(m.refresh()().(settingsDataMsg))

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.formActive {
		t.Fatal("enter should open the edit form")
	}
	if m.editingKey == "" {
		t.Fatal("edit form should target a setting")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the edit form")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewHome {
		t.Fatal("default view should be home")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.View() != "Loading..." {
		t.Fatal("unsized app should show the loading screen")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	views := []viewState{viewHome, viewRecordForm, viewRecords, viewStats, viewShifts, viewSettings, viewDebug}
	for _, v := range views {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 160
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusInFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "saved just fine"

	if !strings.Contains(app.renderFooter(), "saved just fine") {
		t.Fatal("footer should show the status message")
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(keyRune('3'))
	app = model.(App)
	if app.activeView != viewRecords {
		t.Fatalf("pressing 3 should open records, got %d", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewStats {
		t.Fatalf("tab should cycle to the next view, got %d", app.activeView)
	}
}

func TestAppNewRecordKey(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(keyRune('n'))
	app = model.(App)
	if app.activeView != viewRecordForm {
		t.Fatal("n should open the record form")
	}
	if !app.isFormActive() {
		t.Fatal("record form should be capturing input")
	}
}

func TestAppStartShiftKey(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(keyRune('s'))
	app = model.(App)
	if app.activeView != viewShifts {
		t.Fatal("s should open the shifts view")
	}
	if !app.shifts.formActive() {
		t.Fatal("s should open the start form")
	}
}

func TestAppRecordSavedSwitchesToRecords(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.activeView = viewRecordForm

	model, _ := app.Update(recordSavedMsg{id: 1})
	app = model.(App)
	if app.activeView != viewRecords {
		t.Fatal("a saved record should land on the records view")
	}
	if !strings.Contains(app.status, "saved") {
		t.Fatalf("status should confirm the save, got %q", app.status)
	}

	model, _ = app.Update(recordSavedMsg{id: 1, updated: true})
	app = model.(App)
	if !strings.Contains(app.status, "updated") {
		t.Fatalf("status should confirm the update, got %q", app.status)
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(keyRune('x'))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}

	model, _ = app.Update(keyRune('j'))
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("picker cursor should move, got %d", app.exportCursor)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should dismiss the picker")
	}
}

func TestAppHelpToggle(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(keyRune('?'))
	app = model.(App)
	if !app.showHelp {
		t.Fatal("? should expand help")
	}

	model, _ = app.Update(keyRune('?'))
	app = model.(App)
	if app.showHelp {
		t.Fatal("? should collapse help again")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestPerfStyleThresholds(t *testing.T) {
	if perfStyle(120).GetForeground() != colorSuccess {
		t.Fatal("on-target performance should render green")
	}
	if perfStyle(100).GetForeground() != colorSuccess {
		t.Fatal("100%% is on target")
	}
	if perfStyle(85).GetForeground() != colorWarning {
		t.Fatal("near-target performance should render yellow")
	}
	if perfStyle(50).GetForeground() != colorError {
		t.Fatal("low performance should render red")
	}
}
