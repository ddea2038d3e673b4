package store

import (
	"fmt"
	"time"
)

// GetDailyStats aggregates the records created on the given day. Every field
// is zero when the day has no records.
func (s *Store) GetDailyStats(date time.Time) (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT
			COALESCE(AVG(performance_percentage), 0),
			COUNT(*),
			COALESCE(SUM(actual_time), 0),
			COALESCE(SUM(break_time), 0),
			COALESCE(SUM(delays_time), 0),
			COALESCE(MAX(performance_percentage), 0),
			COALESCE(MIN(performance_percentage), 0)
		 FROM performance_records
		 WHERE date(created_at) = ?`,
		date.Format("2006-01-02"),
	).Scan(
		&st.AvgPerformance, &st.TotalRecords, &st.TotalTime,
		&st.TotalBreakTime, &st.TotalDelayTime,
		&st.BestPerformance, &st.WorstPerformance,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("daily stats: %w", err)
	}
	return st, nil
}

// GetWeeklyStats aggregates the 7-day window starting at weekStart.
func (s *Store) GetWeeklyStats(weekStart time.Time) (WeeklyStats, error) {
	return s.GetRangeStats(weekStart, weekStart.AddDate(0, 0, 6))
}

// GetRangeStats aggregates records created between start and end inclusive,
// counting the distinct days that had any.
func (s *Store) GetRangeStats(start, end time.Time) (WeeklyStats, error) {
	var st WeeklyStats
	err := s.db.QueryRow(
		`SELECT
			COALESCE(AVG(performance_percentage), 0),
			COUNT(*),
			COALESCE(SUM(actual_time), 0),
			COALESCE(SUM(break_time), 0),
			COALESCE(SUM(delays_time), 0),
			COUNT(DISTINCT date(created_at)),
			COALESCE(MAX(performance_percentage), 0),
			COALESCE(MIN(performance_percentage), 0)
		 FROM performance_records
		 WHERE date(created_at) BETWEEN ? AND ?`,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	).Scan(
		&st.AvgPerformance, &st.TotalRecords, &st.TotalTime,
		&st.TotalBreakTime, &st.TotalDelayTime, &st.ActiveDays,
		&st.BestPerformance, &st.WorstPerformance,
	)
	if err != nil {
		return WeeklyStats{}, fmt.Errorf("range stats: %w", err)
	}
	return st, nil
}
