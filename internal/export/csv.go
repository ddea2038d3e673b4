package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/kvural/perftrack/internal/store"
)

func ToCSV(records []store.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{
		"ID", "Task", "Target (min)", "Actual (min)", "Performance (%)",
		"Start", "End", "Break (min)", "Delays (min)", "Delay Notes",
		"Skill", "Created",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.TaskName,
			formatMinutes(r.TargetTime),
			formatMinutes(r.ActualTime),
			fmt.Sprintf("%.1f", r.Performance),
			r.StartTime,
			r.EndTime,
			formatMinutes(r.BreakTime),
			formatMinutes(r.DelaysTime),
			r.DelayNotes,
			r.Skill,
			r.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(m float64) string {
	return fmt.Sprintf("%.0f", m)
}
