package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kvural/perftrack/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Records    []jsonRecord `json:"records"`
}

type jsonRecord struct {
	ID          int64   `json:"id"`
	Task        string  `json:"task"`
	TargetTime  float64 `json:"target_minutes"`
	ActualTime  float64 `json:"actual_minutes"`
	Performance float64 `json:"performance_percentage"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	BreakTime   float64 `json:"break_minutes,omitempty"`
	DelaysTime  float64 `json:"delay_minutes,omitempty"`
	DelayNotes  string  `json:"delay_notes,omitempty"`
	Skill       string  `json:"skill,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func ToJSON(records []store.Record, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		export.Records = append(export.Records, jsonRecord{
			ID:          r.ID,
			Task:        r.TaskName,
			TargetTime:  r.TargetTime,
			ActualTime:  r.ActualTime,
			Performance: r.Performance,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			BreakTime:   r.BreakTime,
			DelaysTime:  r.DelaysTime,
			DelayNotes:  r.DelayNotes,
			Skill:       r.Skill,
			CreatedAt:   r.CreatedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
