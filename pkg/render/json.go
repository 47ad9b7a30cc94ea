package render

import (
	"encoding/json"
	"time"
)

// JSON renders a snapshot as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Filter      string       `json:"filter"`
	Stats       jsonStats    `json:"stats"`
	Records     []jsonRecord `json:"records"`
}

type jsonStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Pass    int `json:"pass"`
	Fail    int `json:"fail"`
}

type jsonRecord struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ExpectedResult string     `json:"expected_result"`
	Status         string     `json:"status"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
}

// Render formats the snapshot as indented JSON.
func (j *JSON) Render(snap Snapshot) string {
	out := jsonOutput{
		GeneratedAt: snap.GeneratedAt,
		Filter:      snap.Filter.String(),
		Stats:       jsonStats(snap.Stats),
		Records:     make([]jsonRecord, 0, len(snap.Records)),
	}
	for _, rec := range snap.Records {
		jr := jsonRecord{
			ID:             rec.ID,
			Title:          rec.Title,
			Description:    rec.Description,
			ExpectedResult: rec.ExpectedResult,
			Status:         rec.Status.String(),
		}
		if rec.HasRun() {
			ts := rec.LastRunAt
			jr.LastRunAt = &ts
		}
		out.Records = append(out.Records, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
