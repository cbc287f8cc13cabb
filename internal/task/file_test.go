package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTaskFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeTaskFile(t, "cadence.tasks.yaml", `
mode: academic
tasks:
  - id: thesis
    title: Draft thesis chapter
    due_in_days: 5
    estimated_hours: 12
    importance: 9
    impact: 8
  - id: review
    due_in_days: 7
    estimated_hours: 3
    depends_on: [thesis]
`)

	result, err := LoadFile(path, time.Now())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if result.Mode != ModeAcademic {
		t.Errorf("Mode = %q, want academic", result.Mode)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(result.Tasks))
	}

	thesis := result.Tasks[0]
	if thesis.ID != "thesis" || thesis.DueInDays != 5 || thesis.EstimatedHours != 12 {
		t.Errorf("thesis task not parsed: %+v", thesis)
	}

	review := result.Tasks[1]
	if review.Title != "review" {
		t.Errorf("missing title should default to id, got %q", review.Title)
	}
	if len(review.DependsOn) != 1 || review.DependsOn[0] != "thesis" {
		t.Errorf("DependsOn = %v", review.DependsOn)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTaskFile(t, "tasks.json", `{
  "mode": "operational",
  "tasks": [
    {"id": "deploy", "due_in_days": 2, "estimated_hours": 4, "importance": 7, "impact": 9}
  ]
}`)

	result, err := LoadFile(path, time.Now())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if result.Mode != ModeOperational {
		t.Errorf("Mode = %q, want operational", result.Mode)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Impact != 9 {
		t.Errorf("tasks = %+v", result.Tasks)
	}
}

func TestLoadFile_Aliases(t *testing.T) {
	path := writeTaskFile(t, "aliased.yaml", `
tasks:
  - name: migrate
    days_left: 4
    hours: 6
    depends: [backup]
  - id: backup
    due_in_days: 2
    estimated_hours: 1
`)

	result, err := LoadFile(path, time.Now())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	migrate := result.Tasks[0]
	if migrate.ID != "migrate" {
		t.Errorf("name alias not resolved, ID = %q", migrate.ID)
	}
	if migrate.DueInDays != 4 {
		t.Errorf("days_left alias not resolved, DueInDays = %d", migrate.DueInDays)
	}
	if migrate.EstimatedHours != 6 {
		t.Errorf("hours alias not resolved, EstimatedHours = %g", migrate.EstimatedHours)
	}
	if len(migrate.DependsOn) != 1 || migrate.DependsOn[0] != "backup" {
		t.Errorf("depends alias not resolved, DependsOn = %v", migrate.DependsOn)
	}
}

func TestLoadFile_AbsoluteDueDates(t *testing.T) {
	path := writeTaskFile(t, "dated.yaml", `
start: 2026-03-02
tasks:
  - id: report
    due: 2026-03-06
    estimated_hours: 5
`)

	result, err := LoadFile(path, time.Time{})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !result.Start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", result.Start)
	}
	if result.Tasks[0].DueInDays != 5 {
		t.Errorf("DueInDays = %d, want 5 (due on day 5 of the plan)", result.Tasks[0].DueInDays)
	}
}

func TestLoadFile_FallbackStart(t *testing.T) {
	path := writeTaskFile(t, "nodate.yaml", `
tasks:
  - id: report
    due: 2026-03-06
    estimated_hours: 5
`)

	fallback := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	result, err := LoadFile(path, fallback)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if result.Tasks[0].DueInDays != 3 {
		t.Errorf("DueInDays = %d, want 3", result.Tasks[0].DueInDays)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed yaml", "bad.yaml", "tasks: [\n"},
		{"malformed json", "bad.json", "{"},
		{"bad start date", "start.yaml", "start: not-a-date\ntasks: []\n"},
		{"bad due date", "due.yaml", "tasks:\n  - id: a\n    due: tomorrow\n    estimated_hours: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTaskFile(t, tt.file, tt.content)
			if _, err := LoadFile(path, time.Now()); err == nil {
				t.Error("expected an error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), time.Now()); err == nil {
			t.Error("expected an error")
		}
	})
}
