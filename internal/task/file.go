package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the default task file looked up in the working directory.
const DefaultFileName = "cadence.tasks.yaml"

// File is the on-disk task list format. The file is owned by the CLI layer;
// the engine itself only ever sees plain []Task values.
type File struct {
	// Start is the plan start date in YYYY-MM-DD form. Absolute deadlines in
	// the file are normalized against it. Empty means "today".
	Start string `json:"start,omitempty" yaml:"start,omitempty"`

	// Mode is the plan-wide planning mode ("academic" or "operational").
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Tasks is the task list.
	Tasks []fileTask `json:"tasks" yaml:"tasks"`
}

// fileTask handles the alternative field names users tend to write, the same
// way the config file is lenient about equivalent spellings.
type fileTask struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"` // alias for id
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Due            string   `json:"due,omitempty" yaml:"due,omitempty"` // absolute YYYY-MM-DD deadline
	DueInDays      int      `json:"due_in_days,omitempty" yaml:"due_in_days,omitempty"`
	DaysLeft       int      `json:"days_left,omitempty" yaml:"days_left,omitempty"` // alias for due_in_days
	EstimatedHours float64  `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	Hours          float64  `json:"hours,omitempty" yaml:"hours,omitempty"` // alias for estimated_hours
	Importance     int      `json:"importance,omitempty" yaml:"importance,omitempty"`
	Impact         int      `json:"impact,omitempty" yaml:"impact,omitempty"`
	DependsOn      []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Depends        []string `json:"depends,omitempty" yaml:"depends,omitempty"` // alias for depends_on
	Mode           Mode     `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// LoadResult is the outcome of loading a task file.
type LoadResult struct {
	// Tasks is the normalized task list.
	Tasks []Task
	// Mode is the plan-wide mode declared in the file, if any.
	Mode Mode
	// Start is the resolved plan start date.
	Start time.Time
}

// LoadFile reads and normalizes a task file. The format is chosen by file
// extension: .json is parsed as JSON, everything else as YAML. Absolute "due"
// dates are converted to day offsets against the file's start date (or the
// given fallback when the file declares none).
//
// LoadFile only normalizes; it does not validate. Callers run Validate (or
// the pipeline, which calls ValidateStrict) on the returned tasks.
func LoadFile(path string, fallbackStart time.Time) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var file File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
		}
	}

	start := fallbackStart
	if file.Start != "" {
		start, err = time.Parse("2006-01-02", file.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", file.Start, err)
		}
	}

	tasks := make([]Task, 0, len(file.Tasks))
	for i, ft := range file.Tasks {
		t, err := ft.normalize(start)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}

	return &LoadResult{Tasks: tasks, Mode: file.Mode, Start: start}, nil
}

// normalize resolves aliases and converts absolute deadlines to day offsets.
func (ft *fileTask) normalize(start time.Time) (Task, error) {
	id := ft.ID
	if id == "" {
		id = ft.Name
	}

	title := ft.Title
	if title == "" {
		title = id
	}

	hours := ft.EstimatedHours
	if hours == 0 {
		hours = ft.Hours
	}

	dueInDays := ft.DueInDays
	if dueInDays == 0 {
		dueInDays = ft.DaysLeft
	}
	if ft.Due != "" {
		deadline, err := time.Parse("2006-01-02", ft.Due)
		if err != nil {
			return Task{}, fmt.Errorf("invalid due date %q: %w", ft.Due, err)
		}
		dueInDays = DaysUntil(deadline, start)
	}

	dependsOn := ft.DependsOn
	if len(dependsOn) == 0 && len(ft.Depends) > 0 {
		dependsOn = ft.Depends
	}

	return Task{
		ID:             id,
		Title:          title,
		DueInDays:      dueInDays,
		EstimatedHours: hours,
		Importance:     ft.Importance,
		Impact:         ft.Impact,
		DependsOn:      dependsOn,
		Mode:           ft.Mode,
	}, nil
}
