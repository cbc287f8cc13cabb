// Package task defines the planning input model: tasks with deadlines,
// estimated durations, importance ratings, and dependencies, plus the
// validation that gates them before the engine runs.
//
// Tasks form a directed acyclic graph through their DependsOn edges. The
// package validates structure once at the store boundary (unique IDs, known
// dependency references, positive durations, no cycles) so the engine can
// assume well-formed input. Validation problems are reported as structured
// messages with severities rather than a single opaque error.
package task

import "time"

// Mode selects the planning policy applied to a task set.
type Mode string

const (
	// ModeAcademic is deadline-driven planning: urgency dominates scoring and
	// the scheduler orders by earliest deadline first.
	ModeAcademic Mode = "academic"

	// ModeOperational is value-driven planning: importance and impact dominate
	// scoring and the scheduler orders by value density.
	ModeOperational Mode = "operational"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid returns true if this is a recognized planning mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAcademic, ModeOperational:
		return true
	default:
		return false
	}
}

// RatingScale is the upper bound of the importance and impact input scales.
// Ratings are integers in [1, RatingScale].
const RatingScale = 10

// Task represents a single unit of work to be planned.
//
// All fields are raw user input. Derived values (priority score, failure
// probability, assigned day, risk tier) are computed by the engine on every
// recomputation and never stored back onto the input task.
type Task struct {
	// ID uniquely identifies this task within a task set.
	// It is stable across recomputations and referenced by DependsOn.
	ID string `json:"id" yaml:"id"`

	// Title is a short, human-readable name for the task.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// DueInDays is the deadline as a day offset from the plan start.
	// 1 means the task is due at the end of the first planning day.
	// 0 or negative means the task is already overdue; urgency saturates
	// rather than diverging for such tasks.
	DueInDays int `json:"due_in_days" yaml:"due_in_days"`

	// EstimatedHours is the estimated effort. Must be strictly positive.
	EstimatedHours float64 `json:"estimated_hours" yaml:"estimated_hours"`

	// Importance is the strategic importance rating in [1, RatingScale].
	Importance int `json:"importance,omitempty" yaml:"importance,omitempty"`

	// Impact is the business impact rating in [1, RatingScale].
	Impact int `json:"impact,omitempty" yaml:"impact,omitempty"`

	// DependsOn lists task IDs that must be scheduled strictly before this
	// task. An empty list means the task can start on the first day.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	// Mode optionally overrides the plan-wide mode for this task's scoring
	// weights. The scheduler ordering policy always follows the plan-wide
	// mode; mixing ordering policies within one schedule is not meaningful.
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// HasDependencies returns true if this task depends on other tasks.
func (t *Task) HasDependencies() bool {
	return len(t.DependsOn) > 0
}

// EffectiveMode returns the task's mode override if set, else the given
// plan-wide mode.
func (t *Task) EffectiveMode(planMode Mode) Mode {
	if t.Mode != "" {
		return t.Mode
	}
	return planMode
}

// DaysUntil converts an absolute deadline into a DueInDays offset relative to
// the given plan start date. Deadlines on the start date itself map to 1 (due
// at the end of the first planning day).
func DaysUntil(deadline, start time.Time) int {
	d := deadline.Truncate(24 * time.Hour)
	s := start.Truncate(24 * time.Hour)
	return int(d.Sub(s).Hours()/24) + 1
}

// IDs returns the identifiers of the given tasks, in input order.
func IDs(tasks []Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// ByID builds a lookup map from task ID to task. Later duplicates overwrite
// earlier ones; Validate rejects duplicates before the engine ever sees them.
func ByID(tasks []Task) map[string]*Task {
	m := make(map[string]*Task, len(tasks))
	for i := range tasks {
		m[tasks[i].ID] = &tasks[i]
	}
	return m
}

// BlocksCount computes, for every task, how many other tasks list it as a
// dependency. A task blocking more downstream work is more load-bearing in
// the dependency graph; the scorer uses this as its dependency-risk signal.
// The reverse mapping is derived fresh on each call, never maintained
// incrementally.
func BlocksCount(tasks []Task) map[string]int {
	counts := make(map[string]int, len(tasks))
	for _, t := range tasks {
		counts[t.ID] = 0
	}
	for _, t := range tasks {
		for _, depID := range t.DependsOn {
			if _, ok := counts[depID]; ok {
				counts[depID]++
			}
		}
	}
	return counts
}
