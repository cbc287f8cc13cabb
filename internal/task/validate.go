package task

import (
	"fmt"
	"sort"
	"strings"

	"cadence/internal/errors"
)

// ValidationSeverity represents the severity level of a validation message.
type ValidationSeverity string

const (
	// SeverityError indicates a blocking issue; the task set cannot enter the
	// planning pipeline. Examples: dependency cycles, unknown references,
	// duplicate IDs, non-positive durations.
	SeverityError ValidationSeverity = "error"

	// SeverityWarning indicates a potential issue that should be reviewed but
	// does not block planning. Examples: missing titles, ratings outside the
	// expected scale.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationMessage represents a single validation issue with structured
// information about what is wrong and where.
type ValidationMessage struct {
	// Severity indicates how critical this issue is.
	Severity ValidationSeverity `json:"severity"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// TaskID identifies the task this message relates to.
	// Empty for set-level issues that don't relate to a specific task.
	TaskID string `json:"task_id,omitempty"`

	// Field identifies the specific field causing the issue.
	// Examples: "depends_on", "estimated_hours", "importance".
	Field string `json:"field,omitempty"`

	// RelatedIDs lists other task IDs involved in this issue.
	// Used for cycles and cross-task problems.
	RelatedIDs []string `json:"related_ids,omitempty"`
}

// IsError returns true if this message is an error.
func (m *ValidationMessage) IsError() bool {
	return m.Severity == SeverityError
}

// ValidationResult contains the complete validation results for a task set.
type ValidationResult struct {
	// IsValid is true if there are no errors (warnings allowed).
	IsValid bool `json:"is_valid"`

	// Messages contains all validation messages found.
	Messages []ValidationMessage `json:"messages"`

	// ErrorCount is the number of error-level messages.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-level messages.
	WarningCount int `json:"warning_count"`
}

// HasErrors returns true if there are any error-level messages.
func (v *ValidationResult) HasErrors() bool {
	return v.ErrorCount > 0
}

func (v *ValidationResult) add(msg ValidationMessage) {
	if msg.IsError() {
		v.IsValid = false
		v.ErrorCount++
	} else {
		v.WarningCount++
	}
	v.Messages = append(v.Messages, msg)
}

// Validate performs comprehensive validation of a task set. It checks IDs,
// durations, ratings, dependency references, and dependency acyclicity, and
// returns every issue found rather than stopping at the first.
//
// An empty task set is valid: planning nothing is not an error.
func Validate(tasks []Task) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Messages: make([]ValidationMessage, 0),
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.ID) == "" {
			result.add(ValidationMessage{
				Severity: SeverityError,
				Message:  "Task has no id",
				Field:    "id",
			})
			continue
		}
		if seen[t.ID] {
			result.add(ValidationMessage{
				Severity: SeverityError,
				Message:  fmt.Sprintf("Duplicate task id %q", t.ID),
				TaskID:   t.ID,
				Field:    "id",
			})
		}
		seen[t.ID] = true
	}

	for _, t := range tasks {
		if t.EstimatedHours <= 0 {
			result.add(ValidationMessage{
				Severity: SeverityError,
				Message:  fmt.Sprintf("Estimated hours must be positive, got %g", t.EstimatedHours),
				TaskID:   t.ID,
				Field:    "estimated_hours",
			})
		}
		if t.Mode != "" && !t.Mode.IsValid() {
			result.add(ValidationMessage{
				Severity: SeverityError,
				Message:  fmt.Sprintf("Unknown mode %q", t.Mode),
				TaskID:   t.ID,
				Field:    "mode",
			})
		}
		if strings.TrimSpace(t.Title) == "" {
			result.add(ValidationMessage{
				Severity: SeverityWarning,
				Message:  "Task has no title",
				TaskID:   t.ID,
				Field:    "title",
			})
		}
		if t.Importance != 0 && (t.Importance < 1 || t.Importance > RatingScale) {
			result.add(ValidationMessage{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Importance %d outside [1, %d]; it will be clamped", t.Importance, RatingScale),
				TaskID:   t.ID,
				Field:    "importance",
			})
		}
		if t.Impact != 0 && (t.Impact < 1 || t.Impact > RatingScale) {
			result.add(ValidationMessage{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Impact %d outside [1, %d]; it will be clamped", t.Impact, RatingScale),
				TaskID:   t.ID,
				Field:    "impact",
			})
		}

		for _, depID := range t.DependsOn {
			if depID == t.ID {
				result.add(ValidationMessage{
					Severity:   SeverityError,
					Message:    "Task depends on itself",
					TaskID:     t.ID,
					Field:      "depends_on",
					RelatedIDs: []string{t.ID},
				})
				continue
			}
			if !seen[depID] {
				result.add(ValidationMessage{
					Severity:   SeverityError,
					Message:    fmt.Sprintf("Depends on unknown task %q", depID),
					TaskID:     t.ID,
					Field:      "depends_on",
					RelatedIDs: []string{depID},
				})
			}
		}
	}

	if cycle := DetectCycle(tasks); cycle != nil {
		result.add(ValidationMessage{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Dependency cycle detected: %s", strings.Join(cycle, " -> ")),
			Field:      "depends_on",
			RelatedIDs: cycle,
		})
	}

	return result
}

// ValidateStrict validates the task set and converts any error-level finding
// into a ConfigurationError. This is the gate the pipeline calls before
// scoring or scheduling anything.
func ValidateStrict(tasks []Task) error {
	result := Validate(tasks)
	if !result.HasErrors() {
		return nil
	}

	// Surface the first error; the full message list is available to callers
	// that want to report everything via Validate.
	for i := range result.Messages {
		msg := &result.Messages[i]
		if !msg.IsError() {
			continue
		}
		sentinel := sentinelFor(msg)
		return errors.NewConfigurationError(msg.Message, sentinel).WithTask(msg.TaskID)
	}
	return errors.NewConfigurationError("task set rejected", nil)
}

// sentinelFor maps a validation message to its sentinel error so callers can
// branch with errors.Is.
func sentinelFor(msg *ValidationMessage) error {
	switch msg.Field {
	case "estimated_hours":
		return errors.ErrInvalidDuration
	case "mode":
		return errors.ErrInvalidMode
	case "depends_on":
		if strings.HasPrefix(msg.Message, "Dependency cycle") {
			return errors.ErrDependencyCycle
		}
		if strings.HasPrefix(msg.Message, "Task depends on itself") {
			return errors.ErrDependencyCycle
		}
		return errors.ErrUnknownDependency
	case "id":
		if strings.HasPrefix(msg.Message, "Duplicate") {
			return errors.ErrDuplicateTaskID
		}
	}
	return nil
}

// DetectCycle looks for a dependency cycle and returns the IDs forming one,
// ordered along the cycle, or nil if the graph is acyclic. Dependencies on
// unknown tasks are ignored here; Validate reports those separately.
//
// Task IDs are visited in sorted order so the reported cycle is deterministic.
func DetectCycle(tasks []Task) []string {
	byID := ByID(tasks)

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(tasks))

	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = inStack
		stack = append(stack, id)

		t := byID[id]
		deps := append([]string(nil), t.DependsOn...)
		sort.Strings(deps)
		for _, depID := range deps {
			if _, ok := byID[depID]; !ok {
				continue
			}
			switch state[depID] {
			case inStack:
				// Extract the cycle portion of the stack.
				for i, sid := range stack {
					if sid == depID {
						cycle = append(append([]string(nil), stack[i:]...), depID)
						return true
					}
				}
			case unvisited:
				if visit(depID) {
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	ids := make([]string, 0, len(tasks))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if state[id] == unvisited {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}
