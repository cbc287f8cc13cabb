package engine

import (
	"cadence/internal/task"
)

// UnassignedDay marks a task the scheduler could not place on any day.
const UnassignedDay = -1

// RiskTier buckets a failure probability into a coarse severity band.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierMedium   RiskTier = "medium"
	TierHigh     RiskTier = "high"
	TierCritical RiskTier = "critical"
)

// String returns the string representation of this tier.
func (rt RiskTier) String() string {
	return string(rt)
}

// TierFor maps a failure probability to its risk tier.
func TierFor(failureProbability float64) RiskTier {
	switch {
	case failureProbability < 0.40:
		return TierLow
	case failureProbability < 0.70:
		return TierMedium
	case failureProbability < 0.90:
		return TierHigh
	default:
		return TierCritical
	}
}

// SubScores are the normalized components that feed the priority score.
// Each component lies in [0, 1].
type SubScores struct {
	// Urgency grows as the deadline approaches; 1.0 means due now or overdue.
	Urgency float64 `json:"urgency"`
	// Importance is the task's importance rating normalized across the set.
	Importance float64 `json:"importance"`
	// Impact is the task's impact rating normalized across the set.
	Impact float64 `json:"impact"`
	// DependencyRisk reflects how many other tasks this one blocks.
	DependencyRisk float64 `json:"dependency_risk"`
}

// ScoredTask is a task annotated with everything the engine derives for it.
// The embedded Task is the untouched input; annotations are recomputed from
// scratch on every run.
type ScoredTask struct {
	task.Task

	// PriorityScore is the weighted combination of the sub-scores, in [0, 1].
	PriorityScore float64 `json:"priority_score"`

	// SubScores are the individual scoring components.
	SubScores SubScores `json:"sub_scores"`

	// BlocksCount is how many other tasks in the set depend on this one.
	BlocksCount int `json:"blocks_count"`

	// AssignedDay is the zero-based day the scheduler placed this task on, or
	// UnassignedDay if it could not be placed.
	AssignedDay int `json:"assigned_day"`

	// FailureProbability estimates the chance this task will not be completed
	// on time, in [0, 1].
	FailureProbability float64 `json:"failure_probability"`

	// RiskTier is the banded form of FailureProbability.
	RiskTier RiskTier `json:"risk_tier"`

	// ImpactWeight is the task's consequence weight in [0.1, 1], used to
	// aggregate per-task risk into the system stress index.
	ImpactWeight float64 `json:"impact_weight"`

	// ExpectedLossHours is FailureProbability times the task's estimate.
	ExpectedLossHours float64 `json:"expected_loss_hours"`

	// SlackHours is the schedulable time remaining before the deadline minus
	// the task's estimate. Negative slack means the task is overloaded.
	SlackHours float64 `json:"slack_hours"`
}

// Scheduled returns true if the scheduler placed this task on a day.
func (st *ScoredTask) Scheduled() bool {
	return st.AssignedDay != UnassignedDay
}

// Assignment records one task placed on a day.
type Assignment struct {
	TaskID string  `json:"task_id"`
	Hours  float64 `json:"hours"`
}

// DayPlan is the work assigned to a single planning day.
type DayPlan struct {
	// Day is the zero-based day index. Day 0 is the plan start date.
	Day int `json:"day"`
	// Assignments lists the tasks placed on this day, in placement order.
	Assignments []Assignment `json:"assignments"`
	// PlannedHours is the sum of assigned hours, never above the capacity.
	PlannedHours float64 `json:"planned_hours"`
	// Capacity is the available hours on this day.
	Capacity float64 `json:"capacity"`
}

// InfeasibleTask records a task the scheduler could not place, with the
// reason. Infeasibility is a planning outcome, not an error.
type InfeasibleTask struct {
	TaskID         string  `json:"task_id"`
	EstimatedHours float64 `json:"estimated_hours"`
	Reason         string  `json:"reason"`
}

// MissedDeadline records a task that was scheduled but completes after its
// deadline.
type MissedDeadline struct {
	TaskID      string `json:"task_id"`
	DueInDays   int    `json:"due_in_days"`
	AssignedDay int    `json:"assigned_day"`
	// DaysLate is how many days past the deadline the task completes.
	DaysLate int `json:"days_late"`
}

// Schedule is the scheduler's full output for one capacity setting.
type Schedule struct {
	// Days holds one entry per planning day that received work.
	Days []DayPlan `json:"days"`
	// Infeasible lists tasks that could not be placed.
	Infeasible []InfeasibleTask `json:"infeasible,omitempty"`
	// Missed lists scheduled tasks that finish after their deadline.
	Missed []MissedDeadline `json:"missed,omitempty"`
}

// TotalPlannedHours sums the hours placed across all days.
func (s *Schedule) TotalPlannedHours() float64 {
	var total float64
	for _, d := range s.Days {
		total += d.PlannedHours
	}
	return total
}

// ForecastPoint is the outcome of re-planning the same task set at one
// alternative daily capacity.
type ForecastPoint struct {
	CapacityPerDay        float64 `json:"capacity_per_day"`
	SystemStress          float64 `json:"system_stress"`
	InfeasibleCount       int     `json:"infeasible_count"`
	MissedDeadlines       int     `json:"missed_deadlines"`
	MaxFailureProbability float64 `json:"max_failure_probability"`
	ExpectedLossHours     float64 `json:"expected_loss_hours"`
}

// KPIs are the headline numbers summarizing a plan.
type KPIs struct {
	// TotalHours is the sum of all task estimates, placed or not.
	TotalHours float64 `json:"total_hours"`
	// HoursAtRisk is the sum of expected loss hours across all tasks.
	HoursAtRisk float64 `json:"hours_at_risk"`
	// HighRiskCount counts tasks in the high or critical tier.
	HighRiskCount int `json:"high_risk_count"`
	// MissedDeadlines counts scheduled tasks finishing after their deadline.
	MissedDeadlines int `json:"missed_deadlines"`
	// InfeasibleCount counts tasks the scheduler could not place.
	InfeasibleCount int `json:"infeasible_count"`
}

// PlanResult is the full output of one pipeline run.
type PlanResult struct {
	// Mode is the plan-wide mode the result was computed under.
	Mode task.Mode `json:"mode"`
	// CapacityPerDay is the daily capacity the plan was computed at.
	CapacityPerDay float64 `json:"capacity_per_day"`
	// Tasks holds every input task with its derived annotations.
	Tasks []ScoredTask `json:"tasks"`
	// Schedule is the day-by-day plan.
	Schedule *Schedule `json:"schedule"`
	// SystemStress is the impact-weighted mean failure probability, 0 to 100.
	SystemStress float64 `json:"system_stress"`
	// Forecast holds one point per swept capacity, ordered by capacity.
	Forecast []ForecastPoint `json:"forecast,omitempty"`
	// KPIs are the headline plan numbers.
	KPIs KPIs `json:"kpis"`
}

// TaskByID returns the scored task with the given ID, or nil.
func (r *PlanResult) TaskByID(id string) *ScoredTask {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}
