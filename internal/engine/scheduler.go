package engine

import (
	"fmt"
	"sort"

	"cadence/internal/errors"
	"cadence/internal/task"
)

// BuildSchedule places scored tasks onto planning days using a greedy
// day-filling strategy and annotates each task's AssignedDay in place.
//
// Each day, the highest-ranked eligible task is considered. A task is
// eligible once all of its dependencies sit on a strictly earlier day, so a
// dependent never shares a day with its dependency. If the head task does not
// fit in the day's remaining hours the day is closed and a fresh one opened;
// a task too large for even an empty day is marked infeasible and skipped,
// along with everything that transitively depends on it.
//
// Tasks that land after their deadline are reported in Missed. The caller is
// expected to have validated the task set; an undetected dependency cycle
// surfaces as ErrNoProgress.
func BuildSchedule(tasks []ScoredTask, mode task.Mode, capacityPerDay float64, horizonDays int) (*Schedule, error) {
	schedule := &Schedule{}
	if len(tasks) == 0 {
		return schedule, nil
	}

	for i := range tasks {
		tasks[i].AssignedDay = UnassignedDay
	}

	byID := make(map[string]*ScoredTask, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	rank := rankFor(mode)
	pending := make([]*ScoredTask, len(tasks))
	for i := range tasks {
		pending[i] = &tasks[i]
	}

	infeasible := make(map[string]string) // task id -> reason
	markInfeasible := func(t *ScoredTask, reason string) {
		infeasible[t.ID] = reason
		schedule.Infeasible = append(schedule.Infeasible, InfeasibleTask{
			TaskID:         t.ID,
			EstimatedHours: t.EstimatedHours,
			Reason:         reason,
		})
	}

	day := 0
	for len(pending) > 0 {
		if horizonDays > 0 && day >= horizonDays {
			for _, t := range pending {
				markInfeasible(t, fmt.Sprintf("does not fit within the %d-day horizon", horizonDays))
			}
			break
		}

		plan := DayPlan{Day: day, Capacity: capacityPerDay}
		remaining := capacityPerDay
		progressed := false

		for {
			head := headTask(pending, byID, infeasible, day, rank)
			if head == nil {
				break
			}
			if head.EstimatedHours > capacityPerDay {
				markInfeasible(head, fmt.Sprintf("estimate %.1fh exceeds the daily capacity %.1fh", head.EstimatedHours, capacityPerDay))
				pending = removeTask(pending, head.ID)
				progressed = true
				continue
			}
			if head.EstimatedHours > remaining {
				break // day is full for this task; try again tomorrow
			}

			head.AssignedDay = day
			plan.Assignments = append(plan.Assignments, Assignment{TaskID: head.ID, Hours: head.EstimatedHours})
			plan.PlannedHours += head.EstimatedHours
			remaining -= head.EstimatedHours
			pending = removeTask(pending, head.ID)
			progressed = true
		}

		if len(plan.Assignments) > 0 {
			schedule.Days = append(schedule.Days, plan)
		}

		if !progressed {
			// Nothing placed and nothing culled. Tasks blocked only by
			// yesterday's assignments become eligible tomorrow; tasks blocked
			// by infeasible dependencies never will, so cull them now.
			culled := cullBlocked(pending, byID, infeasible, markInfeasible)
			pending = culled.pending
			if !culled.any && !anyAssignedOn(tasks, day-1) {
				return nil, errors.NewComputationError("scheduler",
					fmt.Sprintf("no schedulable task among %d pending on day %d", len(pending), day),
					errors.ErrNoProgress)
			}
		}
		day++
	}

	recordMissed(schedule, tasks)
	return schedule, nil
}

// rankFor returns the mode's ordering as a less function over scored tasks.
// Academic planning is earliest-deadline-first; operational planning orders
// by value density (score per hour). Both fall back to the task ID so the
// ordering is total and deterministic.
func rankFor(mode task.Mode) func(a, b *ScoredTask) bool {
	switch mode {
	case task.ModeOperational:
		return func(a, b *ScoredTask) bool {
			da, db := valueDensity(a), valueDensity(b)
			if da != db {
				return da > db
			}
			if a.DueInDays != b.DueInDays {
				return a.DueInDays < b.DueInDays
			}
			return a.ID < b.ID
		}
	default:
		return func(a, b *ScoredTask) bool {
			if a.DueInDays != b.DueInDays {
				return a.DueInDays < b.DueInDays
			}
			if a.PriorityScore != b.PriorityScore {
				return a.PriorityScore > b.PriorityScore
			}
			return a.ID < b.ID
		}
	}
}

func valueDensity(t *ScoredTask) float64 {
	if t.EstimatedHours <= 0 {
		return t.PriorityScore
	}
	return t.PriorityScore / t.EstimatedHours
}

// headTask picks the highest-ranked pending task whose dependencies all sit
// on a strictly earlier day than the given one.
func headTask(pending []*ScoredTask, byID map[string]*ScoredTask, infeasible map[string]string, day int, less func(a, b *ScoredTask) bool) *ScoredTask {
	var head *ScoredTask
	for _, t := range pending {
		if !eligible(t, byID, infeasible, day) {
			continue
		}
		if head == nil || less(t, head) {
			head = t
		}
	}
	return head
}

func eligible(t *ScoredTask, byID map[string]*ScoredTask, infeasible map[string]string, day int) bool {
	for _, depID := range t.DependsOn {
		if _, bad := infeasible[depID]; bad {
			return false
		}
		dep, ok := byID[depID]
		if !ok {
			continue // unknown deps are a validation concern, not a scheduling one
		}
		if dep.AssignedDay == UnassignedDay || dep.AssignedDay >= day {
			return false
		}
	}
	return true
}

type cullResult struct {
	pending []*ScoredTask
	any     bool
}

// cullBlocked marks every pending task that transitively depends on an
// infeasible task as infeasible itself, iterating until the set is stable.
func cullBlocked(pending []*ScoredTask, byID map[string]*ScoredTask, infeasible map[string]string, mark func(*ScoredTask, string)) cullResult {
	result := cullResult{pending: pending}
	for {
		changed := false
		for _, t := range result.pending {
			for _, depID := range t.DependsOn {
				if _, bad := infeasible[depID]; bad {
					mark(t, fmt.Sprintf("depends on infeasible task %q", depID))
					result.pending = removeTask(result.pending, t.ID)
					result.any = true
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
		if !changed {
			return result
		}
	}
}

func anyAssignedOn(tasks []ScoredTask, day int) bool {
	if day < 0 {
		return false
	}
	for i := range tasks {
		if tasks[i].AssignedDay == day {
			return true
		}
	}
	return false
}

func removeTask(pending []*ScoredTask, id string) []*ScoredTask {
	for i, t := range pending {
		if t.ID == id {
			return append(pending[:i], pending[i+1:]...)
		}
	}
	return pending
}

// recordMissed reports every scheduled task that completes after its
// deadline. A task assigned to day d completes after d+1 elapsed days.
func recordMissed(schedule *Schedule, tasks []ScoredTask) {
	for i := range tasks {
		t := &tasks[i]
		if t.AssignedDay == UnassignedDay {
			continue
		}
		if t.AssignedDay >= t.DueInDays {
			schedule.Missed = append(schedule.Missed, MissedDeadline{
				TaskID:      t.ID,
				DueInDays:   t.DueInDays,
				AssignedDay: t.AssignedDay,
				DaysLate:    t.AssignedDay - t.DueInDays + 1,
			})
		}
	}
	sort.Slice(schedule.Missed, func(i, j int) bool {
		return schedule.Missed[i].TaskID < schedule.Missed[j].TaskID
	})
}
