package engine

import (
	"math"

	"cadence/internal/task"
)

// Scoring weights per planning mode. Academic planning is dominated by
// urgency; operational planning by importance and impact. Weights in each row
// sum to 1 so the combined score stays in [0, 1].
type weights struct {
	urgency    float64
	importance float64
	impact     float64
	depRisk    float64
}

var (
	academicWeights    = weights{urgency: 0.70, importance: 0.10, impact: 0.05, depRisk: 0.15}
	operationalWeights = weights{urgency: 0.20, importance: 0.35, impact: 0.35, depRisk: 0.10}
	balancedWeights    = weights{urgency: 0.25, importance: 0.25, impact: 0.25, depRisk: 0.25}
)

func weightsFor(mode task.Mode) weights {
	switch mode {
	case task.ModeAcademic:
		return academicWeights
	case task.ModeOperational:
		return operationalWeights
	default:
		return balancedWeights
	}
}

// ScoreTasks computes priority scores for the whole set. Importance and
// impact are min-max normalized across the set, so a task's score depends on
// what it is competing with. The result preserves input order and leaves
// schedule and risk annotations at their zero values.
func ScoreTasks(tasks []task.Task, planMode task.Mode) []ScoredTask {
	scored := make([]ScoredTask, len(tasks))
	if len(tasks) == 0 {
		return scored
	}

	blocks := task.BlocksCount(tasks)
	maxBlocks := 0
	for _, n := range blocks {
		if n > maxBlocks {
			maxBlocks = n
		}
	}

	minImportance, maxImportance := ratingRange(tasks, func(t *task.Task) int { return t.Importance })
	minImpact, maxImpact := ratingRange(tasks, func(t *task.Task) int { return t.Impact })

	for i := range tasks {
		t := &tasks[i]
		sub := SubScores{
			Urgency:    urgency(t.DueInDays),
			Importance: normalizeRating(t.Importance, minImportance, maxImportance),
			Impact:     normalizeRating(t.Impact, minImpact, maxImpact),
		}
		if maxBlocks > 0 {
			sub.DependencyRisk = float64(blocks[t.ID]) / float64(maxBlocks)
		}

		w := weightsFor(t.EffectiveMode(planMode))
		score := w.urgency*sub.Urgency +
			w.importance*sub.Importance +
			w.impact*sub.Impact +
			w.depRisk*sub.DependencyRisk

		scored[i] = ScoredTask{
			Task:          *t,
			PriorityScore: score,
			SubScores:     sub,
			BlocksCount:   blocks[t.ID],
			AssignedDay:   UnassignedDay,
		}
	}
	return scored
}

// urgency maps days until the deadline to [0, 1]. A task due today or
// overdue saturates at 1; far-out deadlines decay hyperbolically.
func urgency(dueInDays int) float64 {
	if dueInDays <= 1 {
		return 1
	}
	return 1 / float64(dueInDays)
}

// clampRating forces a rating onto the 1..RatingScale scale. Zero (unset)
// maps to the scale midpoint.
func clampRating(r int) float64 {
	if r == 0 {
		return float64(task.RatingScale) / 2
	}
	return math.Min(math.Max(float64(r), 1), float64(task.RatingScale))
}

func ratingRange(tasks []task.Task, get func(*task.Task) int) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for i := range tasks {
		v := clampRating(get(&tasks[i]))
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// normalizeRating min-max normalizes a rating across the set. When every
// task carries the same rating the component carries no signal, so it falls
// back to 0.5 rather than dividing by zero.
func normalizeRating(r int, min, max float64) float64 {
	if max <= min {
		return 0.5
	}
	return (clampRating(r) - min) / (max - min)
}
