package engine

import (
	"math"

	"cadence/internal/task"
)

// Logistic model coefficients. The intercept keeps a relaxed task (plenty of
// slack, no competition, far deadline) below the low-risk threshold; the
// overload term dominates once a task no longer fits its deadline window.
const (
	riskIntercept      = -1.2
	riskOverloadWeight = 1.8
	riskPressureWeight = 1.2
	riskUrgencyWeight  = 1.1
	riskDepWeight      = 0.7
)

// AssessRisk annotates every task with its failure probability, risk tier,
// impact weight and expected loss, then returns the system stress index: the
// impact-weighted mean failure probability scaled to 0..100.
//
// Failure probability is measured against the deadline window (days until
// due, clipped to the horizon), never against where the scheduler placed the
// task. Raising capacity therefore never raises any task's probability, and
// the stress index is non-increasing in capacity. The per-task SlackHours
// annotation does reflect the assigned day; it is display data only.
func AssessRisk(tasks []ScoredTask, capacityPerDay float64, horizonDays int) float64 {
	if len(tasks) == 0 {
		return 0
	}

	var weightedSum, weightTotal float64
	for i := range tasks {
		t := &tasks[i]

		window := windowCapacity(t.DueInDays, capacityPerDay, horizonDays)
		overload := math.Max(0, t.EstimatedHours-window) / capacityPerDay
		pressure := competitionPressure(t, tasks, capacityPerDay, horizonDays)

		depFlag := 0.0
		if t.HasDependencies() {
			depFlag = 1
		}

		z := riskIntercept +
			riskOverloadWeight*overload +
			riskPressureWeight*pressure +
			riskUrgencyWeight*t.SubScores.Urgency +
			riskDepWeight*depFlag
		fp := sigmoid(z)

		t.SlackHours = slackHours(t, capacityPerDay, horizonDays)
		t.FailureProbability = fp
		t.RiskTier = TierFor(fp)
		t.ImpactWeight = impactWeight(&t.Task)
		t.ExpectedLossHours = fp * t.EstimatedHours

		weightedSum += fp * t.ImpactWeight
		weightTotal += t.ImpactWeight
	}

	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal * 100
}

// slackHours is the schedulable time left before the task's deadline minus
// its estimate, as placed. For a scheduled task the window starts at its
// assigned day; otherwise the whole deadline window, clipped to the horizon,
// counts. It feeds the SlackHours annotation, not the probability model.
func slackHours(t *ScoredTask, capacityPerDay float64, horizonDays int) float64 {
	daysLeft := t.DueInDays
	if t.Scheduled() {
		return float64(daysLeft-t.AssignedDay)*capacityPerDay - t.EstimatedHours
	}
	return windowCapacity(daysLeft, capacityPerDay, horizonDays) - t.EstimatedHours
}

// windowCapacity is the total hours available before a deadline, clipped to
// the planning horizon. Overdue deadlines have no window at all.
func windowCapacity(daysLeft int, capacityPerDay float64, horizonDays int) float64 {
	window := daysLeft
	if horizonDays > 0 && window > horizonDays {
		window = horizonDays
	}
	if window < 0 {
		window = 0
	}
	return float64(window) * capacityPerDay
}

// competitionPressure measures how oversubscribed a task's deadline window
// is. All work due on or before this task's deadline competes for the same
// window; pressure is the fraction of demand exceeding the window's capacity.
func competitionPressure(t *ScoredTask, tasks []ScoredTask, capacityPerDay float64, horizonDays int) float64 {
	var competing float64
	for i := range tasks {
		if tasks[i].DueInDays <= t.DueInDays {
			competing += tasks[i].EstimatedHours
		}
	}

	window := windowCapacity(t.DueInDays, capacityPerDay, horizonDays)
	if window <= 0 {
		return 1
	}
	return math.Max(0, competing/window-1)
}

// impactWeight combines a task's importance and impact ratings into a 0.1..1
// aggregation weight. The floor keeps even throwaway tasks contributing a
// little to the stress index.
func impactWeight(t *task.Task) float64 {
	mean := (clampRating(t.Importance) + clampRating(t.Impact)) / 2
	return math.Max(0.1, mean/float64(task.RatingScale))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
