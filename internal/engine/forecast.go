package engine

import (
	"sort"

	"cadence/internal/errors"
	"cadence/internal/task"
)

// DefaultSweep is the capacity deltas tried by the forecaster when the
// caller does not choose their own: two hours down to two hours up.
var DefaultSweep = []float64{-2, -1, 0, 1, 2}

// MinSweepCapacity is the floor applied to swept capacities. Sweeping below
// one hour a day produces degenerate plans that drown the useful points.
const MinSweepCapacity = 1.0

// Forecast re-plans the same task set at each swept capacity and reports how
// the plan's health responds. Deltas are applied to the base capacity and
// floored at MinSweepCapacity; duplicate capacities after flooring collapse
// into one point. Points come back ordered by capacity, ascending.
//
// A nil deltas slice means the default sweep; an explicitly empty one is a
// configuration error. Each point is a full independent re-plan, so the
// baseline tasks and schedule are never touched.
func Forecast(tasks []task.Task, mode task.Mode, baseCapacity float64, horizonDays int, deltas []float64) ([]ForecastPoint, error) {
	if deltas == nil {
		deltas = DefaultSweep
	}
	if len(deltas) == 0 {
		return nil, errors.NewConfigurationError("capacity sweep has no deltas", errors.ErrEmptySweep)
	}

	capacities := make([]float64, 0, len(deltas))
	seen := make(map[float64]bool, len(deltas))
	for _, d := range deltas {
		c := baseCapacity + d
		if c < MinSweepCapacity {
			c = MinSweepCapacity
		}
		if !seen[c] {
			seen[c] = true
			capacities = append(capacities, c)
		}
	}
	sort.Float64s(capacities)

	points := make([]ForecastPoint, 0, len(capacities))
	for _, c := range capacities {
		point, err := forecastAt(tasks, mode, c, horizonDays)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

func forecastAt(tasks []task.Task, mode task.Mode, capacity float64, horizonDays int) (ForecastPoint, error) {
	scored := ScoreTasks(tasks, mode)
	schedule, err := BuildSchedule(scored, mode, capacity, horizonDays)
	if err != nil {
		return ForecastPoint{}, err
	}
	stress := AssessRisk(scored, capacity, horizonDays)

	point := ForecastPoint{
		CapacityPerDay:  capacity,
		SystemStress:    stress,
		InfeasibleCount: len(schedule.Infeasible),
		MissedDeadlines: len(schedule.Missed),
	}
	for i := range scored {
		if scored[i].FailureProbability > point.MaxFailureProbability {
			point.MaxFailureProbability = scored[i].FailureProbability
		}
		point.ExpectedLossHours += scored[i].ExpectedLossHours
	}
	return point, nil
}
