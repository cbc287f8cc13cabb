// Package advice derives rule-based findings from a computed plan. It reads
// the engine's structured output and never reaches back into the planning
// algorithms, so presentation stays decoupled from the numbers.
package advice

import (
	"fmt"
	"math"
	"sort"

	"cadence/internal/engine"
)

// Kind classifies a finding so renderers can group and style them.
type Kind string

const (
	KindStress      Kind = "stress"
	KindRiskShape   Kind = "risk_shape"
	KindConsequence Kind = "consequence"
	KindHighRisk    Kind = "high_risk"
	KindDrop        Kind = "drop_candidate"
	KindCapacity    Kind = "capacity"
	KindDeadline    Kind = "deadline"
	KindInfeasible  Kind = "infeasible"
)

// Finding is one observation about a plan, with the task ids that triggered
// it when applicable.
type Finding struct {
	Kind    Kind     `json:"kind"`
	Summary string   `json:"summary"`
	TaskIDs []string `json:"task_ids,omitempty"`
}

// Stress bands for the overall verdict.
const (
	stressSevere   = 75.0
	stressElevated = 50.0
	stressModerate = 25.0
)

// Per-task probability thresholds.
const (
	highRiskFloor     = 0.7
	moderateRiskFloor = 0.4
	dropRiskFloor     = 0.5
	dropWeightCeiling = 0.3
)

// Analyze derives findings from a plan, ordered from the overall verdict down
// to per-task detail. The result is deterministic for a given plan.
func Analyze(result *engine.PlanResult) []Finding {
	var findings []Finding
	findings = append(findings, stressFinding(result))
	if f, ok := riskShapeFinding(result); ok {
		findings = append(findings, f)
	}
	if f, ok := consequenceFinding(result); ok {
		findings = append(findings, f)
	}
	findings = append(findings, taskListFindings(result)...)
	if f, ok := infeasibleFinding(result); ok {
		findings = append(findings, f)
	}
	if f, ok := deadlineFinding(result); ok {
		findings = append(findings, f)
	}
	if f, ok := capacityFinding(result); ok {
		findings = append(findings, f)
	}
	return findings
}

func stressFinding(result *engine.PlanResult) Finding {
	stress := result.SystemStress
	var summary string
	switch {
	case stress >= stressSevere:
		summary = fmt.Sprintf("Plan is severely overcommitted (stress %.0f/100); expect failures without cuts", stress)
	case stress >= stressElevated:
		summary = fmt.Sprintf("Plan is under heavy load (stress %.0f/100); little room for surprises", stress)
	case stress >= stressModerate:
		summary = fmt.Sprintf("Plan is workable but loaded (stress %.0f/100)", stress)
	default:
		summary = fmt.Sprintf("Plan is comfortable (stress %.0f/100)", stress)
	}
	return Finding{Kind: KindStress, Summary: summary}
}

// riskShapeFinding distinguishes a few dangerous tasks from risk smeared
// across the whole plan, using the spread of failure probabilities.
func riskShapeFinding(result *engine.PlanResult) (Finding, bool) {
	if len(result.Tasks) < 2 {
		return Finding{}, false
	}

	var sum float64
	for i := range result.Tasks {
		sum += result.Tasks[i].FailureProbability
	}
	mean := sum / float64(len(result.Tasks))

	var variance float64
	for i := range result.Tasks {
		d := result.Tasks[i].FailureProbability - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(result.Tasks)))

	switch {
	case stddev > 0.25:
		return Finding{
			Kind:    KindRiskShape,
			Summary: "Risk is concentrated in a few tasks; fixing those changes the picture",
		}, true
	case stddev < 0.08 && mean > 0.3:
		return Finding{
			Kind:    KindRiskShape,
			Summary: "Risk is spread evenly across the plan; the workload itself is the problem",
		}, true
	}
	return Finding{}, false
}

// consequenceFinding points at the single task whose failure would cost the
// most expected hours.
func consequenceFinding(result *engine.PlanResult) (Finding, bool) {
	var worst *engine.ScoredTask
	for i := range result.Tasks {
		t := &result.Tasks[i]
		if worst == nil || t.ExpectedLossHours > worst.ExpectedLossHours ||
			(t.ExpectedLossHours == worst.ExpectedLossHours && t.ID < worst.ID) {
			worst = t
		}
	}
	if worst == nil || worst.ExpectedLossHours <= 0 {
		return Finding{}, false
	}
	return Finding{
		Kind: KindConsequence,
		Summary: fmt.Sprintf("%q carries the largest expected loss (%.1fh at %.0f%% failure risk)",
			worst.Title, worst.ExpectedLossHours, worst.FailureProbability*100),
		TaskIDs: []string{worst.ID},
	}, true
}

func taskListFindings(result *engine.PlanResult) []Finding {
	var high, moderate, drops []string
	for i := range result.Tasks {
		t := &result.Tasks[i]
		switch {
		case t.FailureProbability >= highRiskFloor:
			high = append(high, t.ID)
		case t.FailureProbability >= moderateRiskFloor:
			moderate = append(moderate, t.ID)
		}
		if t.FailureProbability >= dropRiskFloor && t.ImpactWeight <= dropWeightCeiling {
			drops = append(drops, t.ID)
		}
	}
	sort.Strings(high)
	sort.Strings(moderate)
	sort.Strings(drops)

	var findings []Finding
	if len(high) > 0 {
		findings = append(findings, Finding{
			Kind:    KindHighRisk,
			Summary: fmt.Sprintf("%d task(s) likely to fail as planned", len(high)),
			TaskIDs: high,
		})
	}
	if len(moderate) > 0 {
		findings = append(findings, Finding{
			Kind:    KindHighRisk,
			Summary: fmt.Sprintf("%d task(s) at moderate risk; watch these", len(moderate)),
			TaskIDs: moderate,
		})
	}
	if len(drops) > 0 {
		findings = append(findings, Finding{
			Kind:    KindDrop,
			Summary: fmt.Sprintf("%d low-stakes task(s) likely to fail anyway; consider dropping them", len(drops)),
			TaskIDs: drops,
		})
	}
	return findings
}

func infeasibleFinding(result *engine.PlanResult) (Finding, bool) {
	if result.Schedule == nil || len(result.Schedule.Infeasible) == 0 {
		return Finding{}, false
	}
	ids := make([]string, len(result.Schedule.Infeasible))
	for i, inf := range result.Schedule.Infeasible {
		ids[i] = inf.TaskID
	}
	sort.Strings(ids)
	return Finding{
		Kind:    KindInfeasible,
		Summary: fmt.Sprintf("%d task(s) cannot be scheduled at all; split them or raise capacity", len(ids)),
		TaskIDs: ids,
	}, true
}

func deadlineFinding(result *engine.PlanResult) (Finding, bool) {
	if result.Schedule == nil || len(result.Schedule.Missed) == 0 {
		return Finding{}, false
	}
	ids := make([]string, len(result.Schedule.Missed))
	for i, m := range result.Schedule.Missed {
		ids[i] = m.TaskID
	}
	sort.Strings(ids)
	return Finding{
		Kind:    KindDeadline,
		Summary: fmt.Sprintf("%d task(s) land after their deadline even in the best ordering", len(ids)),
		TaskIDs: ids,
	}, true
}

// capacityFinding reports how much one extra hour per day would help, read
// off the forecast when it contains the +1 point.
func capacityFinding(result *engine.PlanResult) (Finding, bool) {
	var base, plusOne *engine.ForecastPoint
	for i := range result.Forecast {
		p := &result.Forecast[i]
		if p.CapacityPerDay == result.CapacityPerDay {
			base = p
		}
		if p.CapacityPerDay == result.CapacityPerDay+1 {
			plusOne = p
		}
	}
	if base == nil || plusOne == nil {
		return Finding{}, false
	}

	drop := base.SystemStress - plusOne.SystemStress
	if drop >= 5 {
		return Finding{
			Kind: KindCapacity,
			Summary: fmt.Sprintf("One extra hour per day cuts stress by %.0f points; capacity is the bottleneck",
				drop),
		}, true
	}
	return Finding{
		Kind:    KindCapacity,
		Summary: "Extra daily capacity barely moves the needle; rebalance or cut tasks instead",
	}, true
}
