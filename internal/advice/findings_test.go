package advice

import (
	"reflect"
	"strings"
	"testing"

	"cadence/internal/engine"
	"cadence/internal/task"
)

func mustPlan(t *testing.T, tasks []task.Task, opts engine.Options) *engine.PlanResult {
	t.Helper()
	result, err := engine.Run(tasks, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return result
}

func findingOf(findings []Finding, kind Kind) *Finding {
	for i := range findings {
		if findings[i].Kind == kind {
			return &findings[i]
		}
	}
	return nil
}

func TestAnalyze_ComfortablePlan(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Title: "A", DueInDays: 10, EstimatedHours: 2, Importance: 5, Impact: 5},
		{ID: "b", Title: "B", DueInDays: 14, EstimatedHours: 3, Importance: 5, Impact: 5},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 14})

	findings := Analyze(result)
	stress := findingOf(findings, KindStress)
	if stress == nil {
		t.Fatal("no stress finding")
	}
	if !strings.Contains(stress.Summary, "comfortable") {
		t.Errorf("stress summary = %q, want the comfortable band", stress.Summary)
	}
	if f := findingOf(findings, KindInfeasible); f != nil {
		t.Errorf("unexpected infeasible finding: %+v", f)
	}
	if f := findingOf(findings, KindHighRisk); f != nil {
		t.Errorf("unexpected high risk finding: %+v", f)
	}
}

func TestAnalyze_OvercommittedPlan(t *testing.T) {
	tasks := []task.Task{
		{ID: "crunch1", Title: "Crunch 1", DueInDays: 1, EstimatedHours: 7, Importance: 9, Impact: 9},
		{ID: "crunch2", Title: "Crunch 2", DueInDays: 1, EstimatedHours: 7, Importance: 9, Impact: 9},
		{ID: "crunch3", Title: "Crunch 3", DueInDays: 1, EstimatedHours: 7, Importance: 9, Impact: 9},
		{ID: "crunch4", Title: "Crunch 4", DueInDays: 2, EstimatedHours: 7, Importance: 8, Impact: 9},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})

	findings := Analyze(result)
	high := findingOf(findings, KindHighRisk)
	if high == nil {
		t.Fatal("no high risk finding for a crunched plan")
	}
	consequence := findingOf(findings, KindConsequence)
	if consequence == nil || len(consequence.TaskIDs) != 1 {
		t.Fatalf("consequence finding = %+v", consequence)
	}
}

func TestAnalyze_InfeasibleAndMissed(t *testing.T) {
	tasks := []task.Task{
		{ID: "whale", Title: "Whale", DueInDays: 3, EstimatedHours: 20, Importance: 5, Impact: 5},
		{ID: "late", Title: "Late", DueInDays: 1, EstimatedHours: 5, Importance: 5, Impact: 5},
		{ID: "later", Title: "Later", DueInDays: 1, EstimatedHours: 5, Importance: 5, Impact: 5},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})

	findings := Analyze(result)
	infeasible := findingOf(findings, KindInfeasible)
	if infeasible == nil || !reflect.DeepEqual(infeasible.TaskIDs, []string{"whale"}) {
		t.Errorf("infeasible finding = %+v, want whale", infeasible)
	}
	if findingOf(findings, KindDeadline) == nil {
		t.Error("no deadline finding although a task lands late")
	}
}

func TestAnalyze_DropCandidates(t *testing.T) {
	// A doomed low-stakes task next to real work.
	tasks := []task.Task{
		{ID: "core", Title: "Core", DueInDays: 5, EstimatedHours: 6, Importance: 9, Impact: 9},
		{ID: "fluff", Title: "Fluff", DueInDays: 1, EstimatedHours: 9, Importance: 1, Impact: 1},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})

	findings := Analyze(result)
	drop := findingOf(findings, KindDrop)
	if drop == nil || !reflect.DeepEqual(drop.TaskIDs, []string{"fluff"}) {
		t.Errorf("drop finding = %+v, want fluff", drop)
	}
}

func TestAnalyze_CapacityFinding(t *testing.T) {
	tasks := []task.Task{
		{ID: "tight", Title: "Tight", DueInDays: 1, EstimatedHours: 8, Importance: 7, Impact: 7},
		{ID: "next", Title: "Next", DueInDays: 2, EstimatedHours: 8, Importance: 7, Impact: 7},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})

	// Default sweep includes the +1 point, so a verdict must be present.
	if findingOf(Analyze(result), KindCapacity) == nil {
		t.Error("no capacity finding despite a forecast with the +1 point")
	}
}

func TestAnalyze_NoForecastNoCapacityFinding(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Title: "A", DueInDays: 3, EstimatedHours: 2},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, SkipForecast: true})

	if f := findingOf(Analyze(result), KindCapacity); f != nil {
		t.Errorf("unexpected capacity finding: %+v", f)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Title: "A", DueInDays: 1, EstimatedHours: 7, Importance: 8, Impact: 8},
		{ID: "b", Title: "B", DueInDays: 1, EstimatedHours: 7, Importance: 2, Impact: 2},
		{ID: "c", Title: "C", DueInDays: 6, EstimatedHours: 2, Importance: 5, Impact: 5},
	}
	result := mustPlan(t, tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})

	first := Analyze(result)
	for i := 0; i < 5; i++ {
		if again := Analyze(result); !reflect.DeepEqual(first, again) {
			t.Fatalf("findings differ between runs:\n%+v\n%+v", first, again)
		}
	}
}
