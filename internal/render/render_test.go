package render

import (
	"encoding/json"
	"strings"
	"testing"

	"cadence/internal/advice"
	"cadence/internal/engine"
	"cadence/internal/task"
)

func planFixture(t *testing.T) *engine.PlanResult {
	t.Helper()
	tasks := []task.Task{
		{ID: "draft", Title: "Write the draft", DueInDays: 2, EstimatedHours: 5, Importance: 8, Impact: 7},
		{ID: "review", Title: "Review", DueInDays: 4, EstimatedHours: 2, Importance: 6, Impact: 5, DependsOn: []string{"draft"}},
		{ID: "whale", Title: "Giant migration", DueInDays: 3, EstimatedHours: 30, Importance: 9, Impact: 9},
	}
	result, err := engine.Run(tasks, engine.Options{CapacityPerDay: 8, HorizonDays: 7})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return result
}

func TestSummary(t *testing.T) {
	out := Summary(planFixture(t))

	for _, want := range []string{"PLAN SUMMARY", "academic", "8.0h/day", "INFEASIBLE"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTriage_OrderedByScore(t *testing.T) {
	out := Triage(planFixture(t))

	if !strings.Contains(out, "TRIAGE") {
		t.Fatalf("no triage header:\n%s", out)
	}
	// The urgent draft must appear above the later review.
	draftAt := strings.Index(out, "Write the draft")
	reviewAt := strings.Index(out, "Review")
	if draftAt == -1 || reviewAt == -1 {
		t.Fatalf("tasks missing from triage:\n%s", out)
	}
	if draftAt > reviewAt {
		t.Errorf("draft listed after review despite higher score:\n%s", out)
	}
}

func TestScheduleTable(t *testing.T) {
	out := ScheduleTable(planFixture(t))

	for _, want := range []string{"SCHEDULE", "Day 1", "Write the draft", "INFEASIBLE", "whale"} {
		if !strings.Contains(out, want) {
			t.Errorf("schedule missing %q:\n%s", want, out)
		}
	}
}

func TestScheduleTable_EmptyPlan(t *testing.T) {
	result, err := engine.Run(nil, engine.Options{SkipForecast: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out := ScheduleTable(result); !strings.Contains(out, "Nothing scheduled") {
		t.Errorf("empty schedule rendering:\n%s", out)
	}
}

func TestForecastTable(t *testing.T) {
	result := planFixture(t)
	out := ForecastTable(result)

	if !strings.Contains(out, "CAPACITY FORECAST") {
		t.Fatalf("no forecast header:\n%s", out)
	}
	// One row per forecast point plus the two header lines.
	rows := strings.Count(out, "\n") - 3
	if rows != len(result.Forecast) {
		t.Errorf("got %d rows, want %d:\n%s", rows, len(result.Forecast), out)
	}
}

func TestFindings(t *testing.T) {
	result := planFixture(t)
	out := Findings(advice.Analyze(result))

	if !strings.Contains(out, "FINDINGS") {
		t.Fatalf("no findings header:\n%s", out)
	}
	if !strings.Contains(out, "whale") {
		t.Errorf("infeasible task not referenced:\n%s", out)
	}

	if empty := Findings(nil); !strings.Contains(empty, "Nothing to report") {
		t.Errorf("empty findings rendering:\n%s", empty)
	}
}

func TestPlan_ComposesSections(t *testing.T) {
	result := planFixture(t)
	out := Plan(result, advice.Analyze(result))

	for _, want := range []string{"PLAN SUMMARY", "SCHEDULE", "TRIAGE", "CAPACITY FORECAST", "FINDINGS"} {
		if !strings.Contains(out, want) {
			t.Errorf("full report missing %q section", want)
		}
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	result := planFixture(t)
	out, err := JSON(result)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded engine.PlanResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Tasks) != len(result.Tasks) {
		t.Errorf("decoded %d tasks, want %d", len(decoded.Tasks), len(result.Tasks))
	}
}
