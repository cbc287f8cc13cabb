// Package render turns engine results into terminal output. All renderers
// return strings so they can be printed, embedded in the watch TUI, or
// asserted against in tests.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cadence/internal/advice"
	"cadence/internal/engine"
)

const sectionWidth = 60

func section(title string) string {
	return SectionTitle.Render(title) + "\n" + Muted.Render(strings.Repeat("─", sectionWidth))
}

// Summary renders the headline numbers for a plan.
func Summary(result *engine.PlanResult) string {
	var sb strings.Builder
	sb.WriteString(section("PLAN SUMMARY"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Mode: %s    Capacity: %.1fh/day\n", result.Mode, result.CapacityPerDay)
	fmt.Fprintf(&sb, "Tasks: %d (%.1fh total)\n", len(result.Tasks), result.KPIs.TotalHours)

	stress := StressStyle(result.SystemStress).Render(fmt.Sprintf("%.0f/100", result.SystemStress))
	fmt.Fprintf(&sb, "Stress: %s    Hours at risk: %.1fh\n", stress, result.KPIs.HoursAtRisk)

	if result.KPIs.InfeasibleCount > 0 {
		fmt.Fprintf(&sb, "%s %d task(s) cannot be scheduled\n",
			InfeasibleBadge.Render("INFEASIBLE"), result.KPIs.InfeasibleCount)
	}
	if result.KPIs.MissedDeadlines > 0 {
		fmt.Fprintf(&sb, "%s %d task(s) land after their deadline\n",
			MissedBadge.Render("LATE"), result.KPIs.MissedDeadlines)
	}
	return sb.String()
}

// Triage renders every task ordered by priority score, highest first.
func Triage(result *engine.PlanResult) string {
	tasks := make([]engine.ScoredTask, len(result.Tasks))
	copy(tasks, result.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].PriorityScore != tasks[j].PriorityScore {
			return tasks[i].PriorityScore > tasks[j].PriorityScore
		}
		return tasks[i].ID < tasks[j].ID
	})

	var sb strings.Builder
	sb.WriteString(section("TRIAGE"))
	sb.WriteString("\n")
	sb.WriteString(Header.Render(fmt.Sprintf("%-4s %-20s %-6s %-6s %-6s %-9s %s",
		"#", "TASK", "SCORE", "DUE", "HOURS", "RISK", "TIER")))
	sb.WriteString("\n")

	for i, t := range tasks {
		title := t.Title
		if len(title) > 20 {
			title = title[:17] + "..."
		}
		tier := TierStyle(t.RiskTier).Render(string(t.RiskTier))
		fmt.Fprintf(&sb, "%-4d %-20s %-6.2f %-6d %-6.1f %-9.0f%% %s\n",
			i+1, title, t.PriorityScore, t.DueInDays, t.EstimatedHours,
			t.FailureProbability*100, tier)
	}
	return sb.String()
}

// ScheduleTable renders the day-by-day plan.
func ScheduleTable(result *engine.PlanResult) string {
	var sb strings.Builder
	sb.WriteString(section("SCHEDULE"))
	sb.WriteString("\n")

	if result.Schedule == nil || len(result.Schedule.Days) == 0 {
		sb.WriteString(Muted.Render("Nothing scheduled.") + "\n")
	}
	if result.Schedule == nil {
		return sb.String()
	}

	for _, day := range result.Schedule.Days {
		fmt.Fprintf(&sb, "%s (%.1fh of %.1fh)\n",
			Primary.Render(fmt.Sprintf("Day %d", day.Day+1)), day.PlannedHours, day.Capacity)
		for _, a := range day.Assignments {
			task := result.TaskByID(a.TaskID)
			label := a.TaskID
			if task != nil && task.Title != "" {
				label = task.Title
			}
			fmt.Fprintf(&sb, "  %-30s %.1fh\n", label, a.Hours)
		}
	}

	if len(result.Schedule.Infeasible) > 0 {
		sb.WriteString(InfeasibleBadge.Render("INFEASIBLE") + "\n")
		for _, inf := range result.Schedule.Infeasible {
			fmt.Fprintf(&sb, "  %s (%.1fh): %s\n", inf.TaskID, inf.EstimatedHours, inf.Reason)
		}
	}
	if len(result.Schedule.Missed) > 0 {
		sb.WriteString(MissedBadge.Render("LATE") + "\n")
		for _, m := range result.Schedule.Missed {
			fmt.Fprintf(&sb, "  %s lands on day %d, %d day(s) past its deadline\n",
				m.TaskID, m.AssignedDay+1, m.DaysLate)
		}
	}
	return sb.String()
}

// ForecastTable renders the capacity sweep.
func ForecastTable(result *engine.PlanResult) string {
	var sb strings.Builder
	sb.WriteString(section("CAPACITY FORECAST"))
	sb.WriteString("\n")

	if len(result.Forecast) == 0 {
		sb.WriteString(Muted.Render("No forecast computed.") + "\n")
		return sb.String()
	}

	sb.WriteString(Header.Render(fmt.Sprintf("%-10s %-8s %-12s %-8s %s",
		"CAP/DAY", "STRESS", "INFEASIBLE", "LATE", "LOSS")))
	sb.WriteString("\n")

	for _, p := range result.Forecast {
		marker := " "
		if p.CapacityPerDay == result.CapacityPerDay {
			marker = Primary.Render("›")
		}
		stress := StressStyle(p.SystemStress).Render(fmt.Sprintf("%-8.0f", p.SystemStress))
		fmt.Fprintf(&sb, "%s %-8.1f %s %-12d %-8d %.1fh\n",
			marker, p.CapacityPerDay, stress, p.InfeasibleCount, p.MissedDeadlines, p.ExpectedLossHours)
	}
	return sb.String()
}

// Findings renders advice findings as a bullet list.
func Findings(findings []advice.Finding) string {
	var sb strings.Builder
	sb.WriteString(section("FINDINGS"))
	sb.WriteString("\n")

	if len(findings) == 0 {
		sb.WriteString(Muted.Render("Nothing to report.") + "\n")
		return sb.String()
	}

	for _, f := range findings {
		bullet := Secondary.Render("•")
		switch f.Kind {
		case advice.KindInfeasible, advice.KindDeadline:
			bullet = Error.Render("•")
		case advice.KindHighRisk, advice.KindDrop:
			bullet = Warning.Render("•")
		}
		fmt.Fprintf(&sb, "%s %s\n", bullet, f.Summary)
		if len(f.TaskIDs) > 0 {
			fmt.Fprintf(&sb, "  %s\n", Muted.Render(strings.Join(f.TaskIDs, ", ")))
		}
	}
	return sb.String()
}

// Plan renders the full human-readable report.
func Plan(result *engine.PlanResult, findings []advice.Finding) string {
	parts := []string{
		Summary(result),
		ScheduleTable(result),
		Triage(result),
	}
	if len(result.Forecast) > 0 {
		parts = append(parts, ForecastTable(result))
	}
	parts = append(parts, Findings(findings))
	return strings.Join(parts, "\n")
}

// JSON renders a result (or any other report payload) as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data) + "\n", nil
}
