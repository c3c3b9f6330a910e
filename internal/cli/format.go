package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/schedule"
)

func printPlan(w io.Writer, plan schedule.GeneratedPlan, summary schedule.PlanSummary) {
	fmt.Fprintf(w, "Plan: %s to %s, %d weeks\n\n",
		schedule.FormatDate(plan.StartDate), schedule.FormatDate(plan.TargetDate), plan.TotalWeeks)

	byWeek := make(map[int][]schedule.GeneratedRun)
	for _, r := range plan.Runs {
		byWeek[r.WeekNumber] = append(byWeek[r.WeekNumber], r)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tSTART\tRUNS\tKM")
	for week := 1; week <= plan.TotalWeeks; week++ {
		runs := byWeek[week]
		parts := make([]string, len(runs))
		var km float64
		for i, r := range runs {
			parts[i] = fmt.Sprintf("%s %s %.1f", r.ScheduledDate.Weekday().String()[:3], r.Type, r.DistanceKm)
			km += r.DistanceKm
		}
		start := plan.StartDate.AddDate(0, 0, (week-1)*7)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\n", week, schedule.FormatDate(start), strings.Join(parts, ", "), km)
	}
	tw.Flush()

	fmt.Fprintln(w)
	printWarnings(w, plan.Warnings)
	fmt.Fprintf(w, "Total: %d runs, %.0f km, peak week %.0f km, longest run %.1f km\n",
		summary.TotalRuns, summary.TotalDistanceKm, summary.PeakWeekKm, summary.LongestRunKm)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

func printPreview(w io.Writer, p *domain.CascadePreview) {
	if p.Action == domain.ActionMove && p.NewDate != nil {
		fmt.Fprintf(w, "Move %s to %s\n", describeRun(p.TargetRun), shortDate(*p.NewDate))
	} else {
		fmt.Fprintf(w, "Skip %s\n", describeRun(p.TargetRun))
	}

	e := p.Effect
	fmt.Fprintf(w, "Risk: %s | runs affected: %d | weekly change: %s | recovery days lost: %d\n",
		e.RiskLevel, e.RunsAffected, signedKm(e.WeeklyDistanceChange), e.RecoveryDaysLost)
	for _, line := range e.Summary {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	if len(p.AffectedRuns) > 0 {
		fmt.Fprintln(w, "Affected:")
		for _, a := range p.AffectedRuns {
			fmt.Fprintf(w, "  %s: %s\n", describeRun(a.Run), changeDetail(a))
		}
	}
	if p.Suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", p.Suggestion)
	}
}
