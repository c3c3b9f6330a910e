package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/schedule"

	"github.com/spf13/cobra"
)

func newPreviewMoveCmd() *cobra.Command {
	var planPath, runRef, date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview-move",
		Short: "Show the cascade of moving a run to another day",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(planPath)
			if err != nil {
				return err
			}
			run, err := resolveRun(plan, runRef)
			if err != nil {
				return err
			}
			newDate, err := schedule.ParseDate(date)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}

			preview := schedule.CalculateMoveEffect(plan, run.ID, newDate)
			return writePreview(cmd, preview, asJSON)
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan JSON file")
	cmd.Flags().StringVar(&runRef, "run", "", "Run ID or 1-based position")
	cmd.Flags().StringVar(&date, "date", "", "Target day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the preview as JSON")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("run")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newPreviewSkipCmd() *cobra.Command {
	var planPath, runRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview-skip",
		Short: "Show the cascade of skipping a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(planPath)
			if err != nil {
				return err
			}
			run, err := resolveRun(plan, runRef)
			if err != nil {
				return err
			}

			preview := schedule.CalculateSkipEffect(plan, run.ID)
			return writePreview(cmd, preview, asJSON)
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan JSON file")
	cmd.Flags().StringVar(&runRef, "run", "", "Run ID or 1-based position")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the preview as JSON")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func newDropDatesCmd() *cobra.Command {
	var planPath, runRef, week string

	cmd := &cobra.Command{
		Use:   "drop-dates",
		Short: "List the days of a week a run can move to without high risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(planPath)
			if err != nil {
				return err
			}
			run, err := resolveRun(plan, runRef)
			if err != nil {
				return err
			}
			weekStart := schedule.StartOfWeek(run.ScheduledDate)
			if week != "" {
				d, err := schedule.ParseDate(week)
				if err != nil {
					return fmt.Errorf("--week must be YYYY-MM-DD: %w", err)
				}
				weekStart = schedule.StartOfWeek(d)
			}

			dates := schedule.ValidDropDates(plan, run.ID, weekStart)
			if len(dates) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No safe days in the week of %s\n", schedule.FormatDate(weekStart))
				return nil
			}
			for _, d := range dates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Weekday().String()[:3], schedule.FormatDate(d))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan JSON file")
	cmd.Flags().StringVar(&runRef, "run", "", "Run ID or 1-based position")
	cmd.Flags().StringVar(&week, "week", "", "Any day of the week to check, defaults to the run's week")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func writePreview(cmd *cobra.Command, preview *domain.CascadePreview, asJSON bool) error {
	if preview == nil {
		return fmt.Errorf("run not found in plan")
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	}
	printPreview(cmd.OutOrStdout(), preview)
	return nil
}

func describeRun(r domain.ScheduledRun) string {
	return fmt.Sprintf("%s %.1f km (%s)", r.Type, r.DistanceKm, shortDate(r.ScheduledDate))
}

func shortDate(t time.Time) string {
	return t.Weekday().String()[:3] + " " + schedule.FormatDate(t)
}

func signedKm(km float64) string {
	if km > 0 {
		return fmt.Sprintf("+%.1f km", km)
	}
	return fmt.Sprintf("%.1f km", km)
}

func changeDetail(a domain.AffectedRun) string {
	switch a.Change {
	case domain.ChangeMoved:
		if a.NewDate != nil {
			return "moved to " + shortDate(*a.NewDate)
		}
	case domain.ChangeTypeChanged:
		return "becomes " + string(a.NewType)
	}
	return strings.ReplaceAll(string(a.Change), "_", " ")
}
