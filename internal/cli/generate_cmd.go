package cli

import (
	"fmt"

	"alcyxob/runplan/internal/schedule"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		longest  float64
		weekly   float64
		runs     int
		target   string
		today    string
		moderate bool
		out      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a half-marathon plan from current fitness",
		RunE: func(cmd *cobra.Command, args []string) error {
			if longest <= 0 || weekly <= 0 {
				return fmt.Errorf("--longest and --weekly must be positive")
			}
			if runs != 3 && runs != 4 {
				return fmt.Errorf("--runs must be 3 or 4, got %d", runs)
			}
			targetDate, err := schedule.ParseDate(target)
			if err != nil {
				return fmt.Errorf("--target must be YYYY-MM-DD: %w", err)
			}
			todayDate := schedule.Day(app.Now())
			if today != "" {
				if todayDate, err = schedule.ParseDate(today); err != nil {
					return fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
				}
			}

			input := schedule.PlanInput{
				LongestRunKm:        longest,
				CurrentWeeklyKm:     weekly,
				RunsPerWeek:         runs,
				TargetDate:          targetDate,
				IncludeModerateRuns: moderate,
				Today:               todayDate,
			}
			generated := schedule.GeneratePlan(input)
			summary := schedule.Summarize(generated)

			if out != "" {
				plan := schedule.NewTrainingPlan(generated, primitive.NilObjectID, input, app.Now().UTC())
				if err := writePlan(out, plan); err != nil {
					return err
				}
				printWarnings(cmd.OutOrStdout(), generated.Warnings)
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d runs over %d weeks to %s\n", summary.TotalRuns, summary.Weeks, out)
				return nil
			}

			printPlan(cmd.OutOrStdout(), generated, summary)
			return nil
		},
	}

	cmd.Flags().Float64Var(&longest, "longest", 0, "Longest recent run in km")
	cmd.Flags().Float64Var(&weekly, "weekly", 0, "Current weekly volume in km")
	cmd.Flags().IntVar(&runs, "runs", 3, "Runs per week (3 or 4)")
	cmd.Flags().StringVar(&target, "target", "", "Race date, YYYY-MM-DD")
	cmd.Flags().StringVar(&today, "today", "", "Plan as of this date instead of the current day")
	cmd.Flags().BoolVar(&moderate, "moderate", false, "Include moderate-effort runs")
	cmd.Flags().StringVar(&out, "out", "", "Write the plan as JSON to this file")
	_ = cmd.MarkFlagRequired("longest")
	_ = cmd.MarkFlagRequired("weekly")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
