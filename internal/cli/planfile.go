package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func readPlan(path string) (*domain.TrainingPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	var plan domain.TrainingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", path, err)
	}
	plan.SortRuns()
	return &plan, nil
}

func writePlan(path string, plan *domain.TrainingPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

// resolveRun accepts either a run ID or a 1-based position in date order.
func resolveRun(plan *domain.TrainingPlan, ref string) (*domain.ScheduledRun, error) {
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		if r := plan.FindRun(id); r != nil {
			return r, nil
		}
		return nil, fmt.Errorf("run %s not found in plan", ref)
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return nil, fmt.Errorf("run %q is neither an ID nor a position", ref)
	}
	if n < 1 || n > len(plan.Runs) {
		return nil, fmt.Errorf("run position %d out of range 1..%d", n, len(plan.Runs))
	}
	return &plan.Runs[n-1], nil
}
