package schedule

import (
	"time"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scheduling rules the cascade engine protects:
//  1. Hard runs (long, moderate) are never on consecutive days.
//  2. Recovery runs can be compressed but not eliminated.
//  3. Weekly volume stays within 10% of planned.
//  4. The long run stays on the weekend when possible.
//  5. At least one rest day per week remains.
//
// Every function here is pure. The plan passed in is never modified.

func weekRunsOf(runs []domain.ScheduledRun, weekStart time.Time) []domain.ScheduledRun {
	var week []domain.ScheduledRun
	for _, r := range runs {
		if InWeek(r.ScheduledDate, weekStart) {
			week = append(week, r)
		}
	}
	return week
}

func activeRuns(runs []domain.ScheduledRun) []domain.ScheduledRun {
	active := make([]domain.ScheduledRun, 0, len(runs))
	for _, r := range runs {
		if r.Status != domain.RunSkipped {
			active = append(active, r)
		}
	}
	return active
}

// weeklyDistance sums non-skipped distance.
func weeklyDistance(runs []domain.ScheduledRun) float64 {
	var total float64
	for _, r := range runs {
		if r.Status != domain.RunSkipped {
			total += r.DistanceKm
		}
	}
	return total
}

func percentChange(change, before float64) float64 {
	if before <= 0 {
		return 0
	}
	return change / before * 100
}

// CalculateSkipEffect previews skipping a run. It returns nil if the run is not in the plan.
func CalculateSkipEffect(plan *domain.TrainingPlan, runID primitive.ObjectID) *domain.CascadePreview {
	target := plan.FindRun(runID)
	if target == nil {
		return nil
	}

	weekStart := StartOfWeek(target.ScheduledDate)
	before := weeklyDistance(weekRunsOf(plan.Runs, weekStart))
	after := before - target.DistanceKm
	change := after - before

	// Skipping frees a day; it never costs one.
	const recoveryDaysLost = 0

	effect := domain.CascadeEffect{
		RunsAffected:         0,
		WeeklyDistanceChange: change,
		RecoveryDaysLost:     recoveryDaysLost,
		RiskLevel: AssessRisk(RiskInput{
			DistanceChangePercent: percentChange(change, before),
			RecoveryDaysLost:      recoveryDaysLost,
		}),
		Summary: summarize(target, domain.ActionSkip, nil, 0, change, recoveryDaysLost),
	}

	return &domain.CascadePreview{
		TargetRun:    *target,
		Action:       domain.ActionSkip,
		Effect:       effect,
		AffectedRuns: []domain.AffectedRun{},
		Suggestion:   suggest(effect, target, domain.ActionSkip),
	}
}

// CalculateMoveEffect previews moving a run to newDate. It returns nil if the run is not in the plan.
func CalculateMoveEffect(plan *domain.TrainingPlan, runID primitive.ObjectID, newDate time.Time) *domain.CascadePreview {
	target := plan.FindRun(runID)
	if target == nil {
		return nil
	}
	newDate = Day(newDate)
	active := activeRuns(plan.Runs)

	conflicts := findConflicts(active, target, newDate)
	affected := make([]domain.AffectedRun, 0, len(conflicts))
	for _, c := range conflicts {
		if SameDay(c.ScheduledDate, newDate) {
			// Displaced run: find it another day, or soften it in place.
			if alt, ok := findAlternateDate(active, &c, target, newDate); ok {
				affected = append(affected, domain.AffectedRun{Run: c, Change: domain.ChangeMoved, NewDate: &alt})
				continue
			}
		}
		affected = append(affected, domain.AffectedRun{Run: c, Change: domain.ChangeTypeChanged, NewType: domain.RunRecovery})
	}

	weekStart := StartOfWeek(target.ScheduledDate)
	before := weeklyDistance(weekRunsOf(plan.Runs, weekStart))
	after := before
	for _, a := range affected {
		if a.Change == domain.ChangeRemoved {
			after -= a.Run.DistanceKm
		}
	}
	change := after - before

	recoveryDaysLost := 0
	if InWeek(newDate, weekStart) && !occupied(active, newDate, target.ID) {
		recoveryDaysLost = 1
	}

	consecutiveHard := target.IsHard() && hasAdjacentHardRun(active, newDate, target.ID)

	effect := domain.CascadeEffect{
		RunsAffected:         len(affected),
		WeeklyDistanceChange: change,
		RecoveryDaysLost:     recoveryDaysLost,
		RiskLevel: AssessRisk(RiskInput{
			RunsAffected:          len(affected),
			DistanceChangePercent: percentChange(change, before),
			RecoveryDaysLost:      recoveryDaysLost,
			ConsecutiveHardDays:   consecutiveHard,
		}),
		Summary: summarize(target, domain.ActionMove, &newDate, len(conflicts), change, recoveryDaysLost),
	}

	return &domain.CascadePreview{
		TargetRun:    *target,
		Action:       domain.ActionMove,
		NewDate:      &newDate,
		Effect:       effect,
		AffectedRuns: affected,
		Suggestion:   suggest(effect, target, domain.ActionMove),
	}
}

// ValidDropDates lists the days of the week starting at weekStart where the run could be
// dropped without a high risk edit. The run's current date is never included.
func ValidDropDates(plan *domain.TrainingPlan, runID primitive.ObjectID, weekStart time.Time) []time.Time {
	target := plan.FindRun(runID)
	if target == nil {
		return []time.Time{}
	}

	valid := []time.Time{}
	start := Day(weekStart)
	for i := 0; i < 7; i++ {
		candidate := start.AddDate(0, 0, i)
		if SameDay(candidate, target.ScheduledDate) {
			continue
		}
		preview := CalculateMoveEffect(plan, runID, candidate)
		if preview != nil && preview.Effect.RiskLevel != domain.RiskHigh {
			valid = append(valid, candidate)
		}
	}
	return valid
}
