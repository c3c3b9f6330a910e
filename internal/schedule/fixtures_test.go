package schedule

import (
	"time"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Week of 2027-03-01 (Monday) .. 2027-03-07 (Sunday) is used by most fixtures.

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newRun(day string, km float64, runType domain.RunType) domain.ScheduledRun {
	return domain.ScheduledRun{
		ID:            primitive.NewObjectID(),
		OriginalDate:  date(day),
		ScheduledDate: date(day),
		DistanceKm:    km,
		Type:          runType,
		WeekNumber:    1,
		Status:        domain.RunScheduled,
	}
}

func newPlan(runs ...domain.ScheduledRun) *domain.TrainingPlan {
	plan := &domain.TrainingPlan{
		ID:         primitive.NewObjectID(),
		StartDate:  date("2027-03-01"),
		TargetDate: date("2027-05-23"),
		TotalWeeks: 12,
		Status:     domain.PlanActive,
	}
	for _, r := range runs {
		r.PlanID = plan.ID
		plan.Runs = append(plan.Runs, r)
	}
	plan.SortRuns()
	return plan
}

// samplePlan is a typical 3-run week followed by the next week's long run.
func samplePlan() *domain.TrainingPlan {
	return newPlan(
		newRun("2027-03-02", 5, domain.RunEasy),
		newRun("2027-03-04", 6, domain.RunModerate),
		newRun("2027-03-06", 10, domain.RunLong),
		newRun("2027-03-13", 11, domain.RunLong),
	)
}

func runOn(plan *domain.TrainingPlan, day string) *domain.ScheduledRun {
	for i := range plan.Runs {
		if SameDay(plan.Runs[i].ScheduledDate, date(day)) {
			return &plan.Runs[i]
		}
	}
	return nil
}
