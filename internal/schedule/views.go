package schedule

import (
	"time"

	"alcyxob/runplan/internal/domain"
)

// ScheduleDay is one calendar day of a week view.
type ScheduleDay struct {
	Date      time.Time            `json:"date"`
	DayOfWeek time.Weekday         `json:"dayOfWeek"` // 0 = Sunday
	Run       *domain.ScheduledRun `json:"run,omitempty"`
	IsRestDay bool                 `json:"isRestDay"`
	IsPast    bool                 `json:"isPast"`
	IsToday   bool                 `json:"isToday"`
}

// ScheduleWeek is a Monday-to-Sunday view of a plan.
type ScheduleWeek struct {
	WeekNumber          int           `json:"weekNumber"`
	StartDate           time.Time     `json:"startDate"`
	EndDate             time.Time     `json:"endDate"`
	Days                []ScheduleDay `json:"days"`
	PlannedDistanceKm   float64       `json:"plannedDistanceKm"`
	CompletedDistanceKm float64       `json:"completedDistanceKm"`
	PlannedRuns         int           `json:"plannedRuns"`
	CompletedRuns       int           `json:"completedRuns"`
}

// BuildWeek lays out the week starting on the Monday of weekStart.
// A day shows its first non-skipped run, or a skipped one if that is all it has.
func BuildWeek(plan *domain.TrainingPlan, weekStart, today time.Time) ScheduleWeek {
	start := StartOfWeek(weekStart)
	today = Day(today)

	week := ScheduleWeek{
		WeekNumber: DaysBetween(plan.StartDate, start)/7 + 1,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 6),
		Days:       make([]ScheduleDay, 7),
	}

	runs := weekRunsOf(plan.Runs, start)
	for _, r := range runs {
		if r.Status == domain.RunSkipped {
			continue
		}
		week.PlannedRuns++
		week.PlannedDistanceKm += r.DistanceKm
		if r.Status == domain.RunCompleted {
			week.CompletedRuns++
			week.CompletedDistanceKm += r.DistanceKm
		}
	}

	for i := range week.Days {
		date := start.AddDate(0, 0, i)
		day := ScheduleDay{
			Date:      date,
			DayOfWeek: date.Weekday(),
			IsRestDay: true,
			IsPast:    date.Before(today),
			IsToday:   date.Equal(today),
		}
		for j := range runs {
			r := runs[j]
			if !SameDay(r.ScheduledDate, date) {
				continue
			}
			if r.Status != domain.RunSkipped {
				day.Run = &r
				day.IsRestDay = false
				break
			}
			if day.Run == nil {
				day.Run = &r
			}
		}
		week.Days[i] = day
	}
	return week
}

// PlanProgress summarizes how far along a plan is.
type PlanProgress struct {
	CurrentWeek       int     `json:"currentWeek"` // 0 before the plan starts
	TotalWeeks        int     `json:"totalWeeks"`
	DaysUntilGoal     int     `json:"daysUntilGoal"`
	RunsCompleted     int     `json:"runsCompleted"`
	TotalRuns         int     `json:"totalRuns"`
	DistanceCompleted float64 `json:"distanceCompleted"`
	DistancePlanned   float64 `json:"distancePlanned"`
	RunsSkipped       int     `json:"runsSkipped"`
	RunsMoved         int     `json:"runsMoved"`
}

// Progress counts completed, skipped and moved runs and where today falls in the plan.
func Progress(plan *domain.TrainingPlan, today time.Time) PlanProgress {
	p := PlanProgress{
		TotalWeeks:    plan.TotalWeeks,
		DaysUntilGoal: max(0, DaysBetween(today, plan.TargetDate)),
		TotalRuns:     len(plan.Runs),
	}

	if elapsed := DaysBetween(plan.StartDate, today); elapsed >= 0 {
		p.CurrentWeek = min(elapsed/7+1, plan.TotalWeeks)
	}

	for _, r := range plan.Runs {
		switch r.Status {
		case domain.RunCompleted:
			p.RunsCompleted++
			p.DistanceCompleted += r.DistanceKm
		case domain.RunSkipped:
			p.RunsSkipped++
		case domain.RunMoved:
			p.RunsMoved++
		}
		if r.Status != domain.RunSkipped {
			p.DistancePlanned += r.DistanceKm
		}
	}
	return p
}

// WeekProgress counts this week's planned and completed work.
type WeekProgress struct {
	Planned     int     `json:"planned"`
	Completed   int     `json:"completed"`
	PlannedKm   float64 `json:"plannedKm"`
	CompletedKm float64 `json:"completedKm"`
}

// TodaySnapshot backs the home screen.
type TodaySnapshot struct {
	TodayRun *domain.ScheduledRun `json:"todayRun"`
	NextRun  *domain.ScheduledRun `json:"nextRun"` // Only when there is no run today
	LastRun  *domain.ScheduledRun `json:"lastRun"` // Most recent completed run
	Week     WeekProgress         `json:"weekProgress"`
}

// Today builds the snapshot for the given day. Runs must be ordered by scheduled date.
func Today(plan *domain.TrainingPlan, today time.Time) TodaySnapshot {
	today = Day(today)
	var snap TodaySnapshot

	for i := range plan.Runs {
		r := plan.Runs[i]
		if r.Status == domain.RunSkipped {
			continue
		}
		switch {
		case SameDay(r.ScheduledDate, today) && snap.TodayRun == nil:
			snap.TodayRun = &r
		case r.ScheduledDate.After(today) && r.Status != domain.RunCompleted && snap.NextRun == nil:
			snap.NextRun = &r
		}
		if r.Status == domain.RunCompleted {
			snap.LastRun = &r
		}
	}
	if snap.TodayRun != nil {
		snap.NextRun = nil
	}

	for _, r := range weekRunsOf(plan.Runs, StartOfWeek(today)) {
		if r.Status == domain.RunSkipped {
			continue
		}
		snap.Week.Planned++
		snap.Week.PlannedKm += r.DistanceKm
		if r.Status == domain.RunCompleted {
			snap.Week.Completed++
			snap.Week.CompletedKm += r.DistanceKm
		}
	}
	return snap
}
