package schedule

import (
	"math"
	"time"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan shape constants. Distances are in km.
const (
	MinPlanWeeks   = 8
	MaxPlanWeeks   = 16
	TaperWeeks     = 2
	DeloadInterval = 4

	PeakLongRunKm      = 16.0
	PeakWeeklyVolumeKm = 40.0
	MinRunKm           = 3.0

	deloadLongRunFactor = 0.75
	deloadVolumeFactor  = 0.80
)

// PlanInput is the runner's current fitness and goal.
// Callers must reject non-positive distances and runsPerWeek outside {3,4}
// before calling GeneratePlan; it does not validate.
type PlanInput struct {
	LongestRunKm        float64
	CurrentWeeklyKm     float64
	RunsPerWeek         int
	TargetDate          time.Time
	IncludeModerateRuns bool

	// Today anchors the timeline. Zero means time.Now().
	Today time.Time
}

// GeneratedRun is one workout of a freshly generated plan.
type GeneratedRun struct {
	OriginalDate  time.Time      `json:"originalDate"`
	ScheduledDate time.Time      `json:"scheduledDate"`
	DistanceKm    float64        `json:"distanceKm"`
	Type          domain.RunType `json:"type"`
	WeekNumber    int            `json:"weekNumber"`
}

// GeneratedPlan is the output of GeneratePlan. Warnings are advisory and never block generation.
type GeneratedPlan struct {
	StartDate  time.Time      `json:"startDate"`
	TargetDate time.Time      `json:"targetDate"`
	TotalWeeks int            `json:"totalWeeks"`
	Runs       []GeneratedRun `json:"runs"`
	Warnings   []string       `json:"warnings"`
}

// weekPhase describes where a week sits in the periodization.
type weekPhase struct {
	taper  bool
	deload bool
}

// GeneratePlan builds a periodized plan: linear build from the runner's starting
// point to fixed peaks, a deload every 4th week and a 2 week taper.
func GeneratePlan(input PlanInput) GeneratedPlan {
	warnings := []string{}

	today := input.Today
	if today.IsZero() {
		today = time.Now()
	}
	targetDate := Day(input.TargetDate)
	weeksUntilRace := DaysBetween(today, targetDate) / 7

	if weeksUntilRace < MinPlanWeeks {
		warnings = append(warnings, "Less than 8 weeks to race. Plan will be compressed.")
	}
	if weeksUntilRace > 20 {
		warnings = append(warnings, "More than 20 weeks to race. Consider starting closer to race date.")
	}

	totalWeeks := max(MinPlanWeeks, min(weeksUntilRace, MaxPlanWeeks))
	startDate := StartOfWeek(targetDate.AddDate(0, 0, -totalWeeks*7))

	startingLongRun := startingLongRunKm(input.LongestRunKm)
	startingVolume := startingWeeklyVolumeKm(input.CurrentWeeklyKm)

	runs := make([]GeneratedRun, 0, totalWeeks*input.RunsPerWeek)
	for week := 1; week <= totalWeeks; week++ {
		weekStart := startDate.AddDate(0, 0, (week-1)*7)
		phase := phaseOf(week, totalWeeks)
		longRun, volume := weekTargets(week, totalWeeks, startingLongRun, startingVolume)

		runs = append(runs, weekRuns(week, weekStart, longRun, volume, input.RunsPerWeek, phase, input.IncludeModerateRuns)...)
	}

	if input.LongestRunKm < 5 {
		warnings = append(warnings, "Your longest run is under 5km. Consider building a base before starting a half marathon plan.")
	}
	if input.CurrentWeeklyKm < 10 {
		warnings = append(warnings, "Your weekly volume is under 10km. The plan will start conservatively.")
	}

	return GeneratedPlan{
		StartDate:  startDate,
		TargetDate: targetDate,
		TotalWeeks: totalWeeks,
		Runs:       runs,
		Warnings:   warnings,
	}
}

// startingLongRunKm starts at ~75% of the current longest run, clamped to 5-10 km.
func startingLongRunKm(longestRunKm float64) float64 {
	return clamp(roundHalf(longestRunKm*0.75), 5, 10)
}

// startingWeeklyVolumeKm starts slightly below current volume, clamped to 12-25 km.
func startingWeeklyVolumeKm(currentWeeklyKm float64) float64 {
	return clamp(roundHalf(currentWeeklyKm*0.9), 12, 25)
}

func phaseOf(week, totalWeeks int) weekPhase {
	taper := totalWeeks-week < TaperWeeks
	return weekPhase{
		taper:  taper,
		deload: !taper && week%DeloadInterval == 0,
	}
}

// weekTargets returns the interpolated long run and weekly volume for a week,
// before any deload reduction.
func weekTargets(week, totalWeeks int, startLongRun, startVolume float64) (longRun, volume float64) {
	weeksFromEnd := totalWeeks - week
	if weeksFromEnd < TaperWeeks {
		taperProgress := float64(TaperWeeks-weeksFromEnd) / TaperWeeks
		longRun = PeakLongRunKm * (0.75 - taperProgress*0.25)
		volume = PeakWeeklyVolumeKm * (0.70 - taperProgress*0.20)
		return longRun, volume
	}

	buildWeeks := totalWeeks - TaperWeeks
	progress := math.Min(1, float64(week-1)/float64(buildWeeks-1))
	longRun = startLongRun + (PeakLongRunKm-startLongRun)*progress
	volume = startVolume + (PeakWeeklyVolumeKm-startVolume)*progress
	return longRun, volume
}

// runDays are day offsets from Monday. The last slot always holds the long run.
func runDays(runsPerWeek int) []int {
	if runsPerWeek == 3 {
		return []int{1, 3, 5} // Tue, Thu, Sat
	}
	return []int{0, 2, 4, 6} // Mon, Wed, Fri, Sun
}

func weekRuns(week int, weekStart time.Time, longRun, volume float64, runsPerWeek int, phase weekPhase, includeModerate bool) []GeneratedRun {
	if phase.deload {
		longRun = roundHalf(longRun * deloadLongRunFactor)
		volume = roundHalf(volume * deloadVolumeFactor)
	}

	days := runDays(runsPerWeek)
	longIdx := len(days) - 1
	avgOther := roundHalf((volume - longRun) / float64(longIdx))
	regular := !phase.deload && !phase.taper

	runs := make([]GeneratedRun, 0, len(days))
	for i, offset := range days {
		date := weekStart.AddDate(0, 0, offset)

		var runType domain.RunType
		var distance float64
		switch {
		case i == longIdx:
			runType, distance = domain.RunLong, longRun
		case i == 0 && runsPerWeek == 4 && regular:
			runType, distance = domain.RunRecovery, math.Max(MinRunKm, avgOther-1)
		case i == 1 && includeModerate && regular:
			runType, distance = domain.RunModerate, avgOther
		default:
			runType, distance = domain.RunEasy, avgOther
		}

		runs = append(runs, GeneratedRun{
			OriginalDate:  date,
			ScheduledDate: date,
			DistanceKm:    math.Max(MinRunKm, roundHalf(distance)),
			Type:          runType,
			WeekNumber:    week,
		})
	}
	return runs
}

// PlanSummary is an at-a-glance description of a generated plan.
type PlanSummary struct {
	Weeks           int     `json:"weeks"`
	TotalRuns       int     `json:"totalRuns"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	PeakWeekKm      float64 `json:"peakWeekKm"`
	LongestRunKm    float64 `json:"longestRunKm"`
}

// Summarize totals a generated plan. Distances are rounded to whole km except the longest run.
func Summarize(plan GeneratedPlan) PlanSummary {
	weekly := make(map[int]float64)
	var total, longest float64
	for _, r := range plan.Runs {
		weekly[r.WeekNumber] += r.DistanceKm
		total += r.DistanceKm
		longest = math.Max(longest, r.DistanceKm)
	}

	var peak float64
	for _, km := range weekly {
		peak = math.Max(peak, km)
	}

	return PlanSummary{
		Weeks:           plan.TotalWeeks,
		TotalRuns:       len(plan.Runs),
		TotalDistanceKm: math.Round(total),
		PeakWeekKm:      math.Round(peak),
		LongestRunKm:    longest,
	}
}

// NewTrainingPlan materializes a generated plan as an active half marathon plan with
// freshly assigned IDs. Nothing is persisted.
func NewTrainingPlan(gen GeneratedPlan, userID primitive.ObjectID, input PlanInput, now time.Time) *domain.TrainingPlan {
	plan := &domain.TrainingPlan{
		ID:                   primitive.NewObjectID(),
		UserID:               userID,
		GoalRace:             domain.GoalHalfMarathon,
		TargetDate:           gen.TargetDate,
		StartDate:            gen.StartDate,
		TotalWeeks:           gen.TotalWeeks,
		Status:               domain.PlanActive,
		StartingLongestRunKm: input.LongestRunKm,
		StartingWeeklyKm:     input.CurrentWeeklyKm,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	plan.Runs = make([]domain.ScheduledRun, len(gen.Runs))
	for i, r := range gen.Runs {
		plan.Runs[i] = domain.ScheduledRun{
			ID:            primitive.NewObjectID(),
			PlanID:        plan.ID,
			OriginalDate:  r.OriginalDate,
			ScheduledDate: r.ScheduledDate,
			DistanceKm:    r.DistanceKm,
			Type:          r.Type,
			WeekNumber:    r.WeekNumber,
			Status:        domain.RunScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return plan
}
