package api

import (
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/schedule"
	"alcyxob/runplan/internal/service"
)

// Calendar days travel as YYYY-MM-DD strings.

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := schedule.FormatDate(*t)
	return &s
}

type RunResponse struct {
	ID            string              `json:"id"`
	PlanID        string              `json:"planId"`
	OriginalDate  string              `json:"originalDate"`
	ScheduledDate string              `json:"scheduledDate"`
	DistanceKm    float64             `json:"distanceKm"`
	Type          domain.RunType      `json:"type"`
	WeekNumber    int                 `json:"weekNumber"`
	Status        domain.RunStatus    `json:"status"`
	MovedFrom     *string             `json:"movedFrom,omitempty"`
	EffortRating  domain.EffortRating `json:"effortRating,omitempty"`
	Notes         string              `json:"notes,omitempty"`
}

func MapRunToResponse(r *domain.ScheduledRun) *RunResponse {
	if r == nil {
		return nil
	}
	return &RunResponse{
		ID:            r.ID.Hex(),
		PlanID:        r.PlanID.Hex(),
		OriginalDate:  schedule.FormatDate(r.OriginalDate),
		ScheduledDate: schedule.FormatDate(r.ScheduledDate),
		DistanceKm:    r.DistanceKm,
		Type:          r.Type,
		WeekNumber:    r.WeekNumber,
		Status:        r.Status,
		MovedFrom:     formatOptionalDate(r.MovedFrom),
		EffortRating:  r.EffortRating,
		Notes:         r.Notes,
	}
}

func MapRunsToResponse(runs []domain.ScheduledRun) []RunResponse {
	responses := make([]RunResponse, len(runs))
	for i := range runs {
		responses[i] = *MapRunToResponse(&runs[i])
	}
	return responses
}

type PlanResponse struct {
	ID         string              `json:"id"`
	GoalRace   domain.GoalRace     `json:"goalRace"`
	GoalName   string              `json:"goalName,omitempty"`
	StartDate  string              `json:"startDate"`
	TargetDate string              `json:"targetDate"`
	TotalWeeks int                 `json:"totalWeeks"`
	Status     domain.PlanStatus   `json:"status"`
	Runs       []RunResponse       `json:"runs"`
	Summary    PlanSummaryResponse `json:"summary"`
	CreatedAt  time.Time           `json:"createdAt"`
}

type PlanSummaryResponse struct {
	TotalRuns       int     `json:"totalRuns"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	PeakWeekKm      float64 `json:"peakWeekKm"`
	LongestRunKm    float64 `json:"longestRunKm"`
}

// summarizeRuns computes plan totals over non-skipped runs.
func summarizeRuns(runs []domain.ScheduledRun) PlanSummaryResponse {
	var s PlanSummaryResponse
	weekly := map[int]float64{}
	for _, r := range runs {
		if r.Status == domain.RunSkipped {
			continue
		}
		s.TotalRuns++
		s.TotalDistanceKm += r.DistanceKm
		weekly[r.WeekNumber] += r.DistanceKm
		s.LongestRunKm = max(s.LongestRunKm, r.DistanceKm)
	}
	for _, km := range weekly {
		s.PeakWeekKm = max(s.PeakWeekKm, km)
	}
	return s
}

func MapPlanToResponse(p *domain.TrainingPlan) PlanResponse {
	return PlanResponse{
		ID:         p.ID.Hex(),
		GoalRace:   p.GoalRace,
		GoalName:   p.GoalName,
		StartDate:  schedule.FormatDate(p.StartDate),
		TargetDate: schedule.FormatDate(p.TargetDate),
		TotalWeeks: p.TotalWeeks,
		Status:     p.Status,
		Runs:       MapRunsToResponse(p.Runs),
		Summary:    summarizeRuns(p.Runs),
		CreatedAt:  p.CreatedAt,
	}
}

type AffectedRunResponse struct {
	Run     RunResponse       `json:"run"`
	Change  domain.ChangeKind `json:"change"`
	NewDate *string           `json:"newDate,omitempty"`
	NewType domain.RunType    `json:"newType,omitempty"`
}

type PreviewResponse struct {
	TargetRun    RunResponse           `json:"targetRun"`
	Action       domain.CascadeAction  `json:"action"`
	NewDate      *string               `json:"newDate,omitempty"`
	Effect       domain.CascadeEffect  `json:"effect"`
	AffectedRuns []AffectedRunResponse `json:"affectedRuns"`
	Suggestion   string                `json:"suggestion"`
}

func MapPreviewToResponse(p *domain.CascadePreview) PreviewResponse {
	affected := make([]AffectedRunResponse, len(p.AffectedRuns))
	for i, a := range p.AffectedRuns {
		affected[i] = AffectedRunResponse{
			Run:     *MapRunToResponse(&a.Run),
			Change:  a.Change,
			NewDate: formatOptionalDate(a.NewDate),
			NewType: a.NewType,
		}
	}
	effect := p.Effect
	if effect.Summary == nil {
		effect.Summary = []string{}
	}
	return PreviewResponse{
		TargetRun:    *MapRunToResponse(&p.TargetRun),
		Action:       p.Action,
		NewDate:      formatOptionalDate(p.NewDate),
		Effect:       effect,
		AffectedRuns: affected,
		Suggestion:   p.Suggestion,
	}
}

type AdjustmentResponse struct {
	ID             string               `json:"id"`
	Timestamp      time.Time            `json:"timestamp"`
	Type           domain.CascadeAction `json:"type"`
	AffectedRunIDs []string             `json:"affectedRunIds"`
	Reason         string               `json:"reason,omitempty"`
	CascadeEffect  domain.CascadeEffect `json:"cascadeEffect"`
	Suggestion     string               `json:"suggestion,omitempty"`
}

func MapAdjustmentToResponse(a *domain.ScheduleAdjustment) AdjustmentResponse {
	ids := make([]string, len(a.AffectedRunIDs))
	for i, id := range a.AffectedRunIDs {
		ids[i] = id.Hex()
	}
	return AdjustmentResponse{
		ID:             a.ID.Hex(),
		Timestamp:      a.Timestamp,
		Type:           a.Type,
		AffectedRunIDs: ids,
		Reason:         a.Reason,
		CascadeEffect:  a.CascadeEffect,
		Suggestion:     a.Suggestion,
	}
}

func MapAdjustmentsToResponse(adjustments []domain.ScheduleAdjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = MapAdjustmentToResponse(&adjustments[i])
	}
	return responses
}

// AppliedResponse is returned after a move or skip is written back.
type AppliedResponse struct {
	Adjustment AdjustmentResponse `json:"adjustment"`
	Changed    []RunResponse      `json:"changedRuns"`
}

func MapAppliedToResponse(r *service.AdjustmentResult) AppliedResponse {
	changed := make([]RunResponse, 0, len(r.Adjustment.AffectedRunIDs))
	for _, id := range r.Adjustment.AffectedRunIDs {
		if run := r.Plan.FindRun(id); run != nil {
			changed = append(changed, *MapRunToResponse(run))
		}
	}
	return AppliedResponse{
		Adjustment: MapAdjustmentToResponse(r.Adjustment),
		Changed:    changed,
	}
}

type DayResponse struct {
	Date      string       `json:"date"`
	DayOfWeek int          `json:"dayOfWeek"` // 0 = Sunday
	Run       *RunResponse `json:"run,omitempty"`
	IsRestDay bool         `json:"isRestDay"`
	IsPast    bool         `json:"isPast"`
	IsToday   bool         `json:"isToday"`
}

type WeekResponse struct {
	WeekNumber          int           `json:"weekNumber"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate"`
	Days                []DayResponse `json:"days"`
	PlannedDistanceKm   float64       `json:"plannedDistanceKm"`
	CompletedDistanceKm float64       `json:"completedDistanceKm"`
	PlannedRuns         int           `json:"plannedRuns"`
	CompletedRuns       int           `json:"completedRuns"`
}

func MapWeekToResponse(w *schedule.ScheduleWeek) WeekResponse {
	days := make([]DayResponse, len(w.Days))
	for i, d := range w.Days {
		days[i] = DayResponse{
			Date:      schedule.FormatDate(d.Date),
			DayOfWeek: int(d.DayOfWeek),
			Run:       MapRunToResponse(d.Run),
			IsRestDay: d.IsRestDay,
			IsPast:    d.IsPast,
			IsToday:   d.IsToday,
		}
	}
	return WeekResponse{
		WeekNumber:          w.WeekNumber,
		StartDate:           schedule.FormatDate(w.StartDate),
		EndDate:             schedule.FormatDate(w.EndDate),
		Days:                days,
		PlannedDistanceKm:   w.PlannedDistanceKm,
		CompletedDistanceKm: w.CompletedDistanceKm,
		PlannedRuns:         w.PlannedRuns,
		CompletedRuns:       w.CompletedRuns,
	}
}

type TodayResponse struct {
	UserName     string                `json:"userName"`
	Date         string                `json:"date"`
	TodayRun     *RunResponse          `json:"todayRun"`
	NextRun      *RunResponse          `json:"nextRun"`
	LastRun      *RunResponse          `json:"lastRun"`
	WeekProgress schedule.WeekProgress `json:"weekProgress"`
	Progress     schedule.PlanProgress `json:"progress"`
}

func MapTodayToResponse(v *service.TodayView) TodayResponse {
	return TodayResponse{
		UserName:     v.UserName,
		Date:         schedule.FormatDate(v.Date),
		TodayRun:     MapRunToResponse(v.Snapshot.TodayRun),
		NextRun:      MapRunToResponse(v.Snapshot.NextRun),
		LastRun:      MapRunToResponse(v.Snapshot.LastRun),
		WeekProgress: v.Snapshot.Week,
		Progress:     v.Progress,
	}
}

type RouteResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Waypoints      []domain.Coordinates `json:"waypoints"`
	Path           []domain.Coordinates `json:"path"`
	DistanceKm     float64              `json:"distanceKm"`
	ElevationGainM float64              `json:"elevationGainM"`
	Shape          domain.RouteShape    `json:"shape"`
	Lighting       domain.LightingScore `json:"lighting"`
	Exported       bool                 `json:"exported"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func MapRouteToResponse(r *domain.RunRoute) RouteResponse {
	return RouteResponse{
		ID:             r.ID.Hex(),
		Name:           r.Name,
		Waypoints:      r.Waypoints,
		Path:           r.Path,
		DistanceKm:     r.DistanceKm,
		ElevationGainM: r.ElevationGainM,
		Shape:          r.Shape,
		Lighting:       r.Lighting,
		Exported:       r.GPXObjectKey != "",
		CreatedAt:      r.CreatedAt,
	}
}

func MapRoutesToResponse(routes []domain.RunRoute) []RouteResponse {
	responses := make([]RouteResponse, len(routes))
	for i := range routes {
		responses[i] = MapRouteToResponse(&routes[i])
	}
	return responses
}
