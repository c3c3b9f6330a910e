package schedule

import (
	"time"

	"alcyxob/runplan/internal/domain"
)

// AppliedMutation is the result of applying an accepted preview.
type AppliedMutation struct {
	Plan    *domain.TrainingPlan  // New plan state; the input plan is untouched
	Changed []domain.ScheduledRun // Runs whose stored record must be written back, target first
}

// ApplyPreview applies an accepted preview to a copy of plan. It returns nil when the
// preview's target run is no longer part of the plan.
func ApplyPreview(plan *domain.TrainingPlan, preview *domain.CascadePreview, now time.Time) *AppliedMutation {
	next := plan.Clone()
	target := next.FindRun(preview.TargetRun.ID)
	if target == nil {
		return nil
	}

	switch preview.Action {
	case domain.ActionSkip:
		target.Status = domain.RunSkipped
	case domain.ActionMove:
		if preview.NewDate == nil {
			return nil
		}
		moveRun(target, *preview.NewDate)
	}
	target.UpdatedAt = now
	touched := []*domain.ScheduledRun{target}

	for _, a := range preview.AffectedRuns {
		run := next.FindRun(a.Run.ID)
		if run == nil {
			continue
		}
		switch a.Change {
		case domain.ChangeMoved:
			if a.NewDate != nil {
				moveRun(run, *a.NewDate)
			}
		case domain.ChangeTypeChanged:
			run.Type = a.NewType
		case domain.ChangeRemoved:
			run.Status = domain.RunSkipped
		}
		run.UpdatedAt = now
		touched = append(touched, run)
	}

	changed := make([]domain.ScheduledRun, len(touched))
	for i, r := range touched {
		changed[i] = *r
	}

	next.UpdatedAt = now
	next.SortRuns()
	return &AppliedMutation{Plan: next, Changed: changed}
}

// moveRun reschedules r. MovedFrom keeps the date held before the very first move.
// Status becomes moved while the run sits off its original date, unless it is
// already completed or skipped.
func moveRun(r *domain.ScheduledRun, to time.Time) {
	to = Day(to)
	if r.MovedFrom == nil && !SameDay(r.ScheduledDate, to) {
		from := r.ScheduledDate
		r.MovedFrom = &from
	}
	r.ScheduledDate = to

	if r.Status == domain.RunCompleted || r.Status == domain.RunSkipped {
		return
	}
	if SameDay(to, r.OriginalDate) {
		r.Status = domain.RunScheduled
	} else {
		r.Status = domain.RunMoved
	}
}
