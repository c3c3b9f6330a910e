package schedule

import (
	"time"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// findConflicts returns the active runs that clash with target landing on newDate:
// either they already hold newDate, or both are hard and a day apart.
func findConflicts(active []domain.ScheduledRun, target *domain.ScheduledRun, newDate time.Time) []domain.ScheduledRun {
	var conflicts []domain.ScheduledRun
	for _, r := range active {
		if r.ID == target.ID {
			continue
		}
		if SameDay(r.ScheduledDate, newDate) {
			conflicts = append(conflicts, r)
			continue
		}
		if target.IsHard() && r.IsHard() && areConsecutive(newDate, r.ScheduledDate) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// occupied reports whether any run other than exclude is on day.
func occupied(active []domain.ScheduledRun, day time.Time, exclude ...primitive.ObjectID) bool {
	for _, r := range active {
		if isExcluded(r.ID, exclude) {
			continue
		}
		if SameDay(r.ScheduledDate, day) {
			return true
		}
	}
	return false
}

func hasAdjacentHardRun(active []domain.ScheduledRun, day time.Time, exclude ...primitive.ObjectID) bool {
	for _, r := range active {
		if isExcluded(r.ID, exclude) {
			continue
		}
		if r.IsHard() && areConsecutive(day, r.ScheduledDate) {
			return true
		}
	}
	return false
}

func isExcluded(id primitive.ObjectID, exclude []primitive.ObjectID) bool {
	for _, e := range exclude {
		if id == e {
			return true
		}
	}
	return false
}

// findAlternateDate searches the displaced run's own week for an open day, skipping
// the target's new date. Long runs prefer Saturday or Sunday and only fall back to a
// weekday when no weekend slot is open. Hard runs avoid days next to other hard runs,
// except in the long-run weekday fallback.
func findAlternateDate(active []domain.ScheduledRun, displaced, target *domain.ScheduledRun, targetNewDate time.Time) (time.Time, bool) {
	weekStart := StartOfWeek(displaced.ScheduledDate)
	isLong := displaced.Type == domain.RunLong

	open := func(day time.Time) bool {
		return !SameDay(day, targetNewDate) && !occupied(active, day, displaced.ID, target.ID)
	}

	for i := 0; i < 7; i++ {
		candidate := weekStart.AddDate(0, 0, i)
		if !open(candidate) {
			continue
		}
		// The target is left out of this scan, so a hard run may still land next to its new date.
		if displaced.IsHard() && hasAdjacentHardRun(active, candidate, displaced.ID, target.ID) {
			continue
		}
		if isLong && !isWeekend(candidate) {
			continue
		}
		return candidate, true
	}

	if isLong {
		for i := 0; i < 7; i++ {
			candidate := weekStart.AddDate(0, 0, i)
			if open(candidate) {
				return candidate, true
			}
		}
	}

	return time.Time{}, false
}
