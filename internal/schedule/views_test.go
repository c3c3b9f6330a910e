package schedule

import (
	"testing"
	"time"

	"alcyxob/runplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeek(t *testing.T) {
	done := newRun("2027-03-02", 5, domain.RunEasy)
	done.Status = domain.RunCompleted
	skipped := newRun("2027-03-04", 6, domain.RunModerate)
	skipped.Status = domain.RunSkipped
	plan := newPlan(
		done,
		skipped,
		newRun("2027-03-06", 10, domain.RunLong),
		newRun("2027-03-13", 11, domain.RunLong),
	)

	// Any day of the week resolves to its Monday.
	week := BuildWeek(plan, date("2027-03-05"), time.Date(2027, 3, 4, 18, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, week.WeekNumber)
	assert.Equal(t, date("2027-03-01"), week.StartDate)
	assert.Equal(t, date("2027-03-07"), week.EndDate)
	require.Len(t, week.Days, 7)

	assert.Equal(t, 2, week.PlannedRuns)
	assert.Equal(t, 15.0, week.PlannedDistanceKm)
	assert.Equal(t, 1, week.CompletedRuns)
	assert.Equal(t, 5.0, week.CompletedDistanceKm)

	monday := week.Days[0]
	assert.Equal(t, time.Monday, monday.DayOfWeek)
	assert.True(t, monday.IsRestDay)
	assert.Nil(t, monday.Run)
	assert.True(t, monday.IsPast)

	thursday := week.Days[3]
	assert.True(t, thursday.IsToday)
	assert.False(t, thursday.IsPast)
	require.NotNil(t, thursday.Run)
	assert.Equal(t, domain.RunSkipped, thursday.Run.Status)
	assert.True(t, thursday.IsRestDay, "a skipped run leaves the day free")

	saturday := week.Days[5]
	require.NotNil(t, saturday.Run)
	assert.Equal(t, domain.RunLong, saturday.Run.Type)
	assert.False(t, saturday.IsRestDay)
	assert.Equal(t, time.Sunday, week.Days[6].DayOfWeek)
}

func TestBuildWeek_LaterWeekNumber(t *testing.T) {
	plan := samplePlan()

	week := BuildWeek(plan, date("2027-03-08"), date("2027-03-01"))

	assert.Equal(t, 2, week.WeekNumber)
	assert.Equal(t, 11.0, week.PlannedDistanceKm)
	assert.False(t, week.Days[5].IsPast)
}

func TestProgress(t *testing.T) {
	done := newRun("2027-03-02", 5, domain.RunEasy)
	done.Status = domain.RunCompleted
	skipped := newRun("2027-03-04", 6, domain.RunModerate)
	skipped.Status = domain.RunSkipped
	moved := newRun("2027-03-07", 10, domain.RunLong)
	moved.Status = domain.RunMoved
	plan := newPlan(done, skipped, moved, newRun("2027-03-13", 11, domain.RunLong))

	tests := []struct {
		name        string
		today       string
		currentWeek int
		daysToGoal  int
	}{
		{"before start", "2027-02-20", 0, 92},
		{"first day", "2027-03-01", 1, 83},
		{"second week", "2027-03-09", 2, 75},
		{"race day", "2027-05-23", 12, 0},
		{"after race", "2027-06-10", 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(plan, date(tt.today))

			assert.Equal(t, tt.currentWeek, p.CurrentWeek)
			assert.Equal(t, tt.daysToGoal, p.DaysUntilGoal)
			assert.Equal(t, 12, p.TotalWeeks)
			assert.Equal(t, 4, p.TotalRuns)
			assert.Equal(t, 1, p.RunsCompleted)
			assert.Equal(t, 1, p.RunsSkipped)
			assert.Equal(t, 1, p.RunsMoved)
			assert.Equal(t, 5.0, p.DistanceCompleted)
			assert.Equal(t, 26.0, p.DistancePlanned)
		})
	}
}

func TestToday(t *testing.T) {
	done := newRun("2027-03-02", 5, domain.RunEasy)
	done.Status = domain.RunCompleted
	plan := newPlan(
		done,
		newRun("2027-03-04", 6, domain.RunModerate),
		newRun("2027-03-06", 10, domain.RunLong),
	)

	t.Run("rest day shows next run", func(t *testing.T) {
		snap := Today(plan, time.Date(2027, 3, 3, 7, 0, 0, 0, time.UTC))

		assert.Nil(t, snap.TodayRun)
		require.NotNil(t, snap.NextRun)
		assert.Equal(t, date("2027-03-04"), snap.NextRun.ScheduledDate)
		require.NotNil(t, snap.LastRun)
		assert.Equal(t, done.ID, snap.LastRun.ID)
		assert.Equal(t, WeekProgress{Planned: 3, Completed: 1, PlannedKm: 21, CompletedKm: 5}, snap.Week)
	})

	t.Run("run day hides next run", func(t *testing.T) {
		snap := Today(plan, date("2027-03-06"))

		require.NotNil(t, snap.TodayRun)
		assert.Equal(t, domain.RunLong, snap.TodayRun.Type)
		assert.Nil(t, snap.NextRun)
	})

	t.Run("plan finished", func(t *testing.T) {
		snap := Today(plan, date("2027-03-20"))

		assert.Nil(t, snap.TodayRun)
		assert.Nil(t, snap.NextRun)
		assert.Equal(t, WeekProgress{}, snap.Week)
	})
}
