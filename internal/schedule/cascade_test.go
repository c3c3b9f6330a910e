package schedule

import (
	"testing"
	"time"

	"alcyxob/runplan/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCalculateSkipEffect_OnlyRunOfWeek(t *testing.T) {
	plan := newPlan(
		newRun("2027-03-02", 5, domain.RunEasy),
		newRun("2027-03-09", 6, domain.RunEasy),
	)
	target := runOn(plan, "2027-03-02")

	preview := CalculateSkipEffect(plan, target.ID)

	require.NotNil(t, preview)
	assert.Equal(t, domain.ActionSkip, preview.Action)
	assert.Nil(t, preview.NewDate)
	assert.Empty(t, preview.AffectedRuns)
	assert.Equal(t, 0, preview.Effect.RecoveryDaysLost)
	assert.Equal(t, -5.0, preview.Effect.WeeklyDistanceChange)
	assert.Equal(t, domain.RiskHigh, preview.Effect.RiskLevel) // whole week's volume gone
	assert.Equal(t, []string{
		"5km easy run will be removed from this week",
		"Weekly distance decreases by 5.0km",
	}, preview.Effect.Summary)
	assert.Equal(t, "This is manageable, but consider taking it easy. Your goal date hasn't changed.", preview.Suggestion)
}

func TestCalculateSkipEffect_LongRunSuggestsTopUp(t *testing.T) {
	plan := samplePlan()
	target := runOn(plan, "2027-03-06")

	preview := CalculateSkipEffect(plan, target.ID)

	require.NotNil(t, preview)
	assert.Equal(t, -10.0, preview.Effect.WeeklyDistanceChange)
	assert.Contains(t, preview.Suggestion, "You could add distance to another run this week")
}

func TestCalculateSkipEffect_IgnoresAlreadySkippedRuns(t *testing.T) {
	skipped := newRun("2027-03-01", 20, domain.RunEasy)
	skipped.Status = domain.RunSkipped
	plan := newPlan(
		skipped,
		newRun("2027-03-02", 4, domain.RunEasy),
		newRun("2027-03-03", 4, domain.RunEasy),
		newRun("2027-03-04", 4, domain.RunEasy),
		newRun("2027-03-05", 4, domain.RunEasy),
		newRun("2027-03-06", 4, domain.RunEasy),
		newRun("2027-03-07", 20, domain.RunLong),
	)

	// 4 of 40 km is exactly 10%.
	preview := CalculateSkipEffect(plan, runOn(plan, "2027-03-02").ID)

	require.NotNil(t, preview)
	assert.Equal(t, -4.0, preview.Effect.WeeklyDistanceChange)
	assert.Equal(t, domain.RiskLow, preview.Effect.RiskLevel)
}

func TestCalculateEffects_UnknownRun(t *testing.T) {
	plan := samplePlan()
	missing := primitive.NewObjectID()

	assert.Nil(t, CalculateSkipEffect(plan, missing))
	assert.Nil(t, CalculateMoveEffect(plan, missing, date("2027-03-03")))
	assert.Empty(t, ValidDropDates(plan, missing, date("2027-03-01")))
}

func TestCalculateMoveEffect_RecoveryOntoLongRunDay(t *testing.T) {
	plan := newPlan(
		newRun("2027-03-02", 3, domain.RunRecovery),
		newRun("2027-03-06", 8, domain.RunLong),
	)
	target := runOn(plan, "2027-03-02")
	long := runOn(plan, "2027-03-06")

	preview := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))

	require.NotNil(t, preview)
	require.Len(t, preview.AffectedRuns, 1)
	affected := preview.AffectedRuns[0]
	assert.Equal(t, long.ID, affected.Run.ID)
	assert.Equal(t, domain.ChangeMoved, affected.Change)
	require.NotNil(t, affected.NewDate)
	assert.Equal(t, date("2027-03-07"), *affected.NewDate) // Sunday keeps it on the weekend

	assert.Equal(t, 1, preview.Effect.RunsAffected)
	assert.Equal(t, 0.0, preview.Effect.WeeklyDistanceChange)
	assert.Equal(t, 0, preview.Effect.RecoveryDaysLost)
	assert.Equal(t, domain.RiskLow, preview.Effect.RiskLevel)
	assert.Equal(t, []string{
		"3km recovery run moves to Saturday",
		"1 other run will adjust",
	}, preview.Effect.Summary)
	assert.Equal(t, "This change fits well with your schedule. Your goal date hasn't changed.", preview.Suggestion)
}

func TestCalculateMoveEffect_LongOntoLong(t *testing.T) {
	t.Run("weekend slot free", func(t *testing.T) {
		plan := samplePlan()
		target := runOn(plan, "2027-03-13")

		preview := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))

		require.NotNil(t, preview)
		require.Len(t, preview.AffectedRuns, 1)
		assert.Equal(t, domain.ChangeMoved, preview.AffectedRuns[0].Change)
		assert.Equal(t, date("2027-03-07"), *preview.AffectedRuns[0].NewDate)
		assert.Equal(t, 0, preview.Effect.RecoveryDaysLost) // new date is in another week
	})

	t.Run("weekend taken falls back to first open weekday", func(t *testing.T) {
		plan := newPlan(
			newRun("2027-03-02", 5, domain.RunEasy),
			newRun("2027-03-06", 10, domain.RunLong),
			newRun("2027-03-07", 4, domain.RunEasy),
			newRun("2027-03-13", 11, domain.RunLong),
		)
		target := runOn(plan, "2027-03-13")

		preview := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))

		require.NotNil(t, preview)
		require.Len(t, preview.AffectedRuns, 1)
		assert.Equal(t, domain.ChangeMoved, preview.AffectedRuns[0].Change)
		assert.Equal(t, date("2027-03-01"), *preview.AffectedRuns[0].NewDate)
	})

	t.Run("week full downgrades in place", func(t *testing.T) {
		plan := newPlan(
			newRun("2027-03-01", 4, domain.RunEasy),
			newRun("2027-03-02", 4, domain.RunEasy),
			newRun("2027-03-03", 4, domain.RunEasy),
			newRun("2027-03-04", 4, domain.RunEasy),
			newRun("2027-03-05", 4, domain.RunEasy),
			newRun("2027-03-06", 10, domain.RunLong),
			newRun("2027-03-07", 4, domain.RunEasy),
			newRun("2027-03-13", 11, domain.RunLong),
		)
		target := runOn(plan, "2027-03-13")

		preview := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))

		require.NotNil(t, preview)
		require.Len(t, preview.AffectedRuns, 1)
		assert.Equal(t, domain.ChangeTypeChanged, preview.AffectedRuns[0].Change)
		assert.Equal(t, domain.RunRecovery, preview.AffectedRuns[0].NewType)
		assert.Nil(t, preview.AffectedRuns[0].NewDate)
	})
}

func TestCalculateMoveEffect_AdjacentHardRun(t *testing.T) {
	plan := samplePlan()
	moderate := runOn(plan, "2027-03-04")
	long := runOn(plan, "2027-03-06")

	preview := CalculateMoveEffect(plan, moderate.ID, date("2027-03-05"))

	require.NotNil(t, preview)
	require.Len(t, preview.AffectedRuns, 1)
	assert.Equal(t, long.ID, preview.AffectedRuns[0].Run.ID)
	assert.Equal(t, domain.ChangeTypeChanged, preview.AffectedRuns[0].Change)
	assert.Equal(t, domain.RunRecovery, preview.AffectedRuns[0].NewType)
	assert.Equal(t, 1, preview.Effect.RecoveryDaysLost)
	assert.Equal(t, domain.RiskHigh, preview.Effect.RiskLevel)
	assert.Equal(t, []string{
		"6km moderate run moves to Friday",
		"1 other run will adjust",
		"1 rest day reduced this week",
	}, preview.Effect.Summary)
	assert.Equal(t,
		"This is manageable, but consider taking it easy. Listen to your body, extra rest next week is fine. Your goal date hasn't changed.",
		preview.Suggestion)
}

func TestCalculateMoveEffect_EasyRunNextToHardRunIsFine(t *testing.T) {
	plan := samplePlan()
	easy := runOn(plan, "2027-03-02")

	preview := CalculateMoveEffect(plan, easy.ID, date("2027-03-05"))

	require.NotNil(t, preview)
	assert.Empty(t, preview.AffectedRuns)
	assert.Equal(t, 1, preview.Effect.RecoveryDaysLost)
	assert.Equal(t, domain.RiskModerate, preview.Effect.RiskLevel)
}

func TestCalculateMoveEffect_SkippedRunsDoNotConflict(t *testing.T) {
	skipped := newRun("2027-03-05", 5, domain.RunModerate)
	skipped.Status = domain.RunSkipped
	plan := newPlan(
		newRun("2027-03-02", 5, domain.RunEasy),
		skipped,
		newRun("2027-03-13", 11, domain.RunLong),
	)

	preview := CalculateMoveEffect(plan, runOn(plan, "2027-03-13").ID, date("2027-03-06"))

	require.NotNil(t, preview)
	assert.Empty(t, preview.AffectedRuns)
	assert.Equal(t, domain.RiskLow, preview.Effect.RiskLevel)
}

func TestCalculateMoveEffect_DoesNotMutatePlan(t *testing.T) {
	plan := samplePlan()
	before := plan.Clone()

	CalculateMoveEffect(plan, runOn(plan, "2027-03-02").ID, date("2027-03-06"))
	CalculateSkipEffect(plan, runOn(plan, "2027-03-06").ID)

	if diff := cmp.Diff(before, plan); diff != "" {
		t.Errorf("plan mutated (-before +after):\n%s", diff)
	}
}

func TestCalculateMoveEffect_Deterministic(t *testing.T) {
	plan := samplePlan()
	target := runOn(plan, "2027-03-04")

	first := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))
	second := CalculateMoveEffect(plan, target.ID, date("2027-03-06"))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("previews differ (-first +second):\n%s", diff)
	}
}

func TestValidDropDates(t *testing.T) {
	plan := samplePlan()
	moderate := runOn(plan, "2027-03-04")
	weekStart := date("2027-03-01")

	got := ValidDropDates(plan, moderate.ID, weekStart)

	assert.Equal(t, []string{"2027-03-01", "2027-03-02", "2027-03-03", "2027-03-06"}, formatDates(got))

	// Every other day of the week is high risk, every listed day is not.
	valid := map[string]bool{}
	for _, d := range got {
		valid[FormatDate(d)] = true
	}
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		if SameDay(day, moderate.ScheduledDate) {
			assert.False(t, valid[FormatDate(day)], "current date must never be offered")
			continue
		}
		preview := CalculateMoveEffect(plan, moderate.ID, day)
		require.NotNil(t, preview)
		assert.Equal(t, valid[FormatDate(day)], preview.Effect.RiskLevel != domain.RiskHigh, FormatDate(day))
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = FormatDate(d)
	}
	return out
}
