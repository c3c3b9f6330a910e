// internal/domain/workout.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunType is the effort category of a scheduled run. There is no tempo or interval work.
type RunType string

const (
	RunEasy     RunType = "easy"
	RunLong     RunType = "long"
	RunRecovery RunType = "recovery"
	RunModerate RunType = "moderate"
)

// IsHard reports whether the type counts as a hard effort.
// Hard runs must never land on consecutive days.
func (t RunType) IsHard() bool {
	return t == RunLong || t == RunModerate
}

// RunStatus tracks the lifecycle of a scheduled run.
type RunStatus string

const (
	RunScheduled RunStatus = "scheduled"
	RunCompleted RunStatus = "completed"
	RunSkipped   RunStatus = "skipped"
	RunMoved     RunStatus = "moved"
)

// EffortRating is the runner's own rating of a completed run.
type EffortRating string

const (
	EffortEasy     EffortRating = "easy"
	EffortGood     EffortRating = "good"
	EffortHard     EffortRating = "hard"
	EffortStruggle EffortRating = "struggle"
)

// Valid reports whether r is one of the known ratings.
func (r EffortRating) Valid() bool {
	switch r {
	case EffortEasy, EffortGood, EffortHard, EffortStruggle:
		return true
	}
	return false
}

// ScheduledRun is a single workout within a TrainingPlan.
// Dates are calendar days stored as UTC midnight.
type ScheduledRun struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID        primitive.ObjectID `bson:"planId" json:"planId"`
	OriginalDate  time.Time          `bson:"originalDate" json:"originalDate"`   // Never changes after generation
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"` // Current slot, may differ once moved
	DistanceKm    float64            `bson:"distanceKm" json:"distanceKm"`
	Type          RunType            `bson:"type" json:"type"`
	WeekNumber    int                `bson:"weekNumber" json:"weekNumber"` // 1-indexed, fixed at generation
	Status        RunStatus          `bson:"status" json:"status"`
	MovedFrom     *time.Time         `bson:"movedFrom,omitempty" json:"movedFrom,omitempty"` // Date held before the first move
	EffortRating  EffortRating       `bson:"effortRating,omitempty" json:"effortRating,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsHard is shorthand for r.Type.IsHard().
func (r *ScheduledRun) IsHard() bool {
	return r.Type.IsHard()
}
