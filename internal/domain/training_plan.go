// internal/domain/training_plan.go
package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalRace is the race a plan builds toward.
type GoalRace string

const (
	GoalHalfMarathon GoalRace = "half_marathon"
	Goal10K          GoalRace = "10k"
	Goal5K           GoalRace = "5k"
	GoalCustom       GoalRace = "custom"
)

// PlanStatus type for plan lifecycle
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanPaused    PlanStatus = "paused"
	PlanAbandoned PlanStatus = "abandoned"
)

// TrainingPlan represents a runner's multi-week plan toward a single goal race.
// Runs are not embedded in the stored document; the repository layer loads them separately.
type TrainingPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	GoalRace   GoalRace           `bson:"goalRace" json:"goalRace"`
	GoalName   string             `bson:"goalName,omitempty" json:"goalName,omitempty"` // Only for GoalCustom
	TargetDate time.Time          `bson:"targetDate" json:"targetDate"`
	StartDate  time.Time          `bson:"startDate" json:"startDate"` // Monday of week 1
	TotalWeeks int                `bson:"totalWeeks" json:"totalWeeks"`
	Status     PlanStatus         `bson:"status" json:"status"`

	// Fitness inputs captured at onboarding
	StartingLongestRunKm float64 `bson:"startingLongestRunKm" json:"startingLongestRunKm"`
	StartingWeeklyKm     float64 `bson:"startingWeeklyKm" json:"startingWeeklyKm"`

	Runs []ScheduledRun `bson:"-" json:"runs"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FindRun returns the run with the given ID, or nil.
func (p *TrainingPlan) FindRun(id primitive.ObjectID) *ScheduledRun {
	for i := range p.Runs {
		if p.Runs[i].ID == id {
			return &p.Runs[i]
		}
	}
	return nil
}

// SortRuns orders runs by scheduled date, keeping insertion order for ties.
func (p *TrainingPlan) SortRuns() {
	sort.SliceStable(p.Runs, func(i, j int) bool {
		return p.Runs[i].ScheduledDate.Before(p.Runs[j].ScheduledDate)
	})
}

// Clone returns a copy of the plan whose run slice can be mutated independently.
func (p *TrainingPlan) Clone() *TrainingPlan {
	cp := *p
	cp.Runs = make([]ScheduledRun, len(p.Runs))
	copy(cp.Runs, p.Runs)
	for i := range cp.Runs {
		if cp.Runs[i].MovedFrom != nil {
			mf := *cp.Runs[i].MovedFrom
			cp.Runs[i].MovedFrom = &mf
		}
	}
	return &cp
}
