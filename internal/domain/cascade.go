package domain

import "time"

// RiskLevel classifies how disruptive a proposed schedule edit is.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// CascadeAction is the user-initiated edit being previewed.
type CascadeAction string

const (
	ActionSkip CascadeAction = "skip"
	ActionMove CascadeAction = "move"
)

// ChangeKind tags how a secondary run is affected by a cascade.
type ChangeKind string

const (
	ChangeMoved       ChangeKind = "moved"
	ChangeTypeChanged ChangeKind = "type_changed"
	ChangeRemoved     ChangeKind = "removed"
)

// CascadeEffect is the ripple effect of moving or skipping a run.
type CascadeEffect struct {
	RunsAffected         int       `bson:"runsAffected" json:"runsAffected"`
	WeeklyDistanceChange float64   `bson:"weeklyDistanceChange" json:"weeklyDistanceChange"` // Positive = more km
	RecoveryDaysLost     int       `bson:"recoveryDaysLost" json:"recoveryDaysLost"`
	RiskLevel            RiskLevel `bson:"riskLevel" json:"riskLevel"`
	Summary              []string  `bson:"summary" json:"summary"`
}

// AffectedRun is a run other than the target that must change.
type AffectedRun struct {
	Run     ScheduledRun `json:"run"`
	Change  ChangeKind   `json:"change"`
	NewDate *time.Time   `json:"newDate,omitempty"`
	NewType RunType      `json:"newType,omitempty"`
}

// CascadePreview describes everything that would happen if an edit were accepted.
// It is computed per request and never stored as plan state.
type CascadePreview struct {
	TargetRun    ScheduledRun  `json:"targetRun"`
	Action       CascadeAction `json:"action"`
	NewDate      *time.Time    `json:"newDate,omitempty"`
	Effect       CascadeEffect `json:"effect"`
	AffectedRuns []AffectedRun `json:"affectedRuns"`
	Suggestion   string        `json:"suggestion"`
}
