package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleAdjustment records an accepted skip or move, for pattern tracking.
type ScheduleAdjustment struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PlanID         primitive.ObjectID   `bson:"planId" json:"planId"`
	Timestamp      time.Time            `bson:"timestamp" json:"timestamp"`
	Type           CascadeAction        `bson:"type" json:"type"`
	AffectedRunIDs []primitive.ObjectID `bson:"affectedRunIds" json:"affectedRunIds"` // Target first, then cascade
	Reason         string               `bson:"reason,omitempty" json:"reason,omitempty"`
	CascadeEffect  CascadeEffect        `bson:"cascadeEffect" json:"cascadeEffect"`
	Suggestion     string               `bson:"suggestion,omitempty" json:"suggestion,omitempty"`
}
