package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a runner with their onboarding fitness profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Fitness profile (filled during onboarding) ---
	HeightCm            *float64 `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg            *float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	LongestRunKm        float64  `bson:"longestRunKm,omitempty" json:"longestRunKm,omitempty"`
	CurrentWeeklyKm     float64  `bson:"currentWeeklyKm,omitempty" json:"currentWeeklyKm,omitempty"`
	RunsPerWeek         int      `bson:"runsPerWeek,omitempty" json:"runsPerWeek,omitempty"`
	IncludeModerateRuns bool     `bson:"includeModerateRuns" json:"includeModerateRuns"`
	OnboardingCompleted bool     `bson:"onboardingCompleted" json:"onboardingCompleted"`
}
