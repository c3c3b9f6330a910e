package schedule

import (
	"math"

	"alcyxob/runplan/internal/domain"
)

// RiskInput holds the structural facts of a proposed edit.
type RiskInput struct {
	RunsAffected          int
	DistanceChangePercent float64
	RecoveryDaysLost      int
	ConsecutiveHardDays   bool
}

// AssessRisk classifies an edit. Checks run in fixed priority order; the first match wins.
func AssessRisk(in RiskInput) domain.RiskLevel {
	change := math.Abs(in.DistanceChangePercent)

	switch {
	case in.ConsecutiveHardDays, in.RecoveryDaysLost >= 2, change > 20:
		return domain.RiskHigh
	case in.RunsAffected > 2, in.RecoveryDaysLost >= 1, change > 10:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}
