package schedule

import (
	"testing"

	"alcyxob/runplan/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name string
		in   RiskInput
		want domain.RiskLevel
	}{
		{"nothing changes", RiskInput{}, domain.RiskLow},
		{"two runs shift", RiskInput{RunsAffected: 2}, domain.RiskLow},
		{"ten percent is still low", RiskInput{DistanceChangePercent: -10}, domain.RiskLow},
		{"three runs shift", RiskInput{RunsAffected: 3}, domain.RiskModerate},
		{"one rest day lost", RiskInput{RecoveryDaysLost: 1}, domain.RiskModerate},
		{"volume drops 15 percent", RiskInput{DistanceChangePercent: -15}, domain.RiskModerate},
		{"volume rises 15 percent", RiskInput{DistanceChangePercent: 15}, domain.RiskModerate},
		{"consecutive hard days", RiskInput{ConsecutiveHardDays: true}, domain.RiskHigh},
		{"two rest days lost", RiskInput{RecoveryDaysLost: 2}, domain.RiskHigh},
		{"volume drops 25 percent", RiskInput{DistanceChangePercent: -25}, domain.RiskHigh},
		{"high wins over moderate", RiskInput{RunsAffected: 5, RecoveryDaysLost: 1, ConsecutiveHardDays: true}, domain.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessRisk(tt.in))
		})
	}
}
