package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"alcyxob/runplan/internal/domain"
)

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// summarize produces the human-readable lines of a CascadeEffect.
func summarize(target *domain.ScheduledRun, action domain.CascadeAction, newDate *time.Time, othersAdjusting int, distanceChange float64, restDaysLost int) []string {
	summary := []string{}
	label := fmt.Sprintf("%skm %s run", formatKm(target.DistanceKm), target.Type)

	switch {
	case action == domain.ActionSkip:
		summary = append(summary, label+" will be removed from this week")
	case newDate != nil:
		summary = append(summary, fmt.Sprintf("%s moves to %s", label, newDate.Weekday()))
	}

	if othersAdjusting > 0 {
		summary = append(summary, fmt.Sprintf("%s will adjust", plural(othersAdjusting, "other run")))
	}

	if distanceChange != 0 {
		direction := "increases"
		if distanceChange < 0 {
			direction = "decreases"
		}
		summary = append(summary, fmt.Sprintf("Weekly distance %s by %.1fkm", direction, math.Abs(distanceChange)))
	}

	if restDaysLost > 0 {
		summary = append(summary, fmt.Sprintf("%s reduced this week", plural(restDaysLost, "rest day")))
	}

	return summary
}

// suggest picks calm, non-judgmental guidance from fixed templates.
func suggest(effect domain.CascadeEffect, target *domain.ScheduledRun, action domain.CascadeAction) string {
	var lines []string

	switch effect.RiskLevel {
	case domain.RiskLow:
		lines = append(lines, "This change fits well with your schedule.")
	case domain.RiskModerate:
		lines = append(lines, "This works, though your week will be a bit tighter.")
	default:
		lines = append(lines, "This is manageable, but consider taking it easy.")
	}

	if action == domain.ActionSkip && target.Type == domain.RunLong {
		lines = append(lines, "You could add distance to another run this week if you'd like.")
	}

	if effect.RecoveryDaysLost > 0 {
		lines = append(lines, "Listen to your body, extra rest next week is fine.")
	}

	lines = append(lines, "Your goal date hasn't changed.")
	return strings.Join(lines, " ")
}
