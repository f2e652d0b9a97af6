package services

import (
	"time"

	"github.com/civicpulse/backend/internal/models"
)

// Response windows per priority, in hours. Priorities outside the table fall
// back to the MEDIUM window.
var slaHoursByPriority = map[models.GrievancePriority]int{
	models.PriorityUrgent: 4,
	models.PriorityHigh:   24,
	models.PriorityMedium: 72,
	models.PriorityLow:    168,
}

const slaFallbackHours = 72

// slaWarningWindow is how long before the deadline an open grievance is
// already flagged DELAYED.
const slaWarningWindow = 6 * time.Hour

// SLAHoursForPriority returns the response window for a priority.
func SLAHoursForPriority(p models.GrievancePriority) int {
	if hours, ok := slaHoursByPriority[p]; ok {
		return hours
	}
	return slaFallbackHours
}

// CalculateDeadline sets SLAHours and Deadline from the grievance's priority
// and submission time. It is idempotent: a grievance that already has a
// deadline is left untouched.
func CalculateDeadline(g *models.Grievance) {
	if g.Deadline != nil {
		return
	}
	g.SLAHours = SLAHoursForPriority(g.Priority)
	deadline := g.SubmittedAt.Add(time.Duration(g.SLAHours) * time.Hour)
	g.Deadline = &deadline
}

// ClassifySLA derives the SLA state of a grievance at the given instant.
// Resolved grievances are ON_TIME or DELAYED, never OVERDUE; OVERDUE is
// reserved for open items past their deadline. A grievance without a
// deadline is not yet evaluable and reports ON_TIME.
func ClassifySLA(g *models.Grievance, now time.Time) models.SLAStatus {
	if g.Deadline == nil {
		return models.SLAOnTime
	}
	if g.Status == models.StatusResolved {
		if g.ResolvedAt != nil && g.ResolvedAt.Before(*g.Deadline) {
			return models.SLAOnTime
		}
		return models.SLADelayed
	}
	if now.After(*g.Deadline) {
		return models.SLAOverdue
	}
	if now.After(g.Deadline.Add(-slaWarningWindow)) {
		return models.SLADelayed
	}
	return models.SLAOnTime
}
