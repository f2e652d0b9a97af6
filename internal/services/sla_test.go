package services

import (
	"testing"
	"time"

	"github.com/civicpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSLAHoursForPriority(t *testing.T) {
	tests := []struct {
		priority models.GrievancePriority
		hours    int
	}{
		{models.PriorityUrgent, 4},
		{models.PriorityHigh, 24},
		{models.PriorityMedium, 72},
		{models.PriorityLow, 168},
		{models.GrievancePriority("UNKNOWN"), 72},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.hours, SLAHoursForPriority(tt.priority), "priority %s", tt.priority)
	}
}

func TestCalculateDeadline(t *testing.T) {
	submitted := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for priority, hours := range slaHoursByPriority {
		g := models.Grievance{Priority: priority, SubmittedAt: submitted}
		CalculateDeadline(&g)

		assert.Equal(t, hours, g.SLAHours)
		assert.NotNil(t, g.Deadline)
		assert.Equal(t, submitted.Add(time.Duration(hours)*time.Hour), *g.Deadline)
	}
}

func TestCalculateDeadlineIsIdempotent(t *testing.T) {
	submitted := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := submitted.Add(48 * time.Hour)

	g := models.Grievance{
		Priority:    models.PriorityUrgent,
		SubmittedAt: submitted,
		SLAHours:    48,
		Deadline:    &existing,
	}
	CalculateDeadline(&g)

	assert.Equal(t, existing, *g.Deadline, "existing deadline must not be recomputed")
	assert.Equal(t, 48, g.SLAHours)
}

func TestClassifySLA(t *testing.T) {
	submitted := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	deadline := submitted.Add(72 * time.Hour)
	beforeDeadline := submitted.Add(24 * time.Hour)
	afterDeadline := deadline.Add(2 * time.Hour)

	tests := []struct {
		name       string
		status     models.GrievanceStatus
		resolvedAt *time.Time
		now        time.Time
		want       models.SLAStatus
	}{
		{"open well before deadline", models.StatusPending, nil, deadline.Add(-7 * time.Hour), models.SLAOnTime},
		{"open inside warning window", models.StatusInProgress, nil, deadline.Add(-2 * time.Hour), models.SLADelayed},
		{"open past deadline", models.StatusPending, nil, afterDeadline, models.SLAOverdue},
		{"resolved before deadline", models.StatusResolved, &beforeDeadline, afterDeadline, models.SLAOnTime},
		{"resolved after deadline is delayed, never overdue", models.StatusResolved, &afterDeadline, afterDeadline.Add(time.Hour), models.SLADelayed},
		{"resolved without timestamp", models.StatusResolved, nil, afterDeadline, models.SLADelayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := models.Grievance{
				Status:      tt.status,
				SubmittedAt: submitted,
				Deadline:    &deadline,
				ResolvedAt:  tt.resolvedAt,
			}
			assert.Equal(t, tt.want, ClassifySLA(&g, tt.now))
		})
	}
}

func TestClassifySLAWithoutDeadline(t *testing.T) {
	g := models.Grievance{Status: models.StatusPending}
	assert.Equal(t, models.SLAOnTime, ClassifySLA(&g, time.Now()))
}

// An URGENT grievance submitted at T has a deadline of T+4h; at T+5h with the
// status still PENDING it must classify OVERDUE.
func TestUrgentGrievanceOverdueScenario(t *testing.T) {
	submitted := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	g := models.Grievance{
		Priority:    models.PriorityUrgent,
		Status:      models.StatusPending,
		SubmittedAt: submitted,
	}
	CalculateDeadline(&g)

	assert.Equal(t, submitted.Add(4*time.Hour), *g.Deadline)
	assert.Equal(t, models.SLAOverdue, ClassifySLA(&g, submitted.Add(5*time.Hour)))
}
