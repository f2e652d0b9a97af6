package services

import (
	"testing"

	"github.com/civicpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRollupPerformance(t *testing.T) {
	officer := models.User{
		ID:         4,
		Name:       "Ravi Kumar",
		Department: "Sanitation",
		Role:       models.RoleOfficer,
	}

	grievances := []models.Grievance{
		{
			Status: models.StatusResolved,
			Feedbacks: []models.Feedback{
				{Rating: 5},
				{Rating: 2},
			},
		},
		{
			Status: models.StatusInProgress,
			Feedbacks: []models.Feedback{
				{Rating: 4},
			},
		},
		{Status: models.StatusAssigned},
	}

	perf := rollupPerformance(officer, grievances)

	assert.Equal(t, uint(4), perf.OfficerID)
	assert.Equal(t, "Ravi Kumar", perf.OfficerName)
	assert.Equal(t, "Sanitation", perf.Department)
	assert.Equal(t, 3, perf.AssignedCount)
	assert.Equal(t, 1, perf.ResolvedCount)
	assert.Equal(t, 3, perf.FeedbackCount)
	assert.Equal(t, 1, perf.WarningsCount)      // the 2 rating
	assert.Equal(t, 2, perf.AppreciationsCount) // the 5 and the 4
	assert.InDelta(t, 3.67, perf.AverageRating, 0.001)
}

func TestRollupPerformanceNoFeedback(t *testing.T) {
	officer := models.User{ID: 9, Name: "Meera Joshi", Role: models.RoleOfficer}

	perf := rollupPerformance(officer, nil)

	assert.Equal(t, 0, perf.AssignedCount)
	assert.Equal(t, 0, perf.FeedbackCount)
	assert.Equal(t, 0.0, perf.AverageRating)
}

// A rating of exactly 3 is neutral: neither a warning nor an appreciation.
func TestRollupPerformanceNeutralRating(t *testing.T) {
	officer := models.User{ID: 2, Name: "Ravi Kumar", Role: models.RoleOfficer}
	grievances := []models.Grievance{
		{Status: models.StatusResolved, Feedbacks: []models.Feedback{{Rating: 3}}},
	}

	perf := rollupPerformance(officer, grievances)

	assert.Equal(t, 1, perf.FeedbackCount)
	assert.Equal(t, 0, perf.WarningsCount)
	assert.Equal(t, 0, perf.AppreciationsCount)
	assert.InDelta(t, 3.0, perf.AverageRating, 1e-9)
}
