package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/civicpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPtr(s models.GrievanceStatus) *models.GrievanceStatus { return &s }
func strPtr(s string) *string                                    { return &s }
func uintPtr(v uint) *uint                                       { return &v }

func TestApplyPatchAppendsEntryOnStatusChange(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	g := models.Grievance{ID: 7, Status: models.StatusPending}

	entry := applyPatch(&g, GrievancePatch{Status: statusPtr(models.StatusAssigned)}, "Ravi Kumar", now)

	require.NotNil(t, entry)
	assert.Equal(t, models.StatusAssigned, g.Status)
	assert.Equal(t, uint(7), entry.GrievanceID)
	assert.Equal(t, models.StatusAssigned, entry.Status)
	assert.Equal(t, "Status changed to ASSIGNED", entry.Message)
	assert.Equal(t, "Ravi Kumar", entry.Actor)
	assert.Equal(t, now, entry.Timestamp)
}

func TestApplyPatchNoEntryWhenStatusUnchanged(t *testing.T) {
	now := time.Now()
	g := models.Grievance{Status: models.StatusAssigned}

	entry := applyPatch(&g, GrievancePatch{Status: statusPtr(models.StatusAssigned)}, "System", now)

	assert.Nil(t, entry, "setting status to its current value must not append an entry")
}

func TestApplyPatchNoEntryForNonStatusChanges(t *testing.T) {
	now := time.Now()
	g := models.Grievance{Status: models.StatusInProgress}

	entry := applyPatch(&g, GrievancePatch{
		ResolutionNote: strPtr("Crew dispatched"),
		LogMessage:     strPtr("should be ignored without a status change"),
	}, "System", now)

	assert.Nil(t, entry)
	require.NotNil(t, g.ResolutionNote)
	assert.Equal(t, "Crew dispatched", *g.ResolutionNote)
}

func TestApplyPatchUsesLogMessageWhenProvided(t *testing.T) {
	now := time.Now()
	g := models.Grievance{Status: models.StatusAssigned}

	entry := applyPatch(&g, GrievancePatch{
		Status:     statusPtr(models.StatusInProgress),
		LogMessage: strPtr("Crew started clearing the blockage"),
	}, "Ravi Kumar", now)

	require.NotNil(t, entry)
	assert.Equal(t, "Crew started clearing the blockage", entry.Message)
}

func TestApplyPatchAssignmentStampsTime(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	t.Run("defaults assignedAt to now", func(t *testing.T) {
		g := models.Grievance{Status: models.StatusPending}
		applyPatch(&g, GrievancePatch{AssignedOfficerID: uintPtr(3)}, "System", now)

		require.NotNil(t, g.AssignedOfficerID)
		assert.Equal(t, uint(3), *g.AssignedOfficerID)
		require.NotNil(t, g.AssignedAt)
		assert.Equal(t, now, *g.AssignedAt)
	})

	t.Run("keeps explicit assignedAt", func(t *testing.T) {
		explicit := now.Add(-2 * time.Hour)
		g := models.Grievance{Status: models.StatusPending}
		applyPatch(&g, GrievancePatch{AssignedOfficerID: uintPtr(3), AssignedAt: &explicit}, "System", now)

		require.NotNil(t, g.AssignedAt)
		assert.Equal(t, explicit, *g.AssignedAt)
	})
}

// Setting resolvedAt does not itself force the status to RESOLVED; resolution
// fields are applied verbatim.
func TestApplyPatchResolutionFieldsVerbatim(t *testing.T) {
	now := time.Now()
	resolvedAt := now.Add(-time.Hour)
	g := models.Grievance{Status: models.StatusInProgress}

	entry := applyPatch(&g, GrievancePatch{
		ResolvedAt:      &resolvedAt,
		ResolutionImage: strPtr("uploads/after.jpg"),
	}, "System", now)

	assert.Nil(t, entry)
	assert.Equal(t, models.StatusInProgress, g.Status)
	require.NotNil(t, g.ResolvedAt)
	assert.Equal(t, resolvedAt, *g.ResolvedAt)
}

func TestRandomIDGeneratorFormat(t *testing.T) {
	gen := NewRandomIDGenerator()
	pattern := regexp.MustCompile(`^GRV-[1-9]\d{3}$`)

	for i := 0; i < 100; i++ {
		id := gen.NextGrievanceID()
		assert.Regexp(t, pattern, id)
	}
}
