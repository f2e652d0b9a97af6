package services

import (
	"testing"
	"time"

	"github.com/civicpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grievanceInZone(zone string, status models.GrievanceStatus) models.Grievance {
	return models.Grievance{
		Zone:        zone,
		Category:    "General",
		Status:      status,
		Priority:    models.PriorityMedium,
		SubmittedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func repeatInZone(zone string, n int) []models.Grievance {
	grievances := make([]models.Grievance, 0, n)
	for i := 0; i < n; i++ {
		grievances = append(grievances, grievanceInZone(zone, models.StatusPending))
	}
	return grievances
}

func TestRedZonesScenario(t *testing.T) {
	// 10 grievances across A(7), B(1), C(2): mean = 10/3, threshold =
	// max(1, mean*1.5) = 5.0, so only A qualifies.
	var grievances []models.Grievance
	grievances = append(grievances, repeatInZone("A", 7)...)
	grievances = append(grievances, repeatInZone("B", 1)...)
	grievances = append(grievances, repeatInZone("C", 2)...)

	flags := redZones(zoneCounts(grievances))

	assert.True(t, flags["A"])
	assert.False(t, flags["B"])
	assert.False(t, flags["C"])
}

func TestRedZonesAbsoluteFloor(t *testing.T) {
	// A single zone with one grievance: mean = 1, threshold = max(1, 1.5)
	// = 1.5, so one complaint alone is not red.
	flags := redZones(map[string]int64{"A": 1})
	assert.False(t, flags["A"])

	// But two complaints in the only zone cross threshold 3.0? No: mean =
	// 2, threshold = 3. A zone equal to the whole data set stays below
	// factor*mean whenever there is a single zone with >1 complaint.
	flags = redZones(map[string]int64{"A": 2})
	assert.False(t, flags["A"])
}

func TestRedZonesMonotonicGrowth(t *testing.T) {
	// With B and C fixed, growing A can only move it toward red-zone
	// status, never away.
	wasRed := false
	for a := int64(1); a <= 20; a++ {
		flags := redZones(map[string]int64{"A": a, "B": 1, "C": 2})
		if wasRed {
			assert.True(t, flags["A"], "zone A regressed out of red at count %d", a)
		}
		if flags["A"] {
			wasRed = true
		}
	}
	assert.True(t, wasRed, "zone A never became red")
}

func TestRedZonesEmptyInput(t *testing.T) {
	assert.Empty(t, redZones(map[string]int64{}))
}

func TestZoneCountsIgnoresBlankZones(t *testing.T) {
	grievances := []models.Grievance{
		grievanceInZone("North Ward", models.StatusPending),
		grievanceInZone("", models.StatusPending),
		grievanceInZone("   ", models.StatusPending),
	}

	counts := zoneCounts(grievances)
	assert.Equal(t, map[string]int64{"North Ward": 1}, counts)
}

func TestBuildZoneAnalytics(t *testing.T) {
	submitted := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	resolvedA := submitted.Add(49 * time.Hour) // 2 whole days
	resolvedB := submitted.Add(25 * time.Hour) // 1 whole day

	grievances := []models.Grievance{
		{Zone: "North", Status: models.StatusResolved, SubmittedAt: submitted, ResolvedAt: &resolvedA, LocationLat: 10, LocationLng: 20},
		{Zone: "North", Status: models.StatusResolved, SubmittedAt: submitted, ResolvedAt: &resolvedB, LocationLat: 30, LocationLng: 40},
		{Zone: "North", Status: models.StatusPending, SubmittedAt: submitted, LocationLat: 20, LocationLng: 30},
		{Zone: "South", Status: models.StatusInProgress, SubmittedAt: submitted, LocationLat: 5, LocationLng: 5},
	}

	zones := buildZoneAnalytics(grievances)
	require.Len(t, zones, 2)

	north := zones[0]
	assert.Equal(t, "North", north.ZoneName)
	assert.Equal(t, int64(3), north.TotalGrievances)
	assert.Equal(t, int64(2), north.ResolvedCount)
	assert.Equal(t, int64(1), north.PendingCount)
	assert.Equal(t, int64(0), north.InProgressCount)
	assert.InDelta(t, 1.5, north.AverageResolutionDays, 1e-9)
	assert.InDelta(t, 20.0, north.Latitude, 1e-9)
	assert.InDelta(t, 30.0, north.Longitude, 1e-9)
	assert.Equal(t, 1.0, north.ComplaintDensity)

	south := zones[1]
	assert.Equal(t, "South", south.ZoneName)
	assert.Equal(t, int64(1), south.InProgressCount)
	assert.Equal(t, 0.0, south.AverageResolutionDays)
}

func TestBuildHeatMap(t *testing.T) {
	var grievances []models.Grievance
	grievances = append(grievances, repeatInZone("Old Town", 10)...)
	grievances = append(grievances, repeatInZone("River Side", 7)...)
	grievances = append(grievances, repeatInZone("Hill View", 2)...)

	zones := buildZoneAnalytics(grievances)
	points := buildHeatMap(zones, zoneCounts(grievances))
	require.Len(t, points, 3)

	byName := make(map[string]models.HeatMapPoint)
	for _, p := range points {
		byName[p.ZoneName] = p
	}

	// mean = 19/3, threshold = 9.5: only Old Town is red.
	oldTown := byName["Old Town"]
	assert.Equal(t, "Old_Town", oldTown.ZoneID)
	assert.Equal(t, models.HeatStatusRed, oldTown.Status)
	assert.InDelta(t, 1.0, oldTown.Intensity, 1e-9)

	riverSide := byName["River Side"]
	assert.Equal(t, "River_Side", riverSide.ZoneID)
	assert.Equal(t, models.HeatStatusAmber, riverSide.Status)
	assert.InDelta(t, 0.7, riverSide.Intensity, 1e-9)

	hillView := byName["Hill View"]
	assert.Equal(t, models.HeatStatusGreen, hillView.Status)
	assert.InDelta(t, 0.2, hillView.Intensity, 1e-9)
}

func TestComputeSLAMetrics(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	submitted := now.Add(-100 * time.Hour)
	resolvedOnTime := submitted.Add(30 * time.Hour)

	grievances := []models.Grievance{
		// MEDIUM window of 72h expired 28h ago: overdue.
		{Status: models.StatusPending, Priority: models.PriorityMedium, SubmittedAt: submitted},
		// Resolved well inside the window.
		{Status: models.StatusResolved, Priority: models.PriorityMedium, SubmittedAt: submitted, ResolvedAt: &resolvedOnTime},
		// LOW window of 168h still far away: on time.
		{Status: models.StatusInProgress, Priority: models.PriorityLow, SubmittedAt: submitted},
	}

	metrics := computeSLAMetrics(grievances, now)

	assert.Equal(t, int64(3), metrics.TotalGrievances)
	assert.Equal(t, int64(2), metrics.OnTimeCount)
	assert.Equal(t, int64(0), metrics.DelayedCount)
	assert.Equal(t, int64(1), metrics.OverdueCount)
	assert.InDelta(t, 66.67, metrics.OnTimePercentage, 0.01)
	assert.InDelta(t, 0.0, metrics.DelayedPercentage, 0.01)
	assert.InDelta(t, 33.33, metrics.OverduePercentage, 0.01)
	assert.InDelta(t, 100.0, metrics.OnTimePercentage+metrics.DelayedPercentage+metrics.OverduePercentage, 0.01)
	assert.InDelta(t, 30.0, metrics.AverageResolutionHours, 1e-9)
}

func TestComputeSLAMetricsEmpty(t *testing.T) {
	metrics := computeSLAMetrics(nil, time.Now())

	assert.Equal(t, int64(0), metrics.TotalGrievances)
	assert.Equal(t, 0.0, metrics.OnTimePercentage)
	assert.Equal(t, 0.0, metrics.DelayedPercentage)
	assert.Equal(t, 0.0, metrics.OverduePercentage)
	assert.Equal(t, 0.0, metrics.AverageResolutionHours)
}

func TestAnalyzeGrievancesTimeWindows(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)

	grievances := []models.Grievance{
		{Category: "Roads", Status: models.StatusPending, Priority: models.PriorityHigh, SubmittedAt: now.Add(-2 * time.Hour)},           // today
		{Category: "Roads", Status: models.StatusResolved, Priority: models.PriorityMedium, SubmittedAt: now.AddDate(0, 0, -3)},          // week
		{Category: "Sanitation", Status: models.StatusAssigned, Priority: models.PriorityLow, SubmittedAt: now.AddDate(0, 0, -20)},       // month
		{Category: "Sanitation", Status: models.StatusInProgress, Priority: models.PriorityUrgent, SubmittedAt: now.AddDate(0, 0, -40)},  // outside all windows
	}

	analysis := analyzeGrievances(grievances, now)

	assert.Equal(t, int64(1), analysis.TodayCount)
	assert.Equal(t, int64(2), analysis.WeekCount)
	assert.Equal(t, int64(3), analysis.MonthCount)
	assert.Equal(t, int64(4), analysis.TotalGrievances)
	assert.Equal(t, int64(1), analysis.ResolvedCount)
	assert.Equal(t, int64(1), analysis.PendingCount)
	assert.Equal(t, int64(1), analysis.InProgressCount)
	assert.Equal(t, int64(1), analysis.AssignedCount)
	assert.InDelta(t, 25.0, analysis.ResolutionRate, 1e-9)
	assert.Equal(t, int64(2), analysis.HighPriorityCount) // HIGH + URGENT
	assert.Equal(t, int64(1), analysis.MediumPriorityCount)
	assert.Equal(t, int64(1), analysis.LowPriorityCount)
}

func TestAnalyzeGrievancesEmpty(t *testing.T) {
	analysis := analyzeGrievances(nil, time.Now())

	assert.Equal(t, int64(0), analysis.TotalGrievances)
	assert.Equal(t, 0.0, analysis.ResolutionRate)
	assert.Equal(t, 0.0, analysis.AverageResolutionDays)
	assert.Equal(t, "N/A", analysis.TopCategory)
	assert.Equal(t, int64(0), analysis.TopCategoryCount)
}

func TestTopCategoryTieBreak(t *testing.T) {
	top, count := topCategory(map[string]int64{
		"Water":      3,
		"Electricity": 3,
		"Roads":      1,
	})

	// Ties resolve to the lexicographically smallest label.
	assert.Equal(t, "Electricity", top)
	assert.Equal(t, int64(3), count)
}

func TestTopCategorySingleMax(t *testing.T) {
	top, count := topCategory(map[string]int64{
		"Water": 2,
		"Roads": 5,
	})

	assert.Equal(t, "Roads", top)
	assert.Equal(t, int64(5), count)
}

func TestCompleteAnalytics(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	submitted := now.Add(-24 * time.Hour)
	resolved := submitted.Add(26 * time.Hour)

	grievances := []models.Grievance{
		{Category: "Roads", Zone: "North", Status: models.StatusResolved, Priority: models.PriorityMedium, SubmittedAt: submitted, ResolvedAt: &resolved},
		{Category: "Roads", Zone: "North", Status: models.StatusPending, Priority: models.PriorityMedium, SubmittedAt: submitted},
		{Category: "Water", Zone: "South", Status: models.StatusPending, Priority: models.PriorityMedium, SubmittedAt: submitted},
		{Category: "Water", Zone: "South", Status: models.StatusInProgress, Priority: models.PriorityMedium, SubmittedAt: submitted},
	}

	analytics := completeAnalytics(grievances, now)

	assert.Equal(t, int64(4), analytics.TotalGrievances)
	assert.Equal(t, int64(1), analytics.ResolvedCount)
	assert.Equal(t, int64(2), analytics.PendingCount)
	assert.Equal(t, map[string]int64{"Roads": 2, "Water": 2}, analytics.CategoryDistribution)
	assert.InDelta(t, 50.0, analytics.CategoryPercentage["Roads"], 1e-9)
	assert.InDelta(t, 50.0, analytics.CategoryPercentage["Water"], 1e-9)
	assert.Len(t, analytics.ZoneAnalytics, 2)
	assert.Len(t, analytics.HeatMapData, 2)
	assert.Equal(t, int64(4), analytics.SLAMetrics.TotalGrievances)
	assert.Equal(t, map[string]int64{"RESOLVED": 1, "PENDING": 2, "IN_PROGRESS": 1}, analytics.StatusDistribution)
}

func TestCompleteAnalyticsEmpty(t *testing.T) {
	analytics := completeAnalytics(nil, time.Now())

	assert.Equal(t, int64(0), analytics.TotalGrievances)
	assert.Equal(t, int64(0), analytics.ResolvedCount)
	assert.Equal(t, 0.0, analytics.AverageResolutionDays)
	assert.Empty(t, analytics.CategoryDistribution)
	assert.Empty(t, analytics.CategoryPercentage)
	assert.Empty(t, analytics.ZoneAnalytics)
	assert.Empty(t, analytics.HeatMapData)
	assert.Equal(t, int64(0), analytics.SLAMetrics.TotalGrievances)
}

func TestBasicAnalytics(t *testing.T) {
	submitted := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	resolved := submitted.Add(72 * time.Hour) // 3 whole days

	grievances := []models.Grievance{
		{Category: "Roads", Status: models.StatusResolved, SubmittedAt: submitted, ResolvedAt: &resolved},
		{Category: "Roads", Status: models.StatusAssigned, SubmittedAt: submitted},
		{Category: "Water", Status: models.StatusPending, SubmittedAt: submitted},
	}

	analytics := basicAnalytics(grievances)

	assert.Equal(t, int64(3), analytics.TotalGrievances)
	assert.Equal(t, int64(1), analytics.ResolvedCount)
	assert.Equal(t, int64(1), analytics.AssignedCount)
	assert.Equal(t, int64(1), analytics.PendingCount)
	assert.Equal(t, map[string]int64{"Roads": 2, "Water": 1}, analytics.ByCategory)
	assert.InDelta(t, 3.0, analytics.AverageResolutionDays, 1e-9)
}
