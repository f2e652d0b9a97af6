package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/civicpulse/backend/internal/models"
	"gorm.io/gorm"
)

// A zone is red when its complaint count reaches redZoneFactor times the
// cross-zone mean, with an absolute floor of one complaint. The threshold is
// relative and recomputed per invocation, so a zone can enter or leave
// red-zone status as volumes shift elsewhere.
const redZoneFactor = 1.5

// amberIntensityThreshold is the heat-map intensity above which a non-red
// zone is classified AMBER_ZONE.
const amberIntensityThreshold = 0.6

// AnalyticsService derives operational analytics from grievance snapshots.
// All computations are read-only over the fetched records and total over
// arbitrary (including empty) inputs.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (as *AnalyticsService) fetchAll() ([]models.Grievance, error) {
	var grievances []models.Grievance
	if err := as.db.Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

func (as *AnalyticsService) fetchByOfficer(officerID uint) ([]models.Grievance, error) {
	var grievances []models.Grievance
	if err := as.db.Where("assigned_officer_id = ?", officerID).Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

// GetAnalyticsForAll returns the basic rollup over every grievance.
func (as *AnalyticsService) GetAnalyticsForAll() (*models.Analytics, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	analytics := basicAnalytics(grievances)
	return &analytics, nil
}

// GetAnalyticsForOfficer returns the basic rollup over one officer's caseload.
func (as *AnalyticsService) GetAnalyticsForOfficer(officerID uint) (*models.Analytics, error) {
	grievances, err := as.fetchByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	analytics := basicAnalytics(grievances)
	return &analytics, nil
}

// GetZoneAnalytics returns the per-zone breakdown, red-zone flags included.
func (as *AnalyticsService) GetZoneAnalytics() ([]models.ZoneAnalytics, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	return buildZoneAnalytics(grievances), nil
}

// GetHeatMapData returns the per-zone heat-map classification.
func (as *AnalyticsService) GetHeatMapData() ([]models.HeatMapPoint, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	return buildHeatMap(buildZoneAnalytics(grievances), zoneCounts(grievances)), nil
}

// GetSLAMetrics returns SLA compliance over every grievance, classified
// against the current wall clock.
func (as *AnalyticsService) GetSLAMetrics() (*models.SLAMetrics, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	metrics := computeSLAMetrics(grievances, time.Now())
	return &metrics, nil
}

// GetSLAMetricsForOfficer returns SLA compliance over one officer's caseload.
func (as *AnalyticsService) GetSLAMetricsForOfficer(officerID uint) (*models.SLAMetrics, error) {
	grievances, err := as.fetchByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	metrics := computeSLAMetrics(grievances, time.Now())
	return &metrics, nil
}

// GetGrievanceAnalysis returns the time-windowed analysis over every grievance.
func (as *AnalyticsService) GetGrievanceAnalysis() (*models.GrievanceAnalytics, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	analysis := analyzeGrievances(grievances, time.Now())
	return &analysis, nil
}

// GetGrievanceAnalysisForOfficer returns the time-windowed analysis over one
// officer's caseload.
func (as *AnalyticsService) GetGrievanceAnalysisForOfficer(officerID uint) (*models.GrievanceAnalytics, error) {
	grievances, err := as.fetchByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	analysis := analyzeGrievances(grievances, time.Now())
	return &analysis, nil
}

// GetCompleteAnalytics returns the full dashboard bundle: category split,
// zone analytics, SLA metrics, and heat map.
func (as *AnalyticsService) GetCompleteAnalytics() (*models.ComplaintAnalytics, error) {
	grievances, err := as.fetchAll()
	if err != nil {
		return nil, err
	}
	analytics := completeAnalytics(grievances, time.Now())
	return &analytics, nil
}

func statusDistribution(grievances []models.Grievance) map[string]int64 {
	dist := make(map[string]int64)
	for _, g := range grievances {
		dist[string(g.Status)]++
	}
	return dist
}

func priorityDistribution(grievances []models.Grievance) map[string]int64 {
	dist := make(map[string]int64)
	for _, g := range grievances {
		dist[string(g.Priority)]++
	}
	return dist
}

func categoryDistribution(grievances []models.Grievance) map[string]int64 {
	dist := make(map[string]int64)
	for _, g := range grievances {
		dist[g.Category]++
	}
	return dist
}

// zoneCounts groups grievances by zone label, ignoring blank zones.
func zoneCounts(grievances []models.Grievance) map[string]int64 {
	counts := make(map[string]int64)
	for _, g := range grievances {
		if strings.TrimSpace(g.Zone) == "" {
			continue
		}
		counts[g.Zone]++
	}
	return counts
}

// redZones flags every zone whose count reaches max(1, mean*1.5), where the
// mean is taken across zones that have at least one grievance.
func redZones(counts map[string]int64) map[string]bool {
	flags := make(map[string]bool, len(counts))
	if len(counts) == 0 {
		return flags
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	mean := float64(total) / float64(len(counts))
	threshold := math.Max(1.0, mean*redZoneFactor)

	for zone, c := range counts {
		flags[zone] = float64(c) >= threshold
	}
	return flags
}

// resolutionDays is the whole-day resolution duration of a single grievance,
// truncated.
func resolutionDays(g models.Grievance) int64 {
	return int64(g.ResolvedAt.Sub(g.SubmittedAt) / (24 * time.Hour))
}

// averageResolutionDays averages whole-day resolution durations over the
// resolved grievances that carry a resolution timestamp; 0 when there are
// none.
func averageResolutionDays(grievances []models.Grievance) float64 {
	var totalDays int64
	var resolved int64
	for _, g := range grievances {
		if g.ResolvedAt == nil {
			continue
		}
		totalDays += resolutionDays(g)
		resolved++
	}
	if resolved == 0 {
		return 0.0
	}
	return float64(totalDays) / float64(resolved)
}

func basicAnalytics(grievances []models.Grievance) models.Analytics {
	analytics := models.Analytics{
		TotalGrievances:       int64(len(grievances)),
		ByCategory:            categoryDistribution(grievances),
		ByStatus:              statusDistribution(grievances),
		AverageResolutionDays: averageResolutionDays(grievances),
	}
	for _, g := range grievances {
		switch g.Status {
		case models.StatusResolved:
			analytics.ResolvedCount++
		case models.StatusPending:
			analytics.PendingCount++
		case models.StatusInProgress:
			analytics.InProgressCount++
		case models.StatusAssigned:
			analytics.AssignedCount++
		}
	}
	return analytics
}

// buildZoneAnalytics produces the per-zone breakdown, sorted by zone name so
// output order is stable across invocations.
func buildZoneAnalytics(grievances []models.Grievance) []models.ZoneAnalytics {
	counts := zoneCounts(grievances)
	flags := redZones(counts)

	byZone := make(map[string][]models.Grievance)
	for _, g := range grievances {
		if strings.TrimSpace(g.Zone) == "" {
			continue
		}
		byZone[g.Zone] = append(byZone[g.Zone], g)
	}

	zoneNames := make([]string, 0, len(byZone))
	for zone := range byZone {
		zoneNames = append(zoneNames, zone)
	}
	sort.Strings(zoneNames)

	result := make([]models.ZoneAnalytics, 0, len(zoneNames))
	for _, zone := range zoneNames {
		zoneGrievances := byZone[zone]

		var latSum, lngSum float64
		za := models.ZoneAnalytics{
			ZoneName:              zone,
			TotalGrievances:       counts[zone],
			AverageResolutionDays: averageResolutionDays(zoneGrievances),
			IsRedZone:             flags[zone],
			// Preserved from the source system: count/count, a placeholder
			// pending a real area or population baseline.
			ComplaintDensity: 1.0,
		}
		for _, g := range zoneGrievances {
			latSum += g.LocationLat
			lngSum += g.LocationLng
			switch g.Status {
			case models.StatusResolved:
				za.ResolvedCount++
			case models.StatusPending:
				za.PendingCount++
			case models.StatusInProgress:
				za.InProgressCount++
			}
		}
		za.Latitude = latSum / float64(len(zoneGrievances))
		za.Longitude = lngSum / float64(len(zoneGrievances))

		result = append(result, za)
	}
	return result
}

// zoneID collapses whitespace in a zone name to underscores.
func zoneID(zoneName string) string {
	return strings.Join(strings.Fields(zoneName), "_")
}

// buildHeatMap derives per-zone intensity and risk classification from the
// zone analytics. Intensity is relative to the busiest zone.
func buildHeatMap(zones []models.ZoneAnalytics, counts map[string]int64) []models.HeatMapPoint {
	var maxCount int64
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	points := make([]models.HeatMapPoint, 0, len(zones))
	for _, za := range zones {
		intensity := 0.0
		if maxCount > 0 {
			intensity = float64(za.TotalGrievances) / float64(maxCount)
		}

		status := models.HeatStatusGreen
		if za.IsRedZone {
			status = models.HeatStatusRed
		} else if intensity > amberIntensityThreshold {
			status = models.HeatStatusAmber
		}

		points = append(points, models.HeatMapPoint{
			ZoneID:         zoneID(za.ZoneName),
			ZoneName:       za.ZoneName,
			Latitude:       za.Latitude,
			Longitude:      za.Longitude,
			ComplaintCount: za.TotalGrievances,
			Intensity:      intensity,
			Status:         status,
		})
	}
	return points
}

// computeSLAMetrics classifies every grievance against the given instant and
// aggregates compliance counts. Deadlines are derived lazily for records
// that never had one; classification is never cached because it depends on
// the wall clock.
func computeSLAMetrics(grievances []models.Grievance, now time.Time) models.SLAMetrics {
	metrics := models.SLAMetrics{
		TotalGrievances: int64(len(grievances)),
	}

	var totalHours int64
	var resolved int64
	for _, g := range grievances {
		CalculateDeadline(&g)
		switch ClassifySLA(&g, now) {
		case models.SLAOnTime:
			metrics.OnTimeCount++
		case models.SLADelayed:
			metrics.DelayedCount++
		case models.SLAOverdue:
			metrics.OverdueCount++
		}

		if g.ResolvedAt != nil {
			totalHours += int64(g.ResolvedAt.Sub(g.SubmittedAt) / time.Hour)
			resolved++
		}
	}

	if metrics.TotalGrievances > 0 {
		total := float64(metrics.TotalGrievances)
		metrics.OnTimePercentage = round2(float64(metrics.OnTimeCount) / total * 100)
		metrics.DelayedPercentage = round2(float64(metrics.DelayedCount) / total * 100)
		metrics.OverduePercentage = round2(float64(metrics.OverdueCount) / total * 100)
	}
	if resolved > 0 {
		metrics.AverageResolutionHours = float64(totalHours) / float64(resolved)
	}
	return metrics
}

// analyzeGrievances computes the time-windowed grievance analysis. The
// today/week/month windows roll with the evaluation instant; they are not
// calendar-aligned.
func analyzeGrievances(grievances []models.Grievance, now time.Time) models.GrievanceAnalytics {
	analysis := models.GrievanceAnalytics{
		StatusDistribution:    statusDistribution(grievances),
		PriorityDistribution:  priorityDistribution(grievances),
		CategoryDistribution:  categoryDistribution(grievances),
		TotalGrievances:       int64(len(grievances)),
		AverageResolutionDays: averageResolutionDays(grievances),
		TopCategory:           "N/A",
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	for _, g := range grievances {
		if !g.SubmittedAt.Before(startOfToday) {
			analysis.TodayCount++
		}
		if !g.SubmittedAt.Before(weekAgo) {
			analysis.WeekCount++
		}
		if !g.SubmittedAt.Before(monthAgo) {
			analysis.MonthCount++
		}

		switch g.Status {
		case models.StatusResolved:
			analysis.ResolvedCount++
		case models.StatusPending:
			analysis.PendingCount++
		case models.StatusInProgress:
			analysis.InProgressCount++
		case models.StatusAssigned:
			analysis.AssignedCount++
		}

		switch g.Priority {
		case models.PriorityHigh, models.PriorityUrgent:
			analysis.HighPriorityCount++
		case models.PriorityMedium:
			analysis.MediumPriorityCount++
		case models.PriorityLow:
			analysis.LowPriorityCount++
		}
	}

	if analysis.TotalGrievances > 0 {
		analysis.ResolutionRate = round2(float64(analysis.ResolvedCount) / float64(analysis.TotalGrievances) * 100)
	}

	analysis.TopCategory, analysis.TopCategoryCount = topCategory(analysis.CategoryDistribution)
	return analysis
}

// topCategory returns the category with the highest count. Ties are broken
// by the lexicographically smallest label so the result does not depend on
// map iteration order.
func topCategory(dist map[string]int64) (string, int64) {
	top := "N/A"
	var topCount int64
	for category, count := range dist {
		if count > topCount || (count == topCount && topCount > 0 && category < top) {
			top = category
			topCount = count
		}
	}
	return top, topCount
}

func completeAnalytics(grievances []models.Grievance, now time.Time) models.ComplaintAnalytics {
	categories := categoryDistribution(grievances)
	total := int64(len(grievances))

	percentages := make(map[string]float64, len(categories))
	for category, count := range categories {
		if total > 0 {
			percentages[category] = round2(float64(count) / float64(total) * 100)
		}
	}

	zones := buildZoneAnalytics(grievances)

	analytics := models.ComplaintAnalytics{
		CategoryDistribution:  categories,
		CategoryPercentage:    percentages,
		ZoneAnalytics:         zones,
		SLAMetrics:            computeSLAMetrics(grievances, now),
		HeatMapData:           buildHeatMap(zones, zoneCounts(grievances)),
		TotalGrievances:       total,
		AverageResolutionDays: averageResolutionDays(grievances),
		StatusDistribution:    statusDistribution(grievances),
	}
	for _, g := range grievances {
		switch g.Status {
		case models.StatusResolved:
			analytics.ResolvedCount++
		case models.StatusPending:
			analytics.PendingCount++
		}
	}
	return analytics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
