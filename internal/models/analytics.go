package models

// Aggregate result types produced by the analytics services. These are
// derived on demand from grievance snapshots and never persisted.

// Analytics is the basic rollup returned for the whole system or a single
// officer's caseload.
type Analytics struct {
	TotalGrievances       int64            `json:"totalGrievances"`
	ResolvedCount         int64            `json:"resolvedCount"`
	PendingCount          int64            `json:"pendingCount"`
	InProgressCount       int64            `json:"inProgressCount"`
	AssignedCount         int64            `json:"assignedCount"`
	ByCategory            map[string]int64 `json:"byCategory"`
	ByStatus              map[string]int64 `json:"byStatus"`
	AverageResolutionDays float64          `json:"averageResolutionDays"`
}

// ZoneAnalytics summarises one zone's grievance load. Latitude/longitude are
// the arithmetic mean of the zone's grievance coordinates, used as a centroid
// approximation.
type ZoneAnalytics struct {
	ZoneName              string  `json:"zoneName"`
	TotalGrievances       int64   `json:"totalGrievances"`
	ResolvedCount         int64   `json:"resolvedCount"`
	PendingCount          int64   `json:"pendingCount"`
	InProgressCount       int64   `json:"inProgressCount"`
	AverageResolutionDays float64 `json:"averageResolutionDays"`
	IsRedZone             bool    `json:"isRedZone"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	ComplaintDensity      float64 `json:"complaintDensity"`
}

// Heat map zone classifications.
const (
	HeatStatusRed   = "RED_ZONE"
	HeatStatusAmber = "AMBER_ZONE"
	HeatStatusGreen = "GREEN_ZONE"
)

// HeatMapPoint is one zone on the complaint heat map. Intensity is the
// zone's share of the busiest zone's count, in [0,1].
type HeatMapPoint struct {
	ZoneID         string  `json:"zoneId"`
	ZoneName       string  `json:"zoneName"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ComplaintCount int64   `json:"complaintCount"`
	Intensity      float64 `json:"intensity"`
	Status         string  `json:"status"`
}

// SLAMetrics reports SLA compliance over a set of grievances. Percentages
// are zero when the set is empty.
type SLAMetrics struct {
	TotalGrievances        int64   `json:"totalGrievances"`
	OnTimeCount            int64   `json:"onTimeCount"`
	DelayedCount           int64   `json:"delayedCount"`
	OverdueCount           int64   `json:"overdueCount"`
	OnTimePercentage       float64 `json:"onTimePercentage"`
	DelayedPercentage      float64 `json:"delayedPercentage"`
	OverduePercentage      float64 `json:"overduePercentage"`
	AverageResolutionHours float64 `json:"averageResolutionHours"`
}

// GrievanceAnalytics is the time-windowed grievance analysis. Today/week/
// month counts are rolling windows anchored at the evaluation instant, not
// calendar periods.
type GrievanceAnalytics struct {
	StatusDistribution    map[string]int64 `json:"statusDistribution"`
	PriorityDistribution  map[string]int64 `json:"priorityDistribution"`
	CategoryDistribution  map[string]int64 `json:"categoryDistribution"`
	TodayCount            int64            `json:"todayCount"`
	WeekCount             int64            `json:"weekCount"`
	MonthCount            int64            `json:"monthCount"`
	TotalGrievances       int64            `json:"totalGrievances"`
	ResolvedCount         int64            `json:"resolvedCount"`
	PendingCount          int64            `json:"pendingCount"`
	InProgressCount       int64            `json:"inProgressCount"`
	AssignedCount         int64            `json:"assignedCount"`
	AverageResolutionDays float64          `json:"averageResolutionDays"`
	ResolutionRate        float64          `json:"resolutionRate"`
	HighPriorityCount     int64            `json:"highPriorityCount"`
	MediumPriorityCount   int64            `json:"mediumPriorityCount"`
	LowPriorityCount      int64            `json:"lowPriorityCount"`
	TopCategory           string           `json:"topCategory"`
	TopCategoryCount      int64            `json:"topCategoryCount"`
}

// ComplaintAnalytics bundles the full analytics surface for dashboards.
type ComplaintAnalytics struct {
	CategoryDistribution  map[string]int64   `json:"categoryDistribution"`
	CategoryPercentage    map[string]float64 `json:"categoryPercentage"`
	ZoneAnalytics         []ZoneAnalytics    `json:"zoneAnalytics"`
	SLAMetrics            SLAMetrics         `json:"slaMetrics"`
	HeatMapData           []HeatMapPoint     `json:"heatMapData"`
	TotalGrievances       int64              `json:"totalGrievances"`
	ResolvedCount         int64              `json:"resolvedCount"`
	PendingCount          int64              `json:"pendingCount"`
	AverageResolutionDays float64            `json:"averageResolutionDays"`
	StatusDistribution    map[string]int64   `json:"statusDistribution"`
}

// OfficerPerformance is the per-officer rollup of assignments and citizen
// feedback. A rating of 2 or below counts as a warning, 4 or above as an
// appreciation.
type OfficerPerformance struct {
	OfficerID          uint    `json:"officerId"`
	OfficerName        string  `json:"officerName"`
	Department         string  `json:"department"`
	AverageRating      float64 `json:"averageRating"`
	FeedbackCount      int     `json:"feedbackCount"`
	WarningsCount      int     `json:"warningsCount"`
	AppreciationsCount int     `json:"appreciationsCount"`
	ResolvedCount      int     `json:"resolvedCount"`
	AssignedCount      int     `json:"assignedCount"`
}
