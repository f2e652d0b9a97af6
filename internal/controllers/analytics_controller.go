package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/civicpulse/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analytics   *services.AnalyticsService
	performance *services.PerformanceService
}

func NewAnalyticsController(analytics *services.AnalyticsService, performance *services.PerformanceService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, performance: performance}
}

func officerParam(c *gin.Context) (uint, bool) {
	officerID, err := strconv.ParseUint(c.Param("officerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid officer id",
		})
		return 0, false
	}
	return uint(officerID), true
}

func (ac *AnalyticsController) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to compute analytics",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (ac *AnalyticsController) GetAnalyticsForAll(c *gin.Context) {
	analytics, err := ac.analytics.GetAnalyticsForAll()
	ac.respond(c, analytics, err)
}

func (ac *AnalyticsController) GetAnalyticsForOfficer(c *gin.Context) {
	officerID, ok := officerParam(c)
	if !ok {
		return
	}
	analytics, err := ac.analytics.GetAnalyticsForOfficer(officerID)
	ac.respond(c, analytics, err)
}

func (ac *AnalyticsController) GetCompleteAnalytics(c *gin.Context) {
	analytics, err := ac.analytics.GetCompleteAnalytics()
	ac.respond(c, analytics, err)
}

func (ac *AnalyticsController) GetZoneAnalytics(c *gin.Context) {
	zones, err := ac.analytics.GetZoneAnalytics()
	ac.respond(c, zones, err)
}

func (ac *AnalyticsController) GetHeatMapData(c *gin.Context) {
	heatMap, err := ac.analytics.GetHeatMapData()
	ac.respond(c, heatMap, err)
}

func (ac *AnalyticsController) GetSLAMetrics(c *gin.Context) {
	metrics, err := ac.analytics.GetSLAMetrics()
	ac.respond(c, metrics, err)
}

func (ac *AnalyticsController) GetSLAMetricsForOfficer(c *gin.Context) {
	officerID, ok := officerParam(c)
	if !ok {
		return
	}
	metrics, err := ac.analytics.GetSLAMetricsForOfficer(officerID)
	ac.respond(c, metrics, err)
}

func (ac *AnalyticsController) GetGrievanceAnalysis(c *gin.Context) {
	analysis, err := ac.analytics.GetGrievanceAnalysis()
	ac.respond(c, analysis, err)
}

func (ac *AnalyticsController) GetGrievanceAnalysisForOfficer(c *gin.Context) {
	officerID, ok := officerParam(c)
	if !ok {
		return
	}
	analysis, err := ac.analytics.GetGrievanceAnalysisForOfficer(officerID)
	ac.respond(c, analysis, err)
}

func (ac *AnalyticsController) GetOfficerPerformance(c *gin.Context) {
	officerID, ok := officerParam(c)
	if !ok {
		return
	}

	perf, err := ac.performance.GetOfficerPerformance(officerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Officer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to compute performance",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    perf,
	})
}

func (ac *AnalyticsController) GetAllOfficerPerformance(c *gin.Context) {
	perf, err := ac.performance.GetAllOfficerPerformance()
	ac.respond(c, perf, err)
}
