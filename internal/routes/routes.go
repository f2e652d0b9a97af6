package routes

import (
	"github.com/civicpulse/backend/internal/controllers"
	"github.com/civicpulse/backend/internal/middleware"
	"github.com/civicpulse/backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize services
	grievanceService := services.NewGrievanceService(db, services.NewRandomIDGenerator())
	feedbackService := services.NewFeedbackService(db)
	analyticsService := services.NewAnalyticsService(db)
	performanceService := services.NewPerformanceService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	grievanceController := controllers.NewGrievanceController(grievanceService, feedbackService)
	analyticsController := controllers.NewAnalyticsController(analyticsService, performanceService)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/auth/refresh", authController.RefreshToken)

			// Users
			users := protected.Group("/users")
			{
				users.GET("/me", userController.GetCurrentUser)
				users.GET("/:id", userController.GetUser)
				users.GET("", userController.GetUsers)
			}

			// Grievances
			grievances := protected.Group("/grievances")
			{
				grievances.POST("", grievanceController.CreateGrievance)
				grievances.GET("", grievanceController.GetGrievances)
				grievances.GET("/:id", grievanceController.GetGrievance)
				grievances.GET("/user/:userId", grievanceController.GetGrievancesByUser)
				grievances.GET("/officer/:officerId", grievanceController.GetGrievancesByOfficer)
				grievances.GET("/status/:status", grievanceController.GetGrievancesByStatus)
				grievances.PATCH("/:id", grievanceController.UpdateGrievance)
				grievances.POST("/:id/feedback", grievanceController.SubmitFeedback)
				grievances.GET("/:id/feedback", grievanceController.GetFeedback)
				grievances.POST("/:id/upload", grievanceController.UploadImage)
			}

			// Analytics
			analytics := protected.Group("/analytics")
			{
				analytics.GET("/all", analyticsController.GetAnalyticsForAll)
				analytics.GET("/officer/:officerId", analyticsController.GetAnalyticsForOfficer)
				analytics.GET("/complete", analyticsController.GetCompleteAnalytics)
				analytics.GET("/zones", analyticsController.GetZoneAnalytics)
				analytics.GET("/heatmap", analyticsController.GetHeatMapData)
				analytics.GET("/sla", analyticsController.GetSLAMetrics)
				analytics.GET("/sla/officer/:officerId", analyticsController.GetSLAMetricsForOfficer)
				analytics.GET("/grievance-analysis", analyticsController.GetGrievanceAnalysis)
				analytics.GET("/grievance-analysis/officer/:officerId", analyticsController.GetGrievanceAnalysisForOfficer)
				analytics.GET("/performance", analyticsController.GetAllOfficerPerformance)
				analytics.GET("/performance/:officerId", analyticsController.GetOfficerPerformance)
			}
		}
	}
}
