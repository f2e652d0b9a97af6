package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 * 1024 * 1024

type GrievanceController struct {
	grievances *services.GrievanceService
	feedback   *services.FeedbackService
}

func NewGrievanceController(grievances *services.GrievanceService, feedback *services.FeedbackService) *GrievanceController {
	return &GrievanceController{grievances: grievances, feedback: feedback}
}

type LocationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address" binding:"required"`
}

type CreateGrievanceRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Location    LocationRequest `json:"location" binding:"required"`
	Zone        string          `json:"zone"`
	Image       *string         `json:"image"`
}

type UpdateGrievanceRequest struct {
	Status            *string    `json:"status"`
	AssignedOfficerID *uint      `json:"assignedOfficerId"`
	AssignedAt        *time.Time `json:"assignedAt"`
	Deadline          *time.Time `json:"deadline"`
	ResolutionNote    *string    `json:"resolutionNote"`
	ResolutionImage   *string    `json:"resolutionImage"`
	ResolvedAt        *time.Time `json:"resolvedAt"`
	LogMessage        *string    `json:"logMessage"`
}

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func parseStatus(value string) (models.GrievanceStatus, bool) {
	switch value {
	case "PENDING":
		return models.StatusPending, true
	case "ASSIGNED":
		return models.StatusAssigned, true
	case "IN_PROGRESS":
		return models.StatusInProgress, true
	case "RESOLVED":
		return models.StatusResolved, true
	}
	return "", false
}

// callerName resolves the display name of the authenticated user, with the
// given fallback when the token carries none.
func callerName(c *gin.Context, fallback string) string {
	if name, exists := c.Get("user_name"); exists {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func (gc *GrievanceController) CreateGrievance(c *gin.Context) {
	var req CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
			"errors":  err.Error(),
		})
		return
	}

	userID, _ := c.Get("user_id")

	grievance, err := gc.grievances.Create(services.CreateGrievanceInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		LocationLat:     req.Location.Lat,
		LocationLng:     req.Location.Lng,
		LocationAddress: req.Location.Address,
		Zone:            req.Zone,
		Image:           req.Image,
	}, userID.(uint), callerName(c, "Citizen"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create grievance",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    grievance,
	})
}

func (gc *GrievanceController) GetGrievances(c *gin.Context) {
	grievances, err := gc.grievances.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grievances",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievances,
	})
}

func (gc *GrievanceController) GetGrievance(c *gin.Context) {
	grievance, err := gc.grievances.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGrievanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Grievance not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grievance",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievance,
	})
}

func (gc *GrievanceController) GetGrievancesByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid user id",
		})
		return
	}

	grievances, err := gc.grievances.ListBySubmitter(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grievances",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievances,
	})
}

func (gc *GrievanceController) GetGrievancesByOfficer(c *gin.Context) {
	officerID, err := strconv.ParseUint(c.Param("officerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid officer id",
		})
		return
	}

	grievances, err := gc.grievances.ListByOfficer(uint(officerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grievances",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievances,
	})
}

func (gc *GrievanceController) GetGrievancesByStatus(c *gin.Context) {
	status, ok := parseStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid status value",
		})
		return
	}

	grievances, err := gc.grievances.ListByStatus(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grievances",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievances,
	})
}

func (gc *GrievanceController) UpdateGrievance(c *gin.Context) {
	var req UpdateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	patch := services.GrievancePatch{
		AssignedOfficerID: req.AssignedOfficerID,
		AssignedAt:        req.AssignedAt,
		Deadline:          req.Deadline,
		ResolutionNote:    req.ResolutionNote,
		ResolutionImage:   req.ResolutionImage,
		ResolvedAt:        req.ResolvedAt,
		LogMessage:        req.LogMessage,
	}
	if req.Status != nil {
		status, ok := parseStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status value",
			})
			return
		}
		patch.Status = &status
	}

	grievance, err := gc.grievances.Update(c.Param("id"), patch, callerName(c, "System"))
	if err != nil {
		if errors.Is(err, services.ErrGrievanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Grievance not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update grievance",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grievance,
	})
}

func (gc *GrievanceController) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	userID, _ := c.Get("user_id")

	feedback, err := gc.feedback.Submit(c.Param("id"), req.Rating, req.Comment, userID.(uint), callerName(c, "User"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Rating must be between 1 and 5",
			})
		case errors.Is(err, services.ErrGrievanceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Grievance not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to submit feedback",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    feedback,
	})
}

func (gc *GrievanceController) GetFeedback(c *gin.Context) {
	feedbacks, err := gc.feedback.List(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGrievanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Grievance not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch feedback",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedbacks,
	})
}

// UploadImage stores a grievance image under ./uploads with a unique name
// and attaches it to the grievance.
func (gc *GrievanceController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "File is required",
		})
		return
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "File size exceeds 5MB limit",
		})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Only image files are allowed",
		})
		return
	}

	uploadDir := "uploads"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to store file",
		})
		return
	}

	filename := uuid.New().String() + "_" + filepath.Base(file.Filename)
	storedPath := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to store file",
		})
		return
	}

	if err := gc.grievances.AttachImage(c.Param("id"), storedPath); err != nil {
		if errors.Is(err, services.ErrGrievanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Grievance not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to attach image",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    storedPath,
	})
}
