package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/civicpulse/backend/internal/logger"
	"github.com/civicpulse/backend/internal/models"
	"gorm.io/gorm"
)

// ErrGrievanceNotFound signals that no grievance matches the given external id.
var ErrGrievanceNotFound = errors.New("grievance not found")

// GrievanceService is the lifecycle engine: it owns grievance creation and
// the single mutation path, and maintains the append-only timeline.
type GrievanceService struct {
	db  *gorm.DB
	ids IDGenerator
}

// NewGrievanceService creates a grievance service with the given id generator.
func NewGrievanceService(db *gorm.DB, ids IDGenerator) *GrievanceService {
	return &GrievanceService{db: db, ids: ids}
}

// CreateGrievanceInput carries the citizen-supplied fields of a new grievance.
type CreateGrievanceInput struct {
	Title           string
	Description     string
	Category        string
	LocationLat     float64
	LocationLng     float64
	LocationAddress string
	Zone            string
	Image           *string
}

// GrievancePatch is a partial update; only non-nil fields are applied.
type GrievancePatch struct {
	Status            *models.GrievanceStatus
	AssignedOfficerID *uint
	AssignedAt        *time.Time
	Deadline          *time.Time
	ResolutionNote    *string
	ResolutionImage   *string
	ResolvedAt        *time.Time
	LogMessage        *string
}

// Create registers a new grievance in PENDING with MEDIUM priority, stamps
// the submission time, seeds the timeline with the submission entry, and
// computes the SLA deadline before persisting.
func (s *GrievanceService) Create(input CreateGrievanceInput, submitterID uint, submitterName string) (*models.Grievance, error) {
	now := time.Now()

	zone := strings.TrimSpace(input.Zone)
	if zone == "" {
		zone = models.ZoneUnassigned
	}

	grievance := &models.Grievance{
		GrievanceID:     s.ids.NextGrievanceID(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Status:          models.StatusPending,
		Priority:        models.PriorityMedium,
		Zone:            zone,
		SubmittedBy:     submitterID,
		SubmittedAt:     now,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		LocationAddress: input.LocationAddress,
		Image:           input.Image,
		Timeline: []models.TimelineEntry{
			{
				Status:    models.StatusPending,
				Timestamp: now,
				Message:   "Grievance submitted by citizen",
				Actor:     submitterName,
			},
		},
	}

	CalculateDeadline(grievance)
	grievance.SLAStatus = ClassifySLA(grievance, now)

	if err := s.db.Create(grievance).Error; err != nil {
		return nil, fmt.Errorf("failed to create grievance: %w", err)
	}

	logger.Info("Grievance created", map[string]interface{}{
		"grievanceId": grievance.GrievanceID,
		"category":    grievance.Category,
		"zone":        grievance.Zone,
		"submittedBy": submitterID,
	})

	return grievance, nil
}

// Update applies a partial patch to the grievance with the given external id.
// At most one timeline entry is appended per call, and only when the status
// actually changes value.
func (s *GrievanceService) Update(grievanceID string, patch GrievancePatch, actorName string) (*models.Grievance, error) {
	var grievance models.Grievance
	if err := s.db.Where("grievance_id = ?", grievanceID).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to fetch grievance: %w", err)
	}

	entry := applyPatch(&grievance, patch, actorName, time.Now())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&grievance).Error; err != nil {
			return err
		}
		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update grievance: %w", err)
	}

	if entry != nil {
		logger.Info("Grievance status changed", map[string]interface{}{
			"grievanceId": grievance.GrievanceID,
			"status":      grievance.Status,
			"actor":       actorName,
		})
	}

	return s.GetByID(grievanceID)
}

// applyPatch mutates the grievance in memory and returns the timeline entry
// to append, or nil when the status did not change. Status values are applied
// as given: the engine imposes no transition graph, and any future transition
// validation belongs here.
func applyPatch(g *models.Grievance, patch GrievancePatch, actorName string, now time.Time) *models.TimelineEntry {
	var entry *models.TimelineEntry

	if patch.Status != nil && *patch.Status != g.Status {
		g.Status = *patch.Status
		message := "Status changed to " + string(*patch.Status)
		if patch.LogMessage != nil {
			message = *patch.LogMessage
		}
		entry = &models.TimelineEntry{
			GrievanceID: g.ID,
			Status:      *patch.Status,
			Timestamp:   now,
			Message:     message,
			Actor:       actorName,
		}
	}

	if patch.AssignedOfficerID != nil {
		g.AssignedOfficerID = patch.AssignedOfficerID
		if patch.AssignedAt != nil {
			g.AssignedAt = patch.AssignedAt
		} else {
			assignedAt := now
			g.AssignedAt = &assignedAt
		}
	}

	if patch.Deadline != nil {
		g.Deadline = patch.Deadline
	}
	if patch.ResolutionNote != nil {
		g.ResolutionNote = patch.ResolutionNote
	}
	if patch.ResolutionImage != nil {
		g.ResolutionImage = patch.ResolutionImage
	}
	if patch.ResolvedAt != nil {
		g.ResolvedAt = patch.ResolvedAt
	}

	return entry
}

// GetByID returns the grievance with the given external id, including its
// timeline and feedback, or ErrGrievanceNotFound.
func (s *GrievanceService) GetByID(grievanceID string) (*models.Grievance, error) {
	var grievance models.Grievance
	err := s.db.Preload("Timeline").Preload("Feedbacks").
		Where("grievance_id = ?", grievanceID).First(&grievance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to fetch grievance: %w", err)
	}
	return &grievance, nil
}

// ListAll returns every grievance, newest submissions first.
func (s *GrievanceService) ListAll() ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.db.Preload("Timeline").Preload("Feedbacks").
		Order("submitted_at desc").Find(&grievances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

// ListBySubmitter returns the grievances submitted by a citizen.
func (s *GrievanceService) ListBySubmitter(userID uint) ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.db.Preload("Timeline").Preload("Feedbacks").
		Where("submitted_by = ?", userID).Order("submitted_at desc").Find(&grievances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

// ListByOfficer returns the grievances assigned to an officer.
func (s *GrievanceService) ListByOfficer(officerID uint) ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.db.Preload("Timeline").Preload("Feedbacks").
		Where("assigned_officer_id = ?", officerID).Order("submitted_at desc").Find(&grievances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

// ListByStatus returns the grievances currently in the given status.
func (s *GrievanceService) ListByStatus(status models.GrievanceStatus) ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.db.Preload("Timeline").Preload("Feedbacks").
		Where("status = ?", status).Order("submitted_at desc").Find(&grievances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}
	return grievances, nil
}

// AttachImage stores an uploaded image path on the grievance. The first
// upload becomes the submission image; any later upload is treated as the
// resolution image.
func (s *GrievanceService) AttachImage(grievanceID string, imagePath string) error {
	var grievance models.Grievance
	if err := s.db.Where("grievance_id = ?", grievanceID).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrievanceNotFound
		}
		return fmt.Errorf("failed to fetch grievance: %w", err)
	}

	if grievance.Image == nil {
		grievance.Image = &imagePath
	} else {
		grievance.ResolutionImage = &imagePath
	}

	if err := s.db.Save(&grievance).Error; err != nil {
		return fmt.Errorf("failed to attach image: %w", err)
	}
	return nil
}
