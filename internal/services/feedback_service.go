package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/civicpulse/backend/internal/logger"
	"github.com/civicpulse/backend/internal/models"
	"gorm.io/gorm"
)

// ErrInvalidRating signals a feedback rating outside the 1-5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// FeedbackService is the ledger of citizen satisfaction ratings.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Submit attaches a rating to a grievance. The rating must be in [1,5] and
// the grievance must exist; a citizen may submit more than one feedback
// entry for the same grievance.
func (fs *FeedbackService) Submit(grievanceID string, rating int, comment string, citizenID uint, citizenName string) (*models.Feedback, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	var grievance models.Grievance
	if err := fs.db.Where("grievance_id = ?", grievanceID).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to fetch grievance: %w", err)
	}

	feedback := &models.Feedback{
		GrievanceID: grievance.ID,
		Rating:      rating,
		Comment:     comment,
		GivenBy:     citizenID,
		GivenByName: citizenName,
		GivenAt:     time.Now(),
	}

	if err := fs.db.Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	logger.Info("Feedback submitted", map[string]interface{}{
		"grievanceId": grievanceID,
		"rating":      rating,
		"givenBy":     citizenID,
	})

	return feedback, nil
}

// List returns all feedback for a grievance in insertion order, or
// ErrGrievanceNotFound when the grievance does not exist.
func (fs *FeedbackService) List(grievanceID string) ([]models.Feedback, error) {
	var grievance models.Grievance
	if err := fs.db.Where("grievance_id = ?", grievanceID).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to fetch grievance: %w", err)
	}

	var feedbacks []models.Feedback
	if err := fs.db.Where("grievance_id = ?", grievance.ID).Order("id asc").Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return feedbacks, nil
}
