package services

import (
	"errors"
	"fmt"

	"github.com/civicpulse/backend/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound signals that no user matches the given id.
var ErrUserNotFound = errors.New("user not found")

// PerformanceService rolls citizen feedback and assignment outcomes up into
// per-officer performance figures.
type PerformanceService struct {
	db *gorm.DB
}

// NewPerformanceService creates a new performance service.
func NewPerformanceService(db *gorm.DB) *PerformanceService {
	return &PerformanceService{db: db}
}

// GetOfficerPerformance returns the rollup for a single officer.
func (ps *PerformanceService) GetOfficerPerformance(officerID uint) (*models.OfficerPerformance, error) {
	var officer models.User
	if err := ps.db.First(&officer, officerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch officer: %w", err)
	}

	var grievances []models.Grievance
	if err := ps.db.Preload("Feedbacks").Where("assigned_officer_id = ?", officerID).Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch grievances: %w", err)
	}

	perf := rollupPerformance(officer, grievances)
	return &perf, nil
}

// GetAllOfficerPerformance returns the rollup for every officer, in user-id
// order.
func (ps *PerformanceService) GetAllOfficerPerformance() ([]models.OfficerPerformance, error) {
	var officers []models.User
	if err := ps.db.Where("role = ?", models.RoleOfficer).Order("id asc").Find(&officers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch officers: %w", err)
	}

	result := make([]models.OfficerPerformance, 0, len(officers))
	for _, officer := range officers {
		var grievances []models.Grievance
		if err := ps.db.Preload("Feedbacks").Where("assigned_officer_id = ?", officer.ID).Find(&grievances).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch grievances: %w", err)
		}
		result = append(result, rollupPerformance(officer, grievances))
	}
	return result, nil
}

// rollupPerformance aggregates an officer's caseload and its feedback.
// Ratings of 2 or below count as warnings, 4 or above as appreciations.
func rollupPerformance(officer models.User, grievances []models.Grievance) models.OfficerPerformance {
	perf := models.OfficerPerformance{
		OfficerID:     officer.ID,
		OfficerName:   officer.Name,
		Department:    officer.Department,
		AssignedCount: len(grievances),
	}

	var ratingSum int
	for _, g := range grievances {
		if g.Status == models.StatusResolved {
			perf.ResolvedCount++
		}
		for _, fb := range g.Feedbacks {
			perf.FeedbackCount++
			ratingSum += fb.Rating
			if fb.Rating <= 2 {
				perf.WarningsCount++
			}
			if fb.Rating >= 4 {
				perf.AppreciationsCount++
			}
		}
	}

	if perf.FeedbackCount > 0 {
		perf.AverageRating = round2(float64(ratingSum) / float64(perf.FeedbackCount))
	}
	return perf
}
