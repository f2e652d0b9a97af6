package models

import (
	"time"
)

type GrievanceStatus string
type GrievancePriority string
type SLAStatus string

const (
	StatusPending    GrievanceStatus = "PENDING"
	StatusAssigned   GrievanceStatus = "ASSIGNED"
	StatusInProgress GrievanceStatus = "IN_PROGRESS"
	StatusResolved   GrievanceStatus = "RESOLVED"
)

const (
	PriorityLow    GrievancePriority = "LOW"
	PriorityMedium GrievancePriority = "MEDIUM"
	PriorityHigh   GrievancePriority = "HIGH"
	PriorityUrgent GrievancePriority = "URGENT"
)

const (
	SLAOnTime  SLAStatus = "ON_TIME"
	SLADelayed SLAStatus = "DELAYED"
	SLAOverdue SLAStatus = "OVERDUE"
)

// ZoneUnassigned is the placeholder zone label for grievances submitted
// without a zone.
const ZoneUnassigned = "Unassigned"

type Grievance struct {
	ID                uint              `json:"-" gorm:"primaryKey"`
	GrievanceID       string            `json:"id" gorm:"uniqueIndex;not null"`
	Title             string            `json:"title" gorm:"not null"`
	Description       string            `json:"description" gorm:"type:text;not null"`
	Category          string            `json:"category" gorm:"not null"`
	Status            GrievanceStatus   `json:"status" gorm:"not null;default:'PENDING'"`
	Priority          GrievancePriority `json:"priority" gorm:"not null;default:'MEDIUM'"`
	Zone              string            `json:"zone" gorm:"not null;default:'Unassigned'"`
	SubmittedBy       uint              `json:"submittedBy" gorm:"not null"`
	SubmittedAt       time.Time         `json:"submittedAt" gorm:"not null"`
	LocationLat       float64           `json:"locationLat" gorm:"not null"`
	LocationLng       float64           `json:"locationLng" gorm:"not null"`
	LocationAddress   string            `json:"locationAddress" gorm:"not null"`
	Image             *string           `json:"image"`
	AssignedOfficerID *uint             `json:"assignedOfficerId"`
	AssignedAt        *time.Time        `json:"assignedAt"`
	SLAHours          int               `json:"slaHours"`
	Deadline          *time.Time        `json:"deadline"`
	SLAStatus         SLAStatus         `json:"slaStatus" gorm:"default:'ON_TIME'"`
	ResolutionNote    *string           `json:"resolutionNote" gorm:"type:text"`
	ResolutionImage   *string           `json:"resolutionImage"`
	ResolvedAt        *time.Time        `json:"resolvedAt"`
	Timeline          []TimelineEntry   `json:"timeline" gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE"`
	Feedbacks         []Feedback        `json:"feedbacks" gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func (Grievance) TableName() string {
	return "grievances"
}

// TimelineEntry is an append-only audit record of a status change. Entries
// are owned by their grievance and carry no back-reference; ordering is
// insertion order.
type TimelineEntry struct {
	ID          uint            `json:"-" gorm:"primaryKey"`
	GrievanceID uint            `json:"-" gorm:"not null;index"`
	Status      GrievanceStatus `json:"status" gorm:"not null"`
	Timestamp   time.Time       `json:"timestamp" gorm:"not null"`
	Message     string          `json:"message" gorm:"not null"`
	Actor       string          `json:"actor" gorm:"not null"`
}

func (TimelineEntry) TableName() string {
	return "timeline_entries"
}

// Feedback is a citizen satisfaction rating (1-5) attached to a grievance.
// A citizen may submit more than one.
type Feedback struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	GrievanceID uint      `json:"grievanceId" gorm:"not null;index"`
	Rating      int       `json:"rating" gorm:"not null"`
	Comment     string    `json:"comment" gorm:"type:text"`
	GivenBy     uint      `json:"givenBy" gorm:"not null"`
	GivenByName string    `json:"givenByName"`
	GivenAt     time.Time `json:"givenAt" gorm:"not null"`
}

func (Feedback) TableName() string {
	return "feedback"
}
