package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

// ApplicationStatuses are the valid targets for a status transition.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

// RentalApplication is a renter's request to rent one property. The composite
// unique index keeps it to at most one application per (property, applicant)
// pair; a concurrent duplicate submit loses at the constraint, not in app code.
type RentalApplication struct {
	gorm.Model
	PropertyID  uint `json:"propertyID" gorm:"not null;uniqueIndex:idx_app_property_applicant"`
	ApplicantID uint `json:"applicantID" gorm:"not null;uniqueIndex:idx_app_property_applicant"`

	Status  string `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected, withdrawn
	Message string `json:"message" gorm:"type:text"`

	MoveInDate          time.Time `json:"moveInDate"`
	LeaseDurationMonths int       `json:"leaseDurationMonths" gorm:"default:12"`

	MonthlyIncome    *float64 `json:"monthlyIncome"`
	EmploymentStatus string   `json:"employmentStatus" gorm:"size:50"`
	EmployerName     string   `json:"employerName" gorm:"size:100"`
	EmployerPhone    string   `json:"employerPhone" gorm:"size:20"`

	Reference1Name         string `json:"reference1Name" gorm:"size:100"`
	Reference1Phone        string `json:"reference1Phone" gorm:"size:20"`
	Reference1Relationship string `json:"reference1Relationship" gorm:"size:50"`
	Reference2Name         string `json:"reference2Name" gorm:"size:100"`
	Reference2Phone        string `json:"reference2Phone" gorm:"size:20"`
	Reference2Relationship string `json:"reference2Relationship" gorm:"size:50"`

	HasPets         bool   `json:"hasPets" gorm:"default:false"`
	PetDetails      string `json:"petDetails" gorm:"type:text"`
	AdditionalNotes string `json:"additionalNotes" gorm:"type:text"`

	// ReviewedAt and ReviewedBy are written together, only by a status
	// transition from the listing owner or an admin.
	ReviewedAt   *time.Time `json:"reviewedAt"`
	ReviewedByID *uint      `json:"reviewedByID"`

	Property   Property `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	Applicant  User     `json:"applicant" gorm:"foreignKey:ApplicantID;references:ID"`
	ReviewedBy *User    `json:"reviewedBy,omitempty" gorm:"foreignKey:ReviewedByID;references:ID"`

	Documents []ApplicationDocument `json:"documents,omitempty" gorm:"foreignKey:ApplicationID"`
	Messages  []ApplicationMessage  `json:"messages,omitempty" gorm:"foreignKey:ApplicationID"`
}

func (a *RentalApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}
