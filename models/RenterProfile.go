package models

import (
	"gorm.io/gorm"
)

// RenterProfile holds the role-specific data for a renter account.
type RenterProfile struct {
	gorm.Model
	UserID            uint     `json:"userID" gorm:"not null;uniqueIndex"`
	Bio               string   `json:"bio" gorm:"type:text"`
	EmploymentStatus  string   `json:"employmentStatus" gorm:"size:50"`
	AnnualIncome      *float64 `json:"annualIncome"`
	CreditScore       *int     `json:"creditScore"`
	References        string   `json:"references" gorm:"type:text"`
	PreferredLocation string   `json:"preferredLocation" gorm:"size:100"`
	BudgetMin         *float64 `json:"budgetMin"`
	BudgetMax         *float64 `json:"budgetMax"`
}
