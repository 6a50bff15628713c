package models

import (
	"gorm.io/gorm"
)

// HomeownerProfile holds the role-specific data for a homeowner account.
// It is created in the same transaction as the User row at registration,
// so a homeowner always has exactly one.
type HomeownerProfile struct {
	gorm.Model
	UserID             uint   `json:"userID" gorm:"not null;uniqueIndex"`
	Bio                string `json:"bio" gorm:"type:text"`
	CompanyName        string `json:"companyName" gorm:"size:100"`
	LicenseNumber      string `json:"licenseNumber" gorm:"size:50"`
	Address            string `json:"address" gorm:"type:text"`
	IsVerifiedLandlord bool   `json:"isVerifiedLandlord" gorm:"default:false"`
}
