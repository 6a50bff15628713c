package models

import (
	"gorm.io/gorm"
)

// ApplicationMessage is one entry in an application's thread between the
// applicant and the listing owner. IsFromOwner is computed once at send time
// from sender == property owner and never rewritten, even if the listing
// changes hands later.
type ApplicationMessage struct {
	gorm.Model
	ApplicationID uint   `json:"applicationID" gorm:"index;not null"`
	SenderID      uint   `json:"senderID" gorm:"not null"`
	Message       string `json:"message" gorm:"type:text"`
	IsFromOwner   bool   `json:"isFromOwner" gorm:"default:false"`

	Sender User `json:"sender" gorm:"foreignKey:SenderID;references:ID"`
}
