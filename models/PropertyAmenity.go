package models

import (
	"gorm.io/gorm"
)

type PropertyAmenity struct {
	gorm.Model
	PropertyID  uint   `json:"propertyID" gorm:"index;not null"`
	Name        string `json:"name" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`
}
