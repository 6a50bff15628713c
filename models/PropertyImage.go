package models

import (
	"gorm.io/gorm"
)

type PropertyImage struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"index;not null"`
	URL        string `json:"url" gorm:"size:512"`
	Caption    string `json:"caption" gorm:"size:200"`
	IsPrimary  bool   `json:"isPrimary" gorm:"default:false"`
	Order      int    `json:"order" gorm:"column:sort_order;default:0"`
}
