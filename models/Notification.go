package models

import (
	"time"
)

type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userID" gorm:"index;not null"`
	Type      string     `json:"type" gorm:"size:32;index"` // application_received, application_status, application_message
	Title     string     `json:"title" gorm:"size:200"`
	Body      string     `json:"body" gorm:"type:text"`
	RefType   string     `json:"refType" gorm:"size:32"` // application
	RefID     *uint      `json:"refID" gorm:"index"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}
