package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PropertyStatusAvailable = "available"
	PropertyStatusRented    = "rented"
	PropertyStatusPending   = "pending"
	PropertyStatusInactive  = "inactive"
)

type Property struct {
	gorm.Model
	OwnerID      uint   `json:"ownerID" gorm:"index;not null"`
	Title        string `json:"title" gorm:"size:200"`
	Description  string `json:"description" gorm:"type:text"`
	PropertyType string `json:"propertyType" gorm:"type:varchar(20)"` // apartment, house, condo, townhouse, studio, duplex
	Furnishing   string `json:"furnishing" gorm:"type:varchar(20);default:unfurnished"` // furnished, unfurnished, semi_furnished

	Address   string   `json:"address" gorm:"size:300"`
	City      string   `json:"city" gorm:"size:100;index"`
	State     string   `json:"state" gorm:"size:100"`
	ZipCode   string   `json:"zipCode" gorm:"size:10"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   float32 `json:"bathrooms"`
	SquareFeet  *int    `json:"squareFeet"`
	FloorNumber *int    `json:"floorNumber"`
	TotalFloors *int    `json:"totalFloors"`

	MonthlyRent     float64  `json:"monthlyRent"`
	SecurityDeposit *float64 `json:"securityDeposit"`

	UtilitiesIncluded  bool `json:"utilitiesIncluded" gorm:"default:false"`
	HasParking         bool `json:"hasParking" gorm:"default:false"`
	HasBalcony         bool `json:"hasBalcony" gorm:"default:false"`
	HasGarden          bool `json:"hasGarden" gorm:"default:false"`
	HasPool            bool `json:"hasPool" gorm:"default:false"`
	HasGym             bool `json:"hasGym" gorm:"default:false"`
	HasElevator        bool `json:"hasElevator" gorm:"default:false"`
	HasAirConditioning bool `json:"hasAirConditioning" gorm:"default:false"`
	HasHeating         bool `json:"hasHeating" gorm:"default:false"`
	HasWasherDryer     bool `json:"hasWasherDryer" gorm:"default:false"`
	PetFriendly        bool `json:"petFriendly" gorm:"default:false"`

	Status        string     `json:"status" gorm:"type:varchar(20);default:available;index"` // available, rented, pending, inactive
	IsFeatured    bool       `json:"isFeatured" gorm:"default:false"`
	IsApproved    bool       `json:"isApproved" gorm:"default:false;index"`
	AvailableFrom *time.Time `json:"availableFrom"`

	Owner        User              `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	Images       []PropertyImage   `json:"images,omitempty" gorm:"foreignKey:PropertyID"`
	Amenities    []PropertyAmenity `json:"amenities,omitempty" gorm:"foreignKey:PropertyID"`
	Applications []RentalApplication `json:"applications,omitempty" gorm:"foreignKey:PropertyID"`
}

// PubliclyVisible reports whether the listing may appear in public search.
func (p *Property) PubliclyVisible() bool {
	return p.IsApproved && p.Status == PropertyStatusAvailable
}
