package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleHomeowner = "homeowner"
	RoleRenter    = "renter"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email" gorm:"uniqueIndex;size:256"`
	Password          string `json:"-"`
	PhoneNumber       string `json:"phoneNumber" gorm:"size:20"`
	Role              string `json:"role" gorm:"type:varchar(20);index"` // homeowner, renter, admin
	ProfilePictureURL string `json:"profilePictureURL" gorm:"size:512"`
	IsVerified        *bool  `json:"isVerified" gorm:"default:false"`
	SavedProperties   datatypes.JSON `json:"savedProperties"`

	Properties         []Property          `json:"properties,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	RentalApplications []RentalApplication `json:"rentalApplications,omitempty" gorm:"foreignKey:ApplicantID;references:ID"`
	HomeownerProfile   *HomeownerProfile   `json:"homeownerProfile,omitempty" gorm:"foreignKey:UserID"`
	RenterProfile      *RenterProfile      `json:"renterProfile,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsHomeowner() bool { return u.Role == RoleHomeowner }
func (u *User) IsRenter() bool    { return u.Role == RoleRenter }
func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }

// MarshalJSON renders SavedProperties as an array instead of raw JSON bytes.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		SavedProperties []uint `json:"savedProperties"`
		*Alias
	}{
		SavedProperties: []uint{},
		Alias:           (*Alias)(u),
	}

	if u.SavedProperties != nil {
		var saved []uint
		if err := json.Unmarshal(u.SavedProperties, &saved); err == nil {
			aux.SavedProperties = saved
		}
	}

	return json.Marshal(aux)
}
