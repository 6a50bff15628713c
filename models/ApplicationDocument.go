package models

import (
	"gorm.io/gorm"
)

const (
	DocumentTypeID               = "id"
	DocumentTypePayStub          = "pay_stub"
	DocumentTypeBankStatement    = "bank_statement"
	DocumentTypeEmploymentLetter = "employment_letter"
	DocumentTypeReferenceLetter  = "reference_letter"
	DocumentTypeOther            = "other"
)

// DocumentTypes is the closed set of accepted attachment kinds.
var DocumentTypes = []string{
	DocumentTypeID,
	DocumentTypePayStub,
	DocumentTypeBankStatement,
	DocumentTypeEmploymentLetter,
	DocumentTypeReferenceLetter,
	DocumentTypeOther,
}

// ApplicationDocument stores only the storage reference for an uploaded file;
// the payload itself lives in Cloudinary.
type ApplicationDocument struct {
	gorm.Model
	ApplicationID uint   `json:"applicationID" gorm:"index;not null"`
	DocumentType  string `json:"documentType" gorm:"type:varchar(20)"` // id, pay_stub, bank_statement, employment_letter, reference_letter, other
	FileURL       string `json:"fileURL" gorm:"size:512"`
	Description   string `json:"description" gorm:"size:200"`
}
