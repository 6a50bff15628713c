package routes

import (
	"errors"
	"fmt"
	"time"

	"homelet-server/models"
	"homelet-server/services"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// scopedApplications applies the one visibility rule shared by the list,
// detail, stats and update endpoints: renters see their own applications,
// homeowners see applications on their own listings, admins see everything.
// Anything outside the scope reads as absent, not forbidden.
func scopedApplications(db *gorm.DB, claims *utils.AccessToken) *gorm.DB {
	switch claims.Role {
	case models.RoleRenter:
		return db.Where("rental_applications.applicant_id = ?", claims.ID)
	case models.RoleHomeowner:
		return db.Joins("JOIN properties ON properties.id = rental_applications.property_id").
			Where("properties.owner_id = ?", claims.ID)
	case models.RoleAdmin:
		return db
	default:
		return db.Where("1 = 0")
	}
}

func ListApplications(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var applications []models.RentalApplication
	err := scopedApplications(storage.DB.Model(&models.RentalApplication{}), claims).
		Preload("Property").Preload("Applicant").Preload("ReviewedBy").
		Order("rental_applications.created_at DESC").
		Find(&applications).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(applications)
}

func GetApplication(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var application models.RentalApplication
	err := scopedApplications(storage.DB.Model(&models.RentalApplication{}), claims).
		Preload("Property").Preload("Applicant").Preload("ReviewedBy").
		Preload("Documents").Preload("Messages").Preload("Messages.Sender").
		First(&application, "rental_applications.id = ?", id).Error
	if err != nil {
		// Out-of-scope ids read the same as missing ones.
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(application)
}

func CreateApplication(ctx iris.Context) {
	claims := utils.Claims(ctx)
	if claims.Role != models.RoleRenter {
		utils.CreateForbidden("Only renters can create rental applications.", ctx)
		return
	}

	var input CreateApplicationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	moveInDate, dateErr := time.Parse("2006-01-02", input.MoveInDate)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "moveInDate must be YYYY-MM-DD.", ctx)
		return
	}

	leaseDuration := input.LeaseDurationMonths
	if leaseDuration == 0 {
		leaseDuration = 12
	}

	for _, doc := range input.Documents {
		if !slices.Contains(models.DocumentTypes, doc.DocumentType) {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid document type: "+doc.DocumentType, ctx)
			return
		}
	}

	application := models.RentalApplication{
		PropertyID:             property.ID,
		ApplicantID:            claims.ID,
		Status:                 models.ApplicationStatusPending,
		Message:                input.Message,
		MoveInDate:             moveInDate,
		LeaseDurationMonths:    leaseDuration,
		MonthlyIncome:          input.MonthlyIncome,
		EmploymentStatus:       input.EmploymentStatus,
		EmployerName:           input.EmployerName,
		EmployerPhone:          input.EmployerPhone,
		Reference1Name:         input.Reference1Name,
		Reference1Phone:        input.Reference1Phone,
		Reference1Relationship: input.Reference1Relationship,
		Reference2Name:         input.Reference2Name,
		Reference2Phone:        input.Reference2Phone,
		Reference2Relationship: input.Reference2Relationship,
		HasPets:                input.HasPets,
		PetDetails:             input.PetDetails,
		AdditionalNotes:        input.AdditionalNotes,
	}

	// File payloads go to storage first; the database rows for the
	// application and its documents then commit in one transaction. The
	// composite unique index settles concurrent duplicate submits.
	fileURLs := make([]string, len(input.Documents))
	for i, doc := range input.Documents {
		url := storage.UploadBase64Document(doc.Data, fmt.Sprintf("application_doc_%s", uuid.NewString()))
		if url == "" {
			utils.CreateError(iris.StatusBadRequest, "Upload Error", "Document upload failed.", ctx)
			return
		}
		fileURLs[i] = url
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&application).Error; err != nil {
			return err
		}
		for i, doc := range input.Documents {
			document := models.ApplicationDocument{
				ApplicationID: application.ID,
				DocumentType:  doc.DocumentType,
				FileURL:       fileURLs[i],
				Description:   doc.Description,
			}
			if err := tx.Create(&document).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			utils.CreateConflict("You have already applied for this property.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotificationService().NotifyApplicationReceived(
		property.OwnerID, senderName(claims.ID), property.Title, application.ID)

	storage.DB.Preload("Property").Preload("Applicant").Preload("Documents").
		First(&application, application.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(application)
}

// UpdateApplicationStatus transitions an application. Only the listing owner
// or an admin may review; the reviewer stamp and timestamp are written
// atomically with the status. Terminal states are immutable.
func UpdateApplicationStatus(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	// Wrong-role callers get an explicit permission failure on the write
	// path, unlike the masked read path.
	if claims.Role == models.RoleRenter {
		utils.CreateForbidden("Only the listing owner or an admin can review applications.", ctx)
		return
	}

	var input UpdateApplicationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains(models.ApplicationStatuses, input.Status) {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid application status.", ctx)
		return
	}

	var application models.RentalApplication
	err := scopedApplications(storage.DB.Model(&models.RentalApplication{}), claims).
		Preload("Property").
		First(&application, "rental_applications.id = ?", id).Error
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !application.IsPending() {
		utils.CreateConflict("Application has already been "+application.Status+".", ctx)
		return
	}

	now := time.Now()
	reviewerID := claims.ID
	updates := map[string]interface{}{
		"status":         input.Status,
		"reviewed_by_id": reviewerID,
		"reviewed_at":    now,
	}

	if err := storage.DB.Model(&application).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotificationService().NotifyApplicationStatus(
		application.ApplicantID, application.Property.Title, input.Status, application.ID)

	storage.DB.Preload("Property").Preload("Applicant").Preload("ReviewedBy").
		First(&application, application.ID)

	ctx.JSON(application)
}

// ApplicationStats aggregates counts under the same visibility scope as the
// list endpoint.
func ApplicationStats(ctx iris.Context) {
	claims := utils.Claims(ctx)

	countWhere := func(status string) int64 {
		query := scopedApplications(storage.DB.Model(&models.RentalApplication{}), claims)
		if status != "" {
			query = query.Where("rental_applications.status = ?", status)
		}
		var count int64
		query.Count(&count)
		return count
	}

	ctx.JSON(iris.Map{
		"total_applications":    countWhere(""),
		"pending_applications":  countWhere(models.ApplicationStatusPending),
		"approved_applications": countWhere(models.ApplicationStatusApproved),
		"rejected_applications": countWhere(models.ApplicationStatusRejected),
	})
}

func senderName(userID uint) string {
	var user models.User
	if err := storage.DB.Select("id, first_name, last_name").First(&user, userID).Error; err != nil {
		return "Someone"
	}
	return user.FullName()
}

type ApplicationDocumentInput struct {
	DocumentType string `json:"documentType" validate:"required"`
	Data         string `json:"data" validate:"required"`
	Description  string `json:"description" validate:"omitempty,max=200"`
}

type CreateApplicationInput struct {
	PropertyID          uint   `json:"propertyID" validate:"required"`
	Message             string `json:"message"`
	MoveInDate          string `json:"moveInDate" validate:"required"`
	LeaseDurationMonths int    `json:"leaseDurationMonths" validate:"omitempty,min=1,max=60"`

	MonthlyIncome    *float64 `json:"monthlyIncome"`
	EmploymentStatus string   `json:"employmentStatus" validate:"omitempty,max=50"`
	EmployerName     string   `json:"employerName" validate:"omitempty,max=100"`
	EmployerPhone    string   `json:"employerPhone" validate:"omitempty,max=20"`

	Reference1Name         string `json:"reference1Name" validate:"omitempty,max=100"`
	Reference1Phone        string `json:"reference1Phone" validate:"omitempty,max=20"`
	Reference1Relationship string `json:"reference1Relationship" validate:"omitempty,max=50"`
	Reference2Name         string `json:"reference2Name" validate:"omitempty,max=100"`
	Reference2Phone        string `json:"reference2Phone" validate:"omitempty,max=20"`
	Reference2Relationship string `json:"reference2Relationship" validate:"omitempty,max=50"`

	HasPets         bool   `json:"hasPets"`
	PetDetails      string `json:"petDetails"`
	AdditionalNotes string `json:"additionalNotes"`

	Documents []ApplicationDocumentInput `json:"documents"`
}

type UpdateApplicationStatusInput struct {
	Status string `json:"status" validate:"required"`
}
