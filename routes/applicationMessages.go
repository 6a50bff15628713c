package routes

import (
	"homelet-server/models"
	"homelet-server/services"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/kataras/iris/v12"
)

// threadApplication loads an application with its property for the message
// and document endpoints. Unknown ids are a plain 404 before any permission
// check runs.
func threadApplication(ctx iris.Context) (*models.RentalApplication, bool) {
	id := ctx.Params().GetUintDefault("id", 0)

	var application models.RentalApplication
	if err := storage.DB.Preload("Property").First(&application, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &application, true
}

func canReadThread(application *models.RentalApplication, claims *utils.AccessToken) bool {
	return claims.ID == application.ApplicantID ||
		claims.ID == application.Property.OwnerID ||
		claims.Role == models.RoleAdmin
}

// canPostToThread deliberately excludes admins: they can observe a thread
// but never speak in it.
func canPostToThread(application *models.RentalApplication, claims *utils.AccessToken) bool {
	return claims.ID == application.ApplicantID ||
		claims.ID == application.Property.OwnerID
}

// ListApplicationMessages returns the thread oldest first.
func ListApplicationMessages(ctx iris.Context) {
	application, ok := threadApplication(ctx)
	if !ok {
		return
	}

	claims := utils.Claims(ctx)
	if !canReadThread(application, claims) {
		utils.CreateForbidden("You don't have permission to view this application.", ctx)
		return
	}

	var messages []models.ApplicationMessage
	err := storage.DB.Preload("Sender").
		Where("application_id = ?", application.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(messages)
}

func CreateApplicationMessage(ctx iris.Context) {
	application, ok := threadApplication(ctx)
	if !ok {
		return
	}

	claims := utils.Claims(ctx)
	if !canPostToThread(application, claims) {
		utils.CreateForbidden("You don't have permission to send messages for this application.", ctx)
		return
	}

	var input CreateApplicationMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// The owner flag is fixed at send time; a later ownership change never
	// rewrites history.
	message := models.ApplicationMessage{
		ApplicationID: application.ID,
		SenderID:      claims.ID,
		Message:       input.Message,
		IsFromOwner:   claims.ID == application.Property.OwnerID,
	}

	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	recipientID := application.ApplicantID
	if claims.ID == application.ApplicantID {
		recipientID = application.Property.OwnerID
	}
	go services.NewNotificationService().NotifyApplicationMessage(
		recipientID, senderName(claims.ID), application.Property.Title, application.ID)

	storage.DB.Preload("Sender").First(&message, message.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

type CreateApplicationMessageInput struct {
	Message string `json:"message" validate:"required,max=5000"`
}
