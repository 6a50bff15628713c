package routes

import (
	"fmt"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

func ListApplicationDocuments(ctx iris.Context) {
	application, ok := threadApplication(ctx)
	if !ok {
		return
	}

	claims := utils.Claims(ctx)
	if !canReadThread(application, claims) {
		utils.CreateForbidden("You don't have permission to view this application.", ctx)
		return
	}

	var documents []models.ApplicationDocument
	err := storage.DB.Where("application_id = ?", application.ID).
		Order("created_at ASC").
		Find(&documents).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(documents)
}

// UploadApplicationDocument is applicant-only: the listing owner and admins
// can read the document set but never add to it.
func UploadApplicationDocument(ctx iris.Context) {
	application, ok := threadApplication(ctx)
	if !ok {
		return
	}

	claims := utils.Claims(ctx)
	if claims.ID != application.ApplicantID {
		utils.CreateForbidden("Only the applicant can upload documents.", ctx)
		return
	}

	var input ApplicationDocumentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains(models.DocumentTypes, input.DocumentType) {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid document type: "+input.DocumentType, ctx)
		return
	}

	url := storage.UploadBase64Document(input.Data, fmt.Sprintf("application_doc_%s", uuid.NewString()))
	if url == "" {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Document upload failed.", ctx)
		return
	}

	document := models.ApplicationDocument{
		ApplicationID: application.ID,
		DocumentType:  input.DocumentType,
		FileURL:       url,
		Description:   input.Description,
	}

	if err := storage.DB.Create(&document).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(document)
}
