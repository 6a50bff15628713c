package routes

import (
	"fmt"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ListPropertyImages is public for approved listings, owner-visible otherwise.
func ListPropertyImages(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Where("is_approved = ?", true).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var images []models.PropertyImage
	storage.DB.Where("property_id = ?", property.ID).
		Order("sort_order ASC, created_at ASC").
		Find(&images)

	ctx.JSON(images)
}

func UploadPropertyImage(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UploadPropertyImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url := storage.UploadBase64Image(input.Data, fmt.Sprintf("property_%d_%s", property.ID, uuid.NewString()))
	if url == "" {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Image upload failed.", ctx)
		return
	}

	image := models.PropertyImage{
		PropertyID: property.ID,
		URL:        url,
		Caption:    input.Caption,
		IsPrimary:  input.IsPrimary,
		Order:      input.Order,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsPrimary {
			if err := tx.Model(&models.PropertyImage{}).
				Where("property_id = ?", property.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&image).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(image)
}

func DeletePropertyImage(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)
	imageID := ctx.Params().GetUintDefault("imageID", 0)

	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var image models.PropertyImage
	if err := storage.DB.Where("property_id = ?", property.ID).First(&image, imageID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DeleteImage(image.URL)
	if err := storage.DB.Delete(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func SetPrimaryImage(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)
	imageID := ctx.Params().GetUintDefault("imageID", 0)

	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var image models.PropertyImage
	if err := storage.DB.Where("property_id = ?", property.ID).First(&image, imageID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ?", property.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("is_primary", true).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Primary image updated"})
}

type UploadPropertyImageInput struct {
	Data      string `json:"data" validate:"required"`
	Caption   string `json:"caption" validate:"omitempty,max=200"`
	IsPrimary bool   `json:"isPrimary"`
	Order     int    `json:"order"`
}
