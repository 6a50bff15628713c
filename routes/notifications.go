package routes

import (
	"time"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/kataras/iris/v12"
)

func ListNotifications(ctx iris.Context) {
	claims := utils.Claims(ctx)

	limit := ctx.URLParamIntDefault("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	err := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var unread int64
	storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", claims.ID).
		Count(&unread)

	ctx.JSON(iris.Map{"notifications": notifications, "unreadCount": unread})
}

func MarkNotificationRead(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&notification, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notification)
}
