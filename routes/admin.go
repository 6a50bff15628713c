package routes

import (
	"time"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var totalUsers, totalProperties, pendingApproval int64
	storage.DB.Model(&models.User{}).Count(&totalUsers)
	storage.DB.Model(&models.Property{}).Count(&totalProperties)
	storage.DB.Model(&models.Property{}).Where("is_approved = ?", false).Count(&pendingApproval)

	var totalApplications, pendingApplications int64
	storage.DB.Model(&models.RentalApplication{}).Count(&totalApplications)
	storage.DB.Model(&models.RentalApplication{}).
		Where("status = ?", models.ApplicationStatusPending).
		Count(&pendingApplications)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newApps7, newApps30 int64
	storage.DB.Model(&models.RentalApplication{}).Where("created_at >= ?", since7).Count(&newApps7)
	storage.DB.Model(&models.RentalApplication{}).Where("created_at >= ?", since30).Count(&newApps30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"total_users":          totalUsers,
			"total_properties":     totalProperties,
			"pending_approval":     pendingApproval,
			"total_applications":   totalApplications,
			"pending_applications": pendingApplications,
			"new_applications_7d":  newApps7,
			"new_applications_30d": newApps30,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /api/admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}

// GET /api/admin/properties?approved=false
func AdminListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Property{})
	if approved := ctx.URLParam("approved"); approved != "" {
		query = query.Where("is_approved = ?", approved == "true")
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	query.Preload("Owner").Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&properties)

	utils.JSONPage(ctx, properties, page, perPage, total)
}

// POST /api/admin/properties/{id}/approve
func AdminApproveProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input AdminApprovePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := property
	property.IsApproved = input.Approved
	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	action := "property.unapprove"
	if input.Approved {
		action = "property.approve"
	}
	utils.Audit(ctx, action, "property", property.ID,
		iris.Map{"isApproved": before.IsApproved},
		iris.Map{"isApproved": property.IsApproved})

	ctx.JSON(property)
}

type AdminApprovePropertyInput struct {
	Approved bool `json:"approved"`
}
