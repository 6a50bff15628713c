package routes

import (
	"time"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var propertyTypes = []string{"apartment", "house", "condo", "townhouse", "studio", "duplex"}
var furnishingChoices = []string{"furnished", "unfurnished", "semi_furnished"}

var propertyBoolFilters = map[string]string{
	"has_parking":          "has_parking",
	"has_balcony":          "has_balcony",
	"has_garden":           "has_garden",
	"has_pool":             "has_pool",
	"has_gym":              "has_gym",
	"has_elevator":         "has_elevator",
	"has_air_conditioning": "has_air_conditioning",
	"has_heating":          "has_heating",
	"has_washer_dryer":     "has_washer_dryer",
	"pet_friendly":         "pet_friendly",
	"utilities_included":   "utilities_included",
}

// publicProperties is the base query for anything a non-owner may see: the
// listing must be approved and operationally available.
func publicProperties(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Property{}).
		Where("is_approved = ? AND status = ?", true, models.PropertyStatusAvailable)
}

func applyPropertyFilters(ctx iris.Context, query *gorm.DB) *gorm.DB {
	if search := ctx.URLParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR city LIKE ? OR state LIKE ? OR address LIKE ?",
			like, like, like, like, like)
	}
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("city LIKE ?", "%"+city+"%")
	}
	if state := ctx.URLParam("state"); state != "" {
		query = query.Where("state LIKE ?", "%"+state+"%")
	}
	if propertyType := ctx.URLParam("property_type"); propertyType != "" {
		query = query.Where("property_type = ?", propertyType)
	}
	if furnishing := ctx.URLParam("furnishing"); furnishing != "" {
		query = query.Where("furnishing = ?", furnishing)
	}

	if minPrice, err := ctx.URLParamFloat64("min_price"); err == nil {
		query = query.Where("monthly_rent >= ?", minPrice)
	}
	if maxPrice, err := ctx.URLParamFloat64("max_price"); err == nil {
		query = query.Where("monthly_rent <= ?", maxPrice)
	}
	if minBedrooms, err := ctx.URLParamInt("min_bedrooms"); err == nil {
		query = query.Where("bedrooms >= ?", minBedrooms)
	}
	if maxBedrooms, err := ctx.URLParamInt("max_bedrooms"); err == nil {
		query = query.Where("bedrooms <= ?", maxBedrooms)
	}
	if minBathrooms, err := ctx.URLParamFloat64("min_bathrooms"); err == nil {
		query = query.Where("bathrooms >= ?", minBathrooms)
	}
	if maxBathrooms, err := ctx.URLParamFloat64("max_bathrooms"); err == nil {
		query = query.Where("bathrooms <= ?", maxBathrooms)
	}

	for param, column := range propertyBoolFilters {
		if value := ctx.URLParam(param); value != "" {
			query = query.Where(column+" = ?", value == "true")
		}
	}

	return query
}

// ListProperties is the public search endpoint: approved+available listings
// only, filterable, featured first then newest.
func ListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := applyPropertyFilters(ctx, publicProperties(storage.DB))

	var total int64
	query.Count(&total)

	var properties []models.Property
	err := query.Preload("Images").Preload("Owner").
		Order("is_featured DESC, created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

// PropertyStats is the public aggregate endpoint over visible listings.
func PropertyStats(ctx iris.Context) {
	base := publicProperties(storage.DB)

	var total int64
	base.Session(&gorm.Session{}).Count(&total)

	var priceStats struct {
		AvgPrice *float64
		MinPrice *float64
		MaxPrice *float64
	}
	base.Session(&gorm.Session{}).
		Select("AVG(monthly_rent) as avg_price, MIN(monthly_rent) as min_price, MAX(monthly_rent) as max_price").
		Scan(&priceStats)

	type groupCount struct {
		Key   string
		Count int64
	}
	var cities []groupCount
	base.Session(&gorm.Session{}).
		Select("city as key, COUNT(*) as count").Group("city").Scan(&cities)

	var types []groupCount
	base.Session(&gorm.Session{}).
		Select("property_type as key, COUNT(*) as count").Group("property_type").Scan(&types)

	cityCounts := iris.Map{}
	for _, c := range cities {
		cityCounts[c.Key] = c.Count
	}
	typeCounts := iris.Map{}
	for _, t := range types {
		typeCounts[t.Key] = t.Count
	}

	ctx.JSON(iris.Map{
		"total_properties": total,
		"avg_price":        priceStats.AvgPrice,
		"min_price":        priceStats.MinPrice,
		"max_price":        priceStats.MaxPrice,
		"cities":           cityCounts,
		"property_types":   typeCounts,
	})
}

// GetProperty returns one approved listing; unapproved ones are invisible to
// the public regardless of id.
func GetProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	err := storage.DB.Preload("Images").Preload("Amenities").Preload("Owner").
		Where("is_approved = ?", true).
		First(&property, id).Error
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

func CreateProperty(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var availableFrom *time.Time
	if input.AvailableFrom != "" {
		parsed, parseErr := time.Parse("2006-01-02", input.AvailableFrom)
		if parseErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "availableFrom must be YYYY-MM-DD.", ctx)
			return
		}
		availableFrom = &parsed
	}

	property := models.Property{
		OwnerID:            claims.ID,
		Title:              input.Title,
		Description:        input.Description,
		PropertyType:       input.PropertyType,
		Furnishing:         input.Furnishing,
		Address:            input.Address,
		City:               input.City,
		State:              input.State,
		ZipCode:            input.ZipCode,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Bedrooms:           input.Bedrooms,
		Bathrooms:          input.Bathrooms,
		SquareFeet:         input.SquareFeet,
		FloorNumber:        input.FloorNumber,
		TotalFloors:        input.TotalFloors,
		MonthlyRent:        input.MonthlyRent,
		SecurityDeposit:    input.SecurityDeposit,
		UtilitiesIncluded:  input.UtilitiesIncluded,
		HasParking:         input.HasParking,
		HasBalcony:         input.HasBalcony,
		HasGarden:          input.HasGarden,
		HasPool:            input.HasPool,
		HasGym:             input.HasGym,
		HasElevator:        input.HasElevator,
		HasAirConditioning: input.HasAirConditioning,
		HasHeating:         input.HasHeating,
		HasWasherDryer:     input.HasWasherDryer,
		PetFriendly:        input.PetFriendly,
		Status:             models.PropertyStatusAvailable,
		AvailableFrom:      availableFrom,
	}

	// New listings wait for admin approval before they surface in search.
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		for _, amenity := range input.Amenities {
			a := models.PropertyAmenity{
				PropertyID:  property.ID,
				Name:        amenity.Name,
				Description: amenity.Description,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func UpdateProperty(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	// Ownership scoping at the query level: someone else's id reads as absent.
	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != "" {
		property.Title = input.Title
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.PropertyType != "" {
		if !slices.Contains(propertyTypes, input.PropertyType) {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid property type.", ctx)
			return
		}
		property.PropertyType = input.PropertyType
	}
	if input.Furnishing != "" {
		if !slices.Contains(furnishingChoices, input.Furnishing) {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid furnishing choice.", ctx)
			return
		}
		property.Furnishing = input.Furnishing
	}
	if input.Status != "" {
		valid := []string{
			models.PropertyStatusAvailable,
			models.PropertyStatusRented,
			models.PropertyStatusPending,
			models.PropertyStatusInactive,
		}
		if !slices.Contains(valid, input.Status) {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "Invalid property status.", ctx)
			return
		}
		property.Status = input.Status
	}
	if input.MonthlyRent != nil {
		property.MonthlyRent = *input.MonthlyRent
	}
	if input.SecurityDeposit != nil {
		property.SecurityDeposit = input.SecurityDeposit
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// MyProperties lists the caller's own listings, approved or not.
func MyProperties(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var properties []models.Property
	err := storage.DB.Preload("Images").
		Where("owner_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

// ListPropertyApplications shows the applications on one of the caller's
// own listings.
func ListPropertyApplications(ctx iris.Context) {
	claims := utils.Claims(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Where("owner_id = ?", claims.ID).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var applications []models.RentalApplication
	err := storage.DB.Preload("Applicant").Preload("ReviewedBy").
		Where("property_id = ?", property.ID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(applications)
}

type PropertyAmenityInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CreatePropertyInput struct {
	Title              string                 `json:"title" validate:"required,max=200"`
	Description        string                 `json:"description" validate:"required"`
	PropertyType       string                 `json:"propertyType" validate:"required,oneof=apartment house condo townhouse studio duplex"`
	Furnishing         string                 `json:"furnishing" validate:"omitempty,oneof=furnished unfurnished semi_furnished"`
	Address            string                 `json:"address" validate:"required,max=300"`
	City               string                 `json:"city" validate:"required,max=100"`
	State              string                 `json:"state" validate:"required,max=100"`
	ZipCode            string                 `json:"zipCode" validate:"required,max=10"`
	Latitude           *float64               `json:"latitude"`
	Longitude          *float64               `json:"longitude"`
	Bedrooms           int                    `json:"bedrooms" validate:"min=0"`
	Bathrooms          float32                `json:"bathrooms" validate:"min=0"`
	SquareFeet         *int                   `json:"squareFeet"`
	FloorNumber        *int                   `json:"floorNumber"`
	TotalFloors        *int                   `json:"totalFloors"`
	MonthlyRent        float64                `json:"monthlyRent" validate:"required,min=0"`
	SecurityDeposit    *float64               `json:"securityDeposit"`
	UtilitiesIncluded  bool                   `json:"utilitiesIncluded"`
	HasParking         bool                   `json:"hasParking"`
	HasBalcony         bool                   `json:"hasBalcony"`
	HasGarden          bool                   `json:"hasGarden"`
	HasPool            bool                   `json:"hasPool"`
	HasGym             bool                   `json:"hasGym"`
	HasElevator        bool                   `json:"hasElevator"`
	HasAirConditioning bool                   `json:"hasAirConditioning"`
	HasHeating         bool                   `json:"hasHeating"`
	HasWasherDryer     bool                   `json:"hasWasherDryer"`
	PetFriendly        bool                   `json:"petFriendly"`
	AvailableFrom      string                 `json:"availableFrom"`
	Amenities          []PropertyAmenityInput `json:"amenities"`
}

type UpdatePropertyInput struct {
	Title           string   `json:"title" validate:"omitempty,max=200"`
	Description     string   `json:"description"`
	PropertyType    string   `json:"propertyType"`
	Furnishing      string   `json:"furnishing"`
	Status          string   `json:"status"`
	MonthlyRent     *float64 `json:"monthlyRent" validate:"omitempty,min=0"`
	SecurityDeposit *float64 `json:"securityDeposit"`
}
