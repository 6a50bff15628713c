package routes

import (
	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/kataras/iris/v12"
)

// GetHomeownerProfile returns the caller's homeowner profile. Profiles are
// created at registration, so a missing row means the caller has a
// different role.
func GetHomeownerProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var profile models.HomeownerProfile
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(profile)
}

func UpdateHomeownerProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input UpdateHomeownerProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var profile models.HomeownerProfile
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	profile.Bio = input.Bio
	profile.CompanyName = input.CompanyName
	profile.LicenseNumber = input.LicenseNumber
	profile.Address = input.Address

	if err := storage.DB.Save(&profile).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(profile)
}

func GetRenterProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var profile models.RenterProfile
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(profile)
}

func UpdateRenterProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input UpdateRenterProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var profile models.RenterProfile
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	profile.Bio = input.Bio
	profile.EmploymentStatus = input.EmploymentStatus
	profile.AnnualIncome = input.AnnualIncome
	profile.CreditScore = input.CreditScore
	profile.References = input.References
	profile.PreferredLocation = input.PreferredLocation
	profile.BudgetMin = input.BudgetMin
	profile.BudgetMax = input.BudgetMax

	if err := storage.DB.Save(&profile).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(profile)
}

type UpdateHomeownerProfileInput struct {
	Bio           string `json:"bio"`
	CompanyName   string `json:"companyName" validate:"omitempty,max=100"`
	LicenseNumber string `json:"licenseNumber" validate:"omitempty,max=50"`
	Address       string `json:"address"`
}

type UpdateRenterProfileInput struct {
	Bio               string   `json:"bio"`
	EmploymentStatus  string   `json:"employmentStatus" validate:"omitempty,max=50"`
	AnnualIncome      *float64 `json:"annualIncome"`
	CreditScore       *int     `json:"creditScore" validate:"omitempty,min=300,max=850"`
	References        string   `json:"references"`
	PreferredLocation string   `json:"preferredLocation" validate:"omitempty,max=100"`
	BudgetMin         *float64 `json:"budgetMin"`
	BudgetMax         *float64 `json:"budgetMax"`
}
