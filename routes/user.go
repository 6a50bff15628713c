package routes

import (
	"encoding/json"
	"strings"

	"homelet-server/models"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		FirstName:   userInput.FirstName,
		LastName:    userInput.LastName,
		Email:       strings.ToLower(userInput.Email),
		PhoneNumber: userInput.PhoneNumber,
		Password:    hashedPassword,
		Role:        userInput.Role,
	}

	// The user row and its role profile commit together, so an account can
	// never exist with a role but no matching profile.
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		switch newUser.Role {
		case models.RoleHomeowner:
			return tx.Create(&models.HomeownerProfile{UserID: newUser.ID}).Error
		case models.RoleRenter:
			return tx.Create(&models.RenterProfile{UserID: newUser.ID}).Error
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

func Logout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	utils.RevokeRefreshToken(input.RefreshToken)
	ctx.JSON(iris.Map{"message": "Logout successful"})
}

// GetProfile returns the authenticated user with their role profile attached.
func GetProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var user models.User
	query := storage.DB.Preload("HomeownerProfile").Preload("RenterProfile")
	if err := query.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

func UpdateProfile(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input UpdateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

func ChangePassword(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input ChangePasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Old password is incorrect.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.NewPassword)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.Password = hashedPassword
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Password changed successfully"})
}

// UploadProfileImage accepts a base64 payload and stores the hosted URL.
func UploadProfileImage(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	url := storage.UploadBase64Image(input.Data, "profile_"+uuid.NewString())
	if url == "" {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Image upload failed.", ctx)
		return
	}

	if user.ProfilePictureURL != "" {
		storage.DeleteImage(user.ProfilePictureURL)
	}

	user.ProfilePictureURL = url
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Profile picture updated successfully", "user": &user})
}

func DeleteProfileImage(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.ProfilePictureURL == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "No profile picture to delete.", ctx)
		return
	}

	storage.DeleteImage(user.ProfilePictureURL)
	user.ProfilePictureURL = ""
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Profile picture deleted successfully", "user": &user})
}

func GetUserSavedProperties(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var savedIDs []uint
	if user.SavedProperties != nil {
		json.Unmarshal(user.SavedProperties, &savedIDs)
	}

	var properties []models.Property
	if len(savedIDs) > 0 {
		storage.DB.Preload("Images").Where("id IN ?", savedIDs).Find(&properties)
	}

	ctx.JSON(properties)
}

// AlterUserSavedProperties toggles a property in the caller's saved list.
func AlterUserSavedProperties(ctx iris.Context) {
	claims := utils.Claims(ctx)

	var input AlterSavedPropertiesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var savedIDs []uint
	if user.SavedProperties != nil {
		json.Unmarshal(user.SavedProperties, &savedIDs)
	}

	if idx := slices.Index(savedIDs, input.PropertyID); idx >= 0 {
		savedIDs = slices.Delete(savedIDs, idx, idx+1)
	} else {
		savedIDs = append(savedIDs, input.PropertyID)
	}

	encoded, _ := json.Marshal(savedIDs)
	user.SavedProperties = encoded
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"savedProperties": savedIDs})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID, user.Role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"phoneNumber":  user.PhoneNumber,
		"role":         user.Role,
		"isVerified":   user.IsVerified,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName       string `json:"firstName" validate:"required,max=256"`
	LastName        string `json:"lastName" validate:"required,max=256"`
	Email           string `json:"email" validate:"required,max=256,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"omitempty,max=20"`
	Role            string `json:"role" validate:"required,oneof=homeowner renter"`
	Password        string `json:"password" validate:"required,min=8,max=256"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserInput struct {
	FirstName   string `json:"firstName" validate:"omitempty,max=256"`
	LastName    string `json:"lastName" validate:"omitempty,max=256"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
}

type ChangePasswordInput struct {
	OldPassword        string `json:"oldPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=256"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

type UploadImageInput struct {
	Data string `json:"data" validate:"required"`
}

type AlterSavedPropertiesInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}
