package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"homelet-server/models"
	"homelet-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken carries the authenticated caller's identity and role. The role
// is fixed at registration, so embedding it in the token cannot drift from
// the profile rows.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func CreateTokenPair(id uint, role string) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	userID := strconv.FormatUint(uint64(id), 10)
	refreshClaims := jwt.Claims{Subject: userID}

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)
	}

	return &tokenPair, nil
}

// RefreshToken rotates a refresh token: the presented token must still be in
// the Redis allow-list, and is consumed on use.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()
	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}
	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	var user models.User
	if err := storage.DB.Select("id, role").First(&user, uint(userID)).Error; err != nil {
		CreateNotFound(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(user.ID, user.Role)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// RevokeRefreshToken drops a refresh token from the allow-list on logout.
func RevokeRefreshToken(refreshToken string) {
	if storage.Redis != nil {
		storage.Redis.Del(bgContext, refreshToken)
	}
}
