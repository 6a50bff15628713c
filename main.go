package main

import (
	"log"
	"os"

	"homelet-server/routes"
	"homelet-server/storage"
	"homelet-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/logout", routes.Logout)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Post("/password/change", accessTokenVerifierMiddleware, routes.ChangePassword)
		user.Get("/profile", accessTokenVerifierMiddleware, routes.GetProfile)
		user.Put("/profile", accessTokenVerifierMiddleware, routes.UpdateProfile)
		user.Post("/profile/image", accessTokenVerifierMiddleware, routes.UploadProfileImage)
		user.Delete("/profile/image", accessTokenVerifierMiddleware, routes.DeleteProfileImage)
		user.Get("/homeowner/profile", accessTokenVerifierMiddleware, routes.GetHomeownerProfile)
		user.Put("/homeowner/profile", accessTokenVerifierMiddleware, routes.UpdateHomeownerProfile)
		user.Get("/renter/profile", accessTokenVerifierMiddleware, routes.GetRenterProfile)
		user.Put("/renter/profile", accessTokenVerifierMiddleware, routes.UpdateRenterProfile)
		user.Get("/saved-properties", accessTokenVerifierMiddleware, routes.GetUserSavedProperties)
		user.Post("/saved-properties", accessTokenVerifierMiddleware, routes.AlterUserSavedProperties)
	}

	properties := app.Party("/api/properties")
	{
		properties.Get("/", routes.ListProperties)
		properties.Get("/search", routes.ListProperties)
		properties.Get("/stats", routes.PropertyStats)
		properties.Get("/my-properties", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.MyProperties)
		properties.Post("/create", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.CreateProperty)
		properties.Get("/{id:uint}", routes.GetProperty)
		properties.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.UpdateProperty)
		properties.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.DeleteProperty)
		properties.Get("/{id:uint}/applications", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.ListPropertyApplications)
		properties.Get("/{id:uint}/images", routes.ListPropertyImages)
		properties.Post("/{id:uint}/images", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.UploadPropertyImage)
		properties.Delete("/{id:uint}/images/{imageID:uint}", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.DeletePropertyImage)
		properties.Post("/{id:uint}/images/{imageID:uint}/set-primary", accessTokenVerifierMiddleware, utils.HomeownerOnlyMiddleware, routes.SetPrimaryImage)
	}

	applications := app.Party("/api/applications", accessTokenVerifierMiddleware)
	{
		applications.Get("/", routes.ListApplications)
		applications.Post("/create", routes.CreateApplication)
		applications.Get("/stats", routes.ApplicationStats)
		applications.Get("/{id:uint}", routes.GetApplication)
		applications.Patch("/{id:uint}/update", routes.UpdateApplicationStatus)
		applications.Put("/{id:uint}/update", routes.UpdateApplicationStatus)
		applications.Get("/{id:uint}/messages", routes.ListApplicationMessages)
		applications.Post("/{id:uint}/messages", routes.CreateApplicationMessage)
		applications.Get("/{id:uint}/documents", routes.ListApplicationDocuments)
		applications.Post("/{id:uint}/documents", routes.UploadApplicationDocument)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", routes.ListNotifications)
		notifications.Post("/{id:uint}/read", routes.MarkNotificationRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
		admin.Get("/properties", routes.AdminListProperties)
		admin.Post("/properties/{id:uint}/approve", routes.AdminApproveProperty)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Println("Server starting on port " + port)
	app.Listen(":" + port)
}
