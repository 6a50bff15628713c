package storage

import (
	"homelet-server/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	// TranslateError lets duplicate-key violations surface as
	// gorm.ErrDuplicatedKey, which the application submit path depends on.
	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if dbError != nil {
		log.Panic("error connecting to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.HomeownerProfile{},
		&models.RenterProfile{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyAmenity{},
		&models.RentalApplication{},
		&models.ApplicationDocument{},
		&models.ApplicationMessage{},
		&models.Notification{},
		&models.AuditLog{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
