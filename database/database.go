package database

import (
	"fmt"
	"log"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SupportActorID identifies the well-known system actor support
// conversations and system notifications are attributed to. Resolved once at
// startup by SeedSupportActor, never re-queried per request.
var SupportActorID uuid.UUID

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.RoomCategory{},
		&models.Room{},
		&models.RoomAvailability{},
		&models.PropertyAvailability{},
		&models.Reservation{},
		&models.Payment{},
		&models.Cancellation{},
		&models.CheckIn{},
		&models.CheckOut{},
		&models.ReviewInvitation{},
		&models.OutboxEvent{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	fmt.Println("Database migration successful")
}

// SeedSupportActor makes sure the configured support actor exists and caches
// its id for the lifetime of the process.
func SeedSupportActor() {
	email := config.Config("SUPPORT_ACTOR_EMAIL")
	password := config.Config("SUPPORT_ACTOR_PASSWORD")
	if email == "" {
		log.Println("Warning: SUPPORT_ACTOR_EMAIL not configured, support actor disabled")
		return
	}

	var actor models.User
	err := DB.Where("email = ?", email).First(&actor).Error
	if err == nil {
		SupportActorID = actor.ID
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to look up support actor: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash support actor password: %v", err)
	}

	actor = models.User{
		FullName: "Reserve With Ease Support",
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := DB.Create(&actor).Error; err != nil {
		log.Fatalf("Failed to seed support actor: %v", err)
	}
	SupportActorID = actor.ID
	log.Println("Support actor seeded successfully")
}
