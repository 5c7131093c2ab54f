package services

import (
	"testing"
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection, one in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prevDB := database.DB
	database.DB = db
	prevPolicy := config.Policy
	config.Policy = config.BookingPolicy{PendingBlocksAvailability: true, DiscountPrecedence: "category"}
	t.Cleanup(func() {
		database.DB = prevDB
		config.Policy = prevPolicy
		sqlDB.Close()
	})
	return db
}

// date returns midnight UTC the given number of days from today.
func date(t *testing.T, daysFromNow int) time.Time {
	t.Helper()
	return today().AddDate(0, 0, daysFromNow)
}

func money(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		FullName: "Test " + role,
		Email:    role + "-" + uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createProperty(t *testing.T, db *gorm.DB, owner *models.User) *models.Property {
	t.Helper()
	property := models.Property{
		OwnerID:  owner.ID,
		Name:     "Seaside Apartments",
		City:     "Lagos",
		Country:  "Nigeria",
		Currency: "NGN",
		Status:   models.PropertyActive,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to create property: %v", err)
	}
	return &property
}

func createCategory(t *testing.T, db *gorm.DB, property *models.Property, basePrice string, occupancy int) *models.RoomCategory {
	t.Helper()
	category := models.RoomCategory{
		PropertyID:   property.ID,
		Name:         "Deluxe",
		BasePrice:    money(t, basePrice),
		MaxOccupancy: occupancy,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return &category
}

func createRoom(t *testing.T, db *gorm.DB, property *models.Property, category *models.RoomCategory, name, price string, maxGuests int) *models.Room {
	t.Helper()
	room := models.Room{
		PropertyID:    property.ID,
		Name:          name,
		Type:          name,
		MaxGuests:     maxGuests,
		PricePerNight: money(t, price),
		Available:     true,
	}
	if category != nil {
		room.RoomCategoryID = &category.ID
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return &room
}

func testGuest() GuestContact {
	return GuestContact{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Phone:     "+2348000000000",
	}
}
