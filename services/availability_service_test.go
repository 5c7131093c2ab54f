package services

import (
	"testing"
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func createReservation(t *testing.T, db *gorm.DB, property *models.Property, room *models.Room, user *models.User, status string, checkIn, checkOut time.Time) *models.Reservation {
	t.Helper()
	reservation := models.Reservation{
		PropertyID:     property.ID,
		RoomID:         &room.ID,
		UserID:         user.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         1,
		TotalPrice:     decimal.RequireFromString("10000"),
		OriginalPrice:  decimal.RequireFromString("10000"),
		Status:         status,
		GuestFirstName: "Ada",
		GuestLastName:  "Obi",
		GuestEmail:     "ada@example.com",
		GuestPhone:     "+2348000000000",
		PaymentMethod:  models.PayNow,
		PaymentStatus:  models.PaymentStatusPending,
		Reference:      "RWE" + uuid.NewString()[:7],
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
	return &reservation
}

func TestFindAvailableRoomOverlapIsHalfOpen(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	guest := createUser(t, db, models.RoleGuest)
	property := createProperty(t, db, owner)
	room := createRoom(t, db, property, nil, "Standard", "10000", 2)

	// Existing confirmed stay on days 5..8 (half-open).
	createReservation(t, db, property, room, guest, models.ReservationConfirmed, date(t, 5), date(t, 8))
	opts := DefaultAvailabilityOptions()

	// Back-to-back: new stay starts on the existing check-out day.
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 8), date(t, 10), 1, opts); err != nil {
		t.Errorf("back-to-back stay after check-out should be allowed: %v", err)
	}
	// Back-to-back on the other side.
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 3), date(t, 5), 1, opts); err != nil {
		t.Errorf("stay ending on existing check-in should be allowed: %v", err)
	}
	// One shared night conflicts.
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 7), date(t, 9), 1, opts); err != ErrRoomUnavailable {
		t.Errorf("overlapping stay should be rejected, got %v", err)
	}
	// Fully containing range conflicts.
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 4), date(t, 9), 1, opts); err != ErrRoomUnavailable {
		t.Errorf("containing stay should be rejected, got %v", err)
	}
}

func TestFindAvailableRoomPendingPolicy(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	guest := createUser(t, db, models.RoleGuest)
	property := createProperty(t, db, owner)
	room := createRoom(t, db, property, nil, "Standard", "10000", 2)

	createReservation(t, db, property, room, guest, models.ReservationPending, date(t, 5), date(t, 8))

	config.Policy.PendingBlocksAvailability = true
	opts := DefaultAvailabilityOptions()
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 1, opts); err != ErrRoomUnavailable {
		t.Errorf("pending reservation should block when the policy says so, got %v", err)
	}

	config.Policy.PendingBlocksAvailability = false
	opts = DefaultAvailabilityOptions()
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 1, opts); err != nil {
		t.Errorf("pending reservation should not block when the policy is off: %v", err)
	}
}

func TestFindAvailableRoomCancelledNeverBlocks(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	guest := createUser(t, db, models.RoleGuest)
	property := createProperty(t, db, owner)
	room := createRoom(t, db, property, nil, "Standard", "10000", 2)

	createReservation(t, db, property, room, guest, models.ReservationCancelled, date(t, 5), date(t, 8))

	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 1, DefaultAvailabilityOptions()); err != nil {
		t.Errorf("cancelled reservation should not block: %v", err)
	}
}

func TestFindAvailableRoomBlackoutDates(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner)
	room := createRoom(t, db, property, nil, "Standard", "10000", 2)

	blackout := models.RoomAvailability{RoomID: room.ID, Date: date(t, 6), Available: false}
	if err := db.Create(&blackout).Error; err != nil {
		t.Fatalf("failed to create blackout: %v", err)
	}

	opts := DefaultAvailabilityOptions()
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 1, opts); err != ErrRoomUnavailable {
		t.Errorf("stay spanning a blackout date should be rejected, got %v", err)
	}
	// Blackout on the check-out day does not affect the stay.
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 4), date(t, 6), 1, opts); err != nil {
		t.Errorf("blackout on check-out day should not block: %v", err)
	}
}

func TestFindAvailableRoomCapacity(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner)
	room := createRoom(t, db, property, nil, "Standard", "10000", 2)

	opts := DefaultAvailabilityOptions()
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 3, opts); err != ErrRoomUnavailable {
		t.Errorf("over-capacity request should be rejected, got %v", err)
	}

	opts.SkipCapacityCheck = true
	if _, err := FindAvailableRoom(db, &room.ID, nil, date(t, 5), date(t, 8), 3, opts); err != nil {
		t.Errorf("capacity check should be skippable: %v", err)
	}
}

func TestFindAvailableRoomPrefersTypeMatchThenPrice(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	property := createProperty(t, db, owner)
	category := createCategory(t, db, property, "12000", 2)

	cheap := createRoom(t, db, property, category, "Economy", "8000", 2)
	matching := createRoom(t, db, property, category, "Deluxe", "12000", 2)
	_ = createRoom(t, db, property, category, "Suite", "20000", 2)

	opts := DefaultAvailabilityOptions()
	selected, err := FindAvailableRoom(db, nil, &category.ID, date(t, 5), date(t, 8), 2, opts)
	if err != nil {
		t.Fatalf("expected a room, got %v", err)
	}
	if selected.ID != matching.ID {
		t.Errorf("selected %s, want the room whose type matches the category name", selected.Name)
	}

	// Without a type match the cheapest eligible room wins.
	if err := db.Model(&models.Room{}).Where("id = ?", matching.ID).Update("type", "Other").Error; err != nil {
		t.Fatalf("failed to update room: %v", err)
	}
	selected, err = FindAvailableRoom(db, nil, &category.ID, date(t, 5), date(t, 8), 2, opts)
	if err != nil {
		t.Fatalf("expected a room, got %v", err)
	}
	if selected.ID != cheap.ID {
		t.Errorf("selected %s, want the cheapest room", selected.Name)
	}
}

func TestCheckAvailabilityReportsCounts(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	guest := createUser(t, db, models.RoleGuest)
	property := createProperty(t, db, owner)
	category := createCategory(t, db, property, "12000", 2)
	roomA := createRoom(t, db, property, category, "Deluxe", "12000", 2)
	_ = createRoom(t, db, property, category, "Deluxe", "12000", 2)

	createReservation(t, db, property, roomA, guest, models.ReservationConfirmed, date(t, 5), date(t, 8))

	result, err := CheckAvailability(db, property.ID, category.ID, date(t, 5), date(t, 8), 2)
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	if !result.Available {
		t.Error("expected availability")
	}
	if result.TotalRooms != 2 || result.AvailableRooms != 1 {
		t.Errorf("counts = %d/%d, want 1/2", result.AvailableRooms, result.TotalRooms)
	}

	// Over capacity: a reason, not an error.
	result, err = CheckAvailability(db, property.ID, category.ID, date(t, 5), date(t, 8), 5)
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	if result.Available || result.Reason == "" {
		t.Errorf("over-capacity probe should report a reason, got %+v", result)
	}
}
