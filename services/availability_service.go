package services

import (
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityOptions tunes a single lookup. SkipCapacityCheck carries the
// pay-on-arrival leniency; PendingBlocks defaults from the loaded policy.
type AvailabilityOptions struct {
	SkipCapacityCheck bool
	PendingBlocks     bool
}

func DefaultAvailabilityOptions() AvailabilityOptions {
	return AvailabilityOptions{PendingBlocks: config.Policy.PendingBlocksAvailability}
}

// FindAvailableRoom returns the room that will host a stay, or
// ErrRoomUnavailable when none qualifies. Candidates come from the named room
// or from the category's rooms in price-ascending order; a candidate is
// eligible when the guest count fits, no blocking reservation overlaps the
// half-open [checkIn, checkOut) range, and no blackout date falls inside it.
// Rooms whose type matches the category name are preferred, otherwise the
// first eligible candidate wins; the choice is deterministic.
//
// Callers that go on to insert a reservation must pass the transaction they
// will insert in: candidate rows are locked so concurrent bookings for the
// same room serialize at the database.
func FindAvailableRoom(tx *gorm.DB, roomID, categoryID *uuid.UUID, checkIn, checkOut time.Time, guests int, opts AvailabilityOptions) (*models.Room, error) {
	var candidates []models.Room
	var categoryName string

	q := lockForUpdate(tx)
	switch {
	case roomID != nil:
		var room models.Room
		if err := q.First(&room, "id = ?", *roomID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		candidates = []models.Room{room}
	case categoryID != nil:
		var category models.RoomCategory
		if err := tx.First(&category, "id = ?", *categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		categoryName = category.Name
		if err := q.Where("room_category_id = ?", *categoryID).
			Order("price_per_night asc").Find(&candidates).Error; err != nil {
			return nil, err
		}
	default:
		return nil, ErrRoomUnavailable
	}

	var eligible, preferred []models.Room
	for _, room := range candidates {
		ok, err := roomEligible(tx, &room, checkIn, checkOut, guests, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		eligible = append(eligible, room)
		if categoryName != "" && room.Type == categoryName {
			preferred = append(preferred, room)
		}
	}

	if len(preferred) > 0 {
		return &preferred[0], nil
	}
	if len(eligible) > 0 {
		return &eligible[0], nil
	}
	return nil, ErrRoomUnavailable
}

func roomEligible(tx *gorm.DB, room *models.Room, checkIn, checkOut time.Time, guests int, opts AvailabilityOptions) (bool, error) {
	if !room.Available {
		return false, nil
	}
	if !opts.SkipCapacityCheck && guests > room.MaxGuests {
		return false, nil
	}

	blocking := []string{models.ReservationConfirmed}
	if opts.PendingBlocks {
		blocking = append(blocking, models.ReservationPending)
	}

	var conflicts int64
	err := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			room.ID, blocking, checkOut, checkIn).
		Count(&conflicts).Error
	if err != nil {
		return false, err
	}
	if conflicts > 0 {
		return false, nil
	}

	var blackouts int64
	err = tx.Model(&models.RoomAvailability{}).
		Where("room_id = ? AND date >= ? AND date < ? AND available = ?",
			room.ID, checkIn, checkOut, false).
		Count(&blackouts).Error
	if err != nil {
		return false, err
	}
	return blackouts == 0, nil
}

// CheckAvailability is the read-only availability probe behind the public
// endpoint. It never locks rows and reports the room that Book would select.
type AvailabilityResult struct {
	Available      bool      `json:"available"`
	RoomID         uuid.UUID `json:"room_id,omitempty"`
	RoomName       string    `json:"room_name,omitempty"`
	AvailableRooms int       `json:"available_rooms"`
	TotalRooms     int       `json:"total_rooms"`
	Reason         string    `json:"reason,omitempty"`
}

func CheckAvailability(db *gorm.DB, propertyID, categoryID uuid.UUID, checkIn, checkOut time.Time, guests int) (*AvailabilityResult, error) {
	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var category models.RoomCategory
	if err := db.First(&category, "id = ? AND property_id = ?", categoryID, propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !checkIn.Before(checkOut) {
		return &AvailabilityResult{Reason: ErrInvalidDateRange.Error()}, nil
	}
	if checkIn.Before(today()) {
		return &AvailabilityResult{Reason: ErrPastCheckIn.Error()}, nil
	}
	if guests > category.MaxOccupancy {
		return &AvailabilityResult{Reason: ErrCapacityExceeded.Error()}, nil
	}

	var rooms []models.Room
	if err := db.Where("room_category_id = ?", category.ID).
		Order("price_per_night asc").Find(&rooms).Error; err != nil {
		return nil, err
	}

	result := &AvailabilityResult{TotalRooms: len(rooms)}
	opts := DefaultAvailabilityOptions()
	for _, room := range rooms {
		ok, err := roomEligible(db, &room, checkIn, checkOut, guests, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			result.AvailableRooms++
		}
	}
	if result.AvailableRooms == 0 {
		result.Reason = ErrRoomUnavailable.Error()
		return result, nil
	}

	selected, err := FindAvailableRoom(db, nil, &category.ID, checkIn, checkOut, guests, opts)
	if err != nil {
		if err == ErrRoomUnavailable {
			result.Reason = err.Error()
			return result, nil
		}
		return nil, err
	}
	result.Available = true
	result.RoomID = selected.ID
	result.RoomName = selected.Name
	return result, nil
}

// lockForUpdate adds a row lock on dialects that support it. SQLite (used in
// tests) serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
