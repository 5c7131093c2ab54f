package services

import (
	"errors"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GuestContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (g GuestContact) complete() bool {
	return g.FirstName != "" && g.LastName != "" && g.Email != "" && g.Phone != ""
}

// BookingRequest carries everything the engine needs: exactly one of RoomID
// and RoomCategoryID selects the candidate set.
type BookingRequest struct {
	PropertyID      uuid.UUID
	RoomID          *uuid.UUID
	RoomCategoryID  *uuid.UUID
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Guest           GuestContact
	PaymentMethod   string
	SpecialRequests string
	UserID          uuid.UUID
}

// Book validates the request, selects a concrete room, prices the stay and
// persists the reservation, all inside one transaction so that two
// overlapping requests for the same room cannot both succeed. Discounts are
// evaluated against the booking date, not the stay dates: a promotion that is
// live right now applies even when the stay falls outside its window.
//
// Side effects (confirmation emails, review invitation) are not performed
// here; a reservation.created outbox event is committed with the reservation
// and delivered by the dispatcher.
func Book(req BookingRequest) (*models.Reservation, error) {
	if !req.CheckIn.Before(req.CheckOut) {
		return nil, ErrInvalidDateRange
	}
	if req.CheckIn.Before(today()) {
		return nil, ErrPastCheckIn
	}
	if !req.Guest.complete() {
		return nil, ErrMissingGuestContact
	}
	if req.RoomID == nil && req.RoomCategoryID == nil {
		return nil, ErrRoomUnavailable
	}

	var property models.Property
	if err := database.DB.First(&property, "id = ?", req.PropertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !property.IsBookable() {
		return nil, ErrPropertyNotActive
	}

	bookingDate := today()
	var reservation models.Reservation

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Capacity pre-check against the declared capacity of whatever was
		// requested. Deliberately relaxed for pay-on-arrival bookings, a
		// leniency the owners asked to keep.
		skipCapacity := req.PaymentMethod == models.PayOnArrival
		var category *models.RoomCategory
		if req.RoomCategoryID != nil {
			category = &models.RoomCategory{}
			if err := tx.First(category, "id = ? AND property_id = ?", *req.RoomCategoryID, req.PropertyID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrNotFound
				}
				return err
			}
			if !skipCapacity && req.Guests > category.MaxOccupancy {
				return ErrCapacityExceeded
			}
		} else if req.RoomID != nil && !skipCapacity {
			var room models.Room
			if err := tx.First(&room, "id = ?", *req.RoomID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrNotFound
				}
				return err
			}
			if req.Guests > room.MaxGuests {
				return ErrCapacityExceeded
			}
		}

		opts := DefaultAvailabilityOptions()
		opts.SkipCapacityCheck = skipCapacity
		room, err := FindAvailableRoom(tx, req.RoomID, req.RoomCategoryID, req.CheckIn, req.CheckOut, req.Guests, opts)
		if err != nil {
			return err
		}

		if room.PropertyID != req.PropertyID {
			return ErrNotFound
		}

		// A room booked directly still prices and discounts through its
		// category when it has one.
		if category == nil && room.RoomCategoryID != nil {
			category = &models.RoomCategory{}
			if err := tx.First(category, "id = ?", *room.RoomCategoryID).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return err
				}
				category = nil
			}
		}

		basePrice := room.PricePerNight
		categoryDiscount := DiscountWindow{}
		if category != nil {
			basePrice = category.BasePrice
			categoryDiscount = CategoryDiscount(category)
		}

		var dayRecord models.PropertyAvailability
		dateDiscount := DateDiscount{}
		err = tx.Where("property_id = ? AND date = ?", req.PropertyID, bookingDate).
			First(&dayRecord).Error
		if err == nil {
			dateDiscount = DateDiscountFor(&dayRecord)
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		nights := decimal.NewFromInt(int64(daysBetween(req.CheckIn, req.CheckOut)))
		nightly, appliedPct := EffectivePrice(basePrice, categoryDiscount, dateDiscount, bookingDate)

		reference, err := utils.GenerateUniqueReference(tx)
		if err != nil {
			return err
		}

		status := models.ReservationPending
		if req.PaymentMethod == models.PayOnArrival {
			status = models.ReservationConfirmed
		}

		reservation = models.Reservation{
			PropertyID:         req.PropertyID,
			RoomID:             &room.ID,
			UserID:             req.UserID,
			CheckIn:            req.CheckIn,
			CheckOut:           req.CheckOut,
			Guests:             req.Guests,
			TotalPrice:         nightly.Mul(nights),
			OriginalPrice:      basePrice.Mul(nights),
			DiscountPercentage: appliedPct,
			Status:             status,
			GuestFirstName:     req.Guest.FirstName,
			GuestLastName:      req.Guest.LastName,
			GuestEmail:         req.Guest.Email,
			GuestPhone:         req.Guest.Phone,
			PaymentMethod:      req.PaymentMethod,
			PaymentStatus:      models.PaymentStatusPending,
			AmountPaid:         decimal.Zero,
			SpecialRequests:    req.SpecialRequests,
			Reference:          reference,
		}
		if category != nil {
			reservation.RoomCategoryID = &category.ID
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		event := models.OutboxEvent{
			EventType:     models.EventReservationCreated,
			ReservationID: reservation.ID,
		}
		return tx.Create(&event).Error
	})

	if err != nil {
		// A lost race shows up as a duplicate-key failure; the caller sees
		// the same answer as an honest miss, never a 500.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}
	return &reservation, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
