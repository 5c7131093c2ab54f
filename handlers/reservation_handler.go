package handlers

import (
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ownedReservation loads a reservation and verifies the caller owns the
// property it belongs to (admins pass). Returns a response already written on
// failure.
func ownedReservation(c *fiber.Ctx) (*models.Reservation, error) {
	reservationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var reservation models.Reservation
	if err := database.DB.Preload("Property").First(&reservation, "id = ?", reservationID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
	}
	if reservation.Property.OwnerID != userID && middleware.TokenRole(c) != models.RoleAdmin {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return &reservation, nil
}

func ListOwnerReservations(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	query := database.DB.Preload("Property").Preload("Room").
		Joins("JOIN properties ON properties.id = reservations.property_id").
		Where("properties.owner_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("reservations.status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("reservations.check_in asc").Find(&reservations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reservations"})
	}
	return c.JSON(reservations)
}

func ConfirmReservation(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}

	updated, err := services.ConfirmReservation(reservation.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

type CancelReservationRequest struct {
	Reason        string `json:"reason" validate:"required,oneof=guest_request property_issue force_majeure payment_issue other"`
	ReasonDetails string `json:"reason_details,omitempty"`
	RefundAmount  string `json:"refund_amount,omitempty"`
	Fee           string `json:"cancellation_fee,omitempty"`
}

// CancelReservation serves both the guest cancelling their own stay and the
// owner cancelling on their behalf.
func CancelReservation(c *fiber.Ctx) error {
	reservationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var reservation models.Reservation
	if err := database.DB.Preload("Property").First(&reservation, "id = ?", reservationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
	}
	isGuest := reservation.UserID == userID
	isOwner := reservation.Property.OwnerID == userID
	if !isGuest && !isOwner && middleware.TokenRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req CancelReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.CancellationInput{
		Reason:        req.Reason,
		ReasonDetails: req.ReasonDetails,
		ProcessedBy:   &userID,
	}
	if req.RefundAmount != "" {
		refund, err := decimal.NewFromString(req.RefundAmount)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid refund amount"})
		}
		input.RefundAmount = &refund
	}
	if req.Fee != "" {
		fee, err := decimal.NewFromString(req.Fee)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cancellation fee"})
		}
		input.Fee = fee
	}

	cancellation, err := services.CancelReservation(reservation.ID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cancellation)
}

type CheckInRequest struct {
	ActualCheckInTime  string `json:"actual_check_in_time,omitempty"`
	Notes              string `json:"notes,omitempty"`
	IDDocumentVerified bool   `json:"id_document_verified,omitempty"`
	PaymentCollected   bool   `json:"payment_collected,omitempty"`
}

func CheckInGuest(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}
	userID, _ := middleware.TokenUserID(c)

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	when := time.Now()
	if req.ActualCheckInTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.ActualCheckInTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actual_check_in_time must be RFC3339"})
		}
		when = parsed
	}

	checkIn, err := services.CheckInGuest(reservation.ID, services.CheckInInput{
		ActualCheckInTime:  when,
		Notes:              req.Notes,
		IDDocumentVerified: req.IDDocumentVerified,
		PaymentCollected:   req.PaymentCollected,
		CheckedInBy:        &userID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkIn)
}

type CheckOutRequest struct {
	ActualCheckOutTime string `json:"actual_check_out_time,omitempty"`
	Notes              string `json:"notes,omitempty"`
	AdditionalCharges  string `json:"additional_charges,omitempty"`
	DamageCharges      string `json:"damage_charges,omitempty"`
}

func CheckOutGuest(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}
	userID, _ := middleware.TokenUserID(c)

	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	when := time.Now()
	if req.ActualCheckOutTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.ActualCheckOutTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actual_check_out_time must be RFC3339"})
		}
		when = parsed
	}

	input := services.CheckOutInput{
		ActualCheckOutTime: when,
		Notes:              req.Notes,
		AdditionalCharges:  decimal.Zero,
		DamageCharges:      decimal.Zero,
		CheckedOutBy:       &userID,
	}
	if req.AdditionalCharges != "" {
		charges, err := decimal.NewFromString(req.AdditionalCharges)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid additional charges"})
		}
		input.AdditionalCharges = charges
	}
	if req.DamageCharges != "" {
		charges, err := decimal.NewFromString(req.DamageCharges)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid damage charges"})
		}
		input.DamageCharges = charges
	}

	checkOut, err := services.CheckOutGuest(reservation.ID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkOut)
}

func MarkNoShow(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}

	updated, err := services.MarkNoShow(reservation.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}
