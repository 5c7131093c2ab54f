package services

import (
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The reservation state machine:
//
//	pending   -> confirmed            owner action, receipt approval, or any payment
//	confirmed -> completed            checkout
//	pending/confirmed -> cancelled    only while check-in is still in the future
//	confirmed -> no_show              check-in date has passed without a check-in
//
// There is no way back to pending and no resurrecting a cancelled stay.

func getReservation(tx *gorm.DB, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := lockForUpdate(tx).First(&reservation, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// ConfirmReservation is the owner's explicit confirmation of a pending
// reservation.
func ConfirmReservation(id uuid.UUID) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		reservation, err = getReservation(tx, id)
		if err != nil {
			return err
		}
		if reservation.Status != models.ReservationPending {
			return ErrInvalidTransition
		}
		reservation.Status = models.ReservationConfirmed
		return tx.Save(reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

type PaymentInput struct {
	Type          string
	Method        string
	Amount        decimal.Decimal
	TransactionID string
}

// RecordPayment appends a payment and re-derives the reservation's payment
// projection from the full payment history. The projection is idempotent:
// replaying the same history in any order lands on the same amount_paid and
// payment_status. Any payment, even partial, auto-confirms a pending
// reservation; the transition to fully paid stamps payment_date and emits a
// payment.confirmed outbox event.
func RecordPayment(reservationID uuid.UUID, input PaymentInput) (*models.Reservation, *models.Payment, error) {
	var reservation *models.Reservation
	var payment models.Payment

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		reservation, err = getReservation(tx, reservationID)
		if err != nil {
			return err
		}

		payment = models.Payment{
			ReservationID: reservation.ID,
			PaymentType:   input.Type,
			PaymentMethod: input.Method,
			Amount:        input.Amount,
			Status:        models.PaymentCompleted,
			TransactionID: input.TransactionID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return recomputePaymentStatus(tx, reservation)
	})
	if err != nil {
		return nil, nil, err
	}
	return reservation, &payment, nil
}

func recomputePaymentStatus(tx *gorm.DB, reservation *models.Reservation) error {
	var payments []models.Payment
	err := tx.Where("reservation_id = ? AND status <> ?", reservation.ID, models.PaymentRefunded).
		Find(&payments).Error
	if err != nil {
		return err
	}

	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}

	wasPaid := reservation.PaymentStatus == models.PaymentStatusPaid
	reservation.AmountPaid = totalPaid

	switch {
	case totalPaid.GreaterThanOrEqual(reservation.TotalPrice):
		reservation.PaymentStatus = models.PaymentStatusPaid
	case totalPaid.IsPositive():
		reservation.PaymentStatus = models.PaymentStatusPartiallyPaid
	}

	if totalPaid.IsPositive() && reservation.Status == models.ReservationPending {
		reservation.Status = models.ReservationConfirmed
	}

	if reservation.PaymentStatus == models.PaymentStatusPaid && !wasPaid {
		now := time.Now()
		reservation.PaymentDate = &now
		event := models.OutboxEvent{
			EventType:     models.EventPaymentConfirmed,
			ReservationID: reservation.ID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
	}

	return tx.Save(reservation).Error
}

// ApprovePayment is the owner accepting an out-of-band payment (bank
// transfer receipt, cash on arrival) as settling the full balance.
func ApprovePayment(reservationID uuid.UUID, collectedBy string) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		reservation, err = getReservation(tx, reservationID)
		if err != nil {
			return err
		}

		wasPaid := reservation.PaymentStatus == models.PaymentStatusPaid
		now := time.Now()
		reservation.PaymentStatus = models.PaymentStatusPaid
		reservation.AmountPaid = reservation.TotalPrice
		reservation.PaymentDate = &now
		reservation.CollectedBy = collectedBy
		if reservation.Status == models.ReservationPending {
			reservation.Status = models.ReservationConfirmed
		}
		if !wasPaid {
			event := models.OutboxEvent{
				EventType:     models.EventPaymentConfirmed,
				ReservationID: reservation.ID,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}
		return tx.Save(reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

type CancellationInput struct {
	Reason        string
	ReasonDetails string
	RefundAmount  *decimal.Decimal
	Fee           decimal.Decimal
	ProcessedBy   *uuid.UUID
}

// CancelReservation cancels an active reservation whose check-in has not
// arrived yet, recording why and what is refunded.
func CancelReservation(reservationID uuid.UUID, input CancellationInput) (*models.Cancellation, error) {
	var cancellation models.Cancellation
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		reservation, err := getReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if !reservation.CanCancel(today()) {
			return ErrCannotCancel
		}

		reservation.Status = models.ReservationCancelled
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}

		cancellation = models.Cancellation{
			ReservationID:   reservation.ID,
			Reason:          input.Reason,
			ReasonDetails:   input.ReasonDetails,
			RefundAmount:    input.RefundAmount,
			CancellationFee: input.Fee,
			ProcessedByID:   input.ProcessedBy,
		}
		return tx.Create(&cancellation).Error
	})
	if err != nil {
		return nil, err
	}
	return &cancellation, nil
}

type CheckInInput struct {
	ActualCheckInTime  time.Time
	Notes              string
	IDDocumentVerified bool
	PaymentCollected   bool
	CheckedInBy        *uuid.UUID
}

// CheckInGuest records arrival. The reservation stays confirmed; completion
// happens at checkout.
func CheckInGuest(reservationID uuid.UUID, input CheckInInput) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		reservation, err := getReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if reservation.Status != models.ReservationConfirmed {
			return ErrInvalidTransition
		}
		checkIn = models.CheckIn{
			ReservationID:      reservation.ID,
			ActualCheckInTime:  input.ActualCheckInTime,
			CheckedInByID:      input.CheckedInBy,
			Notes:              input.Notes,
			IDDocumentVerified: input.IDDocumentVerified,
			PaymentCollected:   input.PaymentCollected,
		}
		return tx.Create(&checkIn).Error
	})
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

type CheckOutInput struct {
	ActualCheckOutTime time.Time
	Notes              string
	AdditionalCharges  decimal.Decimal
	DamageCharges      decimal.Decimal
	CheckedOutBy       *uuid.UUID
}

// CheckOutGuest records departure and completes the reservation.
func CheckOutGuest(reservationID uuid.UUID, input CheckOutInput) (*models.CheckOut, error) {
	var checkOut models.CheckOut
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		reservation, err := getReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if reservation.Status != models.ReservationConfirmed {
			return ErrInvalidTransition
		}

		reservation.Status = models.ReservationCompleted
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}

		checkOut = models.CheckOut{
			ReservationID:      reservation.ID,
			ActualCheckOutTime: input.ActualCheckOutTime,
			CheckedOutByID:     input.CheckedOutBy,
			Notes:              input.Notes,
			AdditionalCharges:  input.AdditionalCharges,
			DamageCharges:      input.DamageCharges,
		}
		return tx.Create(&checkOut).Error
	})
	if err != nil {
		return nil, err
	}
	return &checkOut, nil
}

// MarkNoShow flags a confirmed reservation whose check-in date has passed
// without the guest arriving.
func MarkNoShow(reservationID uuid.UUID) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		reservation, err = getReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if reservation.Status != models.ReservationConfirmed || !reservation.CheckIn.Before(today()) {
			return ErrInvalidTransition
		}
		var arrived int64
		if err := tx.Model(&models.CheckIn{}).
			Where("reservation_id = ?", reservation.ID).Count(&arrived).Error; err != nil {
			return err
		}
		if arrived > 0 {
			return ErrInvalidTransition
		}
		reservation.Status = models.ReservationNoShow
		return tx.Save(reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}
