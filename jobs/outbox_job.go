package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/notifications"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/utils"
	"gorm.io/gorm"
)

const outboxBatchSize = 50
const outboxMaxAttempts = 5

// DispatchOutbox delivers pending outbox events: booking and payment emails,
// review invitations and in-app notifications. Each event is retried up to
// outboxMaxAttempts; one failing event never blocks the rest of the batch.
func DispatchOutbox() {
	var events []models.OutboxEvent
	err := database.DB.
		Where("processed_at IS NULL AND attempts < ?", outboxMaxAttempts).
		Order("created_at asc").
		Limit(outboxBatchSize).
		Find(&events).Error
	if err != nil {
		log.Printf("Outbox: failed to load pending events: %v", err)
		return
	}

	for i := range events {
		event := &events[i]
		if err := deliverEvent(event); err != nil {
			log.Printf("Outbox: event %s (%s) failed: %v", event.ID, event.EventType, err)
			msg := err.Error()
			event.Attempts++
			event.LastError = &msg
		} else {
			now := time.Now()
			event.ProcessedAt = &now
		}
		if err := database.DB.Save(event).Error; err != nil {
			log.Printf("Outbox: failed to update event %s: %v", event.ID, err)
		}
	}
}

func deliverEvent(event *models.OutboxEvent) error {
	var reservation models.Reservation
	err := database.DB.
		Preload("Property").
		Preload("Property.Owner").
		First(&reservation, "id = ?", event.ReservationID).Error
	if err != nil {
		return fmt.Errorf("load reservation: %w", err)
	}

	switch event.EventType {
	case models.EventReservationCreated:
		return deliverReservationCreated(&reservation)
	case models.EventPaymentConfirmed:
		return deliverPaymentConfirmed(&reservation)
	default:
		return fmt.Errorf("unknown event type %q", event.EventType)
	}
}

func deliverReservationCreated(reservation *models.Reservation) error {
	if err := ensureReviewInvitation(reservation); err != nil {
		return err
	}

	guestSubject, guestBody := notifications.GuestBookingEmail(reservation)
	notifications.SendEmail(
		reservation.GuestFirstName+" "+reservation.GuestLastName,
		reservation.GuestEmail, guestSubject, guestBody,
	)

	owner := reservation.Property.Owner
	ownerSubject, ownerBody := notifications.OwnerBookingEmail(reservation)
	notifications.SendEmail(owner.FullName, owner.Email, ownerSubject, ownerBody)

	notification := models.Notification{
		UserID:    owner.ID,
		Type:      "booking_created",
		Title:     "New Booking",
		Message:   fmt.Sprintf("%s %s booked %s (%s).", reservation.GuestFirstName, reservation.GuestLastName, reservation.Property.Name, reservation.Reference),
		ActionURL: fmt.Sprintf("/owner/reservations/%s", reservation.ID),
	}
	return database.DB.Create(&notification).Error
}

func deliverPaymentConfirmed(reservation *models.Reservation) error {
	subject, body := notifications.PaymentConfirmedEmail(reservation)
	notifications.SendEmail(
		reservation.GuestFirstName+" "+reservation.GuestLastName,
		reservation.GuestEmail, subject, body,
	)

	owner := reservation.Property.Owner
	notification := models.Notification{
		UserID:    owner.ID,
		Type:      "payment_received",
		Title:     "Payment Confirmed",
		Message:   fmt.Sprintf("Booking %s at %s is fully paid.", reservation.Reference, reservation.Property.Name),
		ActionURL: fmt.Sprintf("/owner/reservations/%s", reservation.ID),
	}
	return database.DB.Create(&notification).Error
}

func ensureReviewInvitation(reservation *models.Reservation) error {
	var existing models.ReviewInvitation
	err := database.DB.Where("reservation_id = ?", reservation.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	token, err := utils.NewReviewToken()
	if err != nil {
		return err
	}
	now := time.Now()
	invitation := models.ReviewInvitation{
		ReservationID: reservation.ID,
		Token:         token,
		SentAt:        &now,
	}
	return database.DB.Create(&invitation).Error
}
