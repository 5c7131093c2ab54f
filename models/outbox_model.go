package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventReservationCreated = "reservation.created"
	EventPaymentConfirmed   = "payment.confirmed"
)

// OutboxEvent is written in the same transaction as the state change it
// announces. A cron dispatcher delivers it (emails, review invitation,
// in-app notification) and marks it processed; the booking request never
// blocks on a network call to the email provider.
type OutboxEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventType     string     `gorm:"size:50;not null;index" json:"event_type"`
	ReservationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"reservation_id"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	LastError     *string    `gorm:"type:text" json:"last_error,omitempty"`
	ProcessedAt   *time.Time `gorm:"index" json:"processed_at,omitempty"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *OutboxEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Notification is an in-app notification row, written by the outbox
// dispatcher for owners and guests.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	ActionURL string    `gorm:"size:500" json:"action_url,omitempty"`
	Read      bool      `gorm:"default:false" json:"read"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
