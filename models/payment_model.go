package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentTypeDeposit     = "deposit"
	PaymentTypeFullPayment = "full_payment"
	PaymentTypeBalance     = "balance"
)

const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment is one money movement against a reservation. The reservation's
// amount_paid and payment_status are a projection over these rows, never
// edited directly.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"reservation_id"`
	PaymentType   string          `gorm:"size:20;not null" json:"payment_type"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;not null;default:'completed'" json:"status"`
	TransactionID string          `gorm:"size:255" json:"transaction_id,omitempty"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

const (
	CancelReasonGuestRequest  = "guest_request"
	CancelReasonPropertyIssue = "property_issue"
	CancelReasonForceMajeure  = "force_majeure"
	CancelReasonPaymentIssue  = "payment_issue"
	CancelReasonOther         = "other"
)

// Cancellation records why an active reservation was cancelled. Cancelling is
// a status transition; the reservation row is never deleted.
type Cancellation struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID   uuid.UUID        `gorm:"type:uuid;not null;unique" json:"reservation_id"`
	Reason          string           `gorm:"size:20;not null" json:"reason"`
	ReasonDetails   string           `gorm:"type:text" json:"reason_details"`
	RefundAmount    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"refund_amount,omitempty"`
	CancellationFee decimal.Decimal  `gorm:"type:numeric(12,2);default:0" json:"cancellation_fee"`
	ProcessedByID   *uuid.UUID       `gorm:"type:uuid" json:"processed_by,omitempty"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Cancellation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CheckIn struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID      uuid.UUID  `gorm:"type:uuid;not null;unique" json:"reservation_id"`
	ActualCheckInTime  time.Time  `gorm:"not null" json:"actual_check_in_time"`
	CheckedInByID      *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	IDDocumentVerified bool       `gorm:"default:false" json:"id_document_verified"`
	PaymentCollected   bool       `gorm:"default:false" json:"payment_collected"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CheckOut struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID      uuid.UUID       `gorm:"type:uuid;not null;unique" json:"reservation_id"`
	ActualCheckOutTime time.Time       `gorm:"not null" json:"actual_check_out_time"`
	CheckedOutByID     *uuid.UUID      `gorm:"type:uuid" json:"checked_out_by,omitempty"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	AdditionalCharges  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"additional_charges"`
	DamageCharges      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"damage_charges"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *CheckOut) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
