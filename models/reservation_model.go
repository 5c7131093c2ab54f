package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
	ReservationNoShow    = "no_show"
)

const (
	PayNow       = "pay_now"
	PayOnArrival = "pay_on_arrival"
)

const (
	PaymentStatusPending       = "pending"
	PaymentStatusPaid          = "paid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusFailed        = "failed"
	PaymentStatusRefunded      = "refunded"
)

type Reservation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	RoomID         *uuid.UUID `gorm:"type:uuid;index" json:"room_id,omitempty"`
	RoomCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"room_category_id,omitempty"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`

	CheckIn  time.Time `gorm:"type:date;not null" json:"check_in"`
	CheckOut time.Time `gorm:"type:date;not null" json:"check_out"`
	Guests   int       `gorm:"not null" json:"guests"`

	// Pricing snapshot taken at booking time. Later edits to the category's
	// discount never touch these.
	TotalPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	OriginalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"original_price"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percentage"`

	Status string `gorm:"size:15;not null;default:'pending'" json:"status"`

	GuestFirstName string `gorm:"size:100;not null" json:"guest_first_name"`
	GuestLastName  string `gorm:"size:100;not null" json:"guest_last_name"`
	GuestEmail     string `gorm:"size:255;not null" json:"guest_email"`
	GuestPhone     string `gorm:"size:20;not null" json:"guest_phone"`

	PaymentMethod string          `gorm:"size:15;not null" json:"payment_method"`
	PaymentStatus string          `gorm:"size:15;not null;default:'pending'" json:"payment_status"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount_paid"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	CollectedBy   string          `gorm:"size:100" json:"collected_by,omitempty"`

	SpecialRequests string `gorm:"type:text" json:"special_requests,omitempty"`

	Reference string `gorm:"size:20;unique;not null" json:"reference"`

	Property     Property      `gorm:"foreignkey:PropertyID" json:"property,omitempty"`
	Room         *Room         `gorm:"foreignkey:RoomID" json:"room,omitempty"`
	RoomCategory *RoomCategory `gorm:"foreignkey:RoomCategoryID" json:"-"`
	User         User          `gorm:"foreignkey:UserID" json:"-"`
	Payments     []Payment     `gorm:"foreignkey:ReservationID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Nights is the stay length; the check-out night is excluded.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r *Reservation) IsActive() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationPending
}

// CanCancel: only active reservations whose check-in is still in the future.
func (r *Reservation) CanCancel(today time.Time) bool {
	return r.IsActive() && r.CheckIn.After(today)
}

// ReviewInvitation is the single-use token a guest uses to leave a review
// after their stay. Created by the outbox dispatcher, never by the booking
// transaction itself.
type ReviewInvitation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID uuid.UUID  `gorm:"type:uuid;not null;unique" json:"reservation_id"`
	Token         string     `gorm:"size:255;unique;not null" json:"token"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	OpenedAt      *time.Time `json:"opened_at,omitempty"`
	Completed     bool       `gorm:"default:false" json:"completed"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (ri *ReviewInvitation) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
