package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomCategory is a priced, capacity-bound class of rooms within a property.
// Child rooms mirror its name, capacity and effective price; the sync runs in
// the same transaction as every category write (services.SaveRoomCategory).
type RoomCategory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	MaxOccupancy int             `gorm:"not null" json:"max_occupancy"`
	BedType      string          `gorm:"size:50" json:"bed_type"`

	// Discount descriptor. The stored flag alone is never authoritative:
	// the window is re-checked on every read (lazy expiry only corrects the
	// flag on the next write).
	HasDiscount        bool             `gorm:"default:false" json:"has_discount"`
	DiscountPercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percentage,omitempty"`
	DiscountStartDate  *time.Time       `gorm:"type:date" json:"discount_start_date,omitempty"`
	DiscountEndDate    *time.Time       `gorm:"type:date" json:"discount_end_date,omitempty"`

	Property Property `gorm:"foreignkey:PropertyID" json:"-"`
	Rooms    []Room   `gorm:"foreignkey:RoomCategoryID" json:"rooms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (rc *RoomCategory) BeforeCreate(tx *gorm.DB) error {
	if rc.ID == uuid.Nil {
		rc.ID = uuid.New()
	}
	return nil
}

type Room struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	RoomCategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"room_category_id,omitempty"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Type           string          `gorm:"size:50" json:"type"`
	MaxGuests      int             `gorm:"not null" json:"max_guests"`
	BedType        string          `gorm:"size:50" json:"bed_type"`
	PricePerNight  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_night"`
	Available      bool            `gorm:"default:true" json:"available"`

	Property     Property      `gorm:"foreignkey:PropertyID" json:"-"`
	RoomCategory *RoomCategory `gorm:"foreignkey:RoomCategoryID" json:"room_category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RoomAvailability is the per-room blackout/price-override calendar,
// independent of reservation conflicts.
type RoomAvailability struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	RoomID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_room_date" json:"room_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_room_date" json:"date"`
	// No column default: a default tag would make GORM drop Available=false
	// on insert, and a blackout is exactly Available=false.
	Available bool             `gorm:"not null" json:"available"`
	Price     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price,omitempty"`

	Room Room `gorm:"foreignkey:RoomID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *RoomAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
