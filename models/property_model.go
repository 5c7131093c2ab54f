package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PropertyActive   = "active"
	PropertyPending  = "pending"
	PropertyInactive = "inactive"
)

type Property struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Type          string          `gorm:"size:20" json:"type"`
	City          string          `gorm:"size:100" json:"city"`
	Country       string          `gorm:"size:100" json:"country"`
	Address       string          `gorm:"type:text" json:"address"`
	Description   string          `gorm:"type:text" json:"description"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_night"`
	Currency      string          `gorm:"size:3;default:'NGN'" json:"currency"`
	Status        string          `gorm:"size:10;not null;default:'active'" json:"status"`
	CheckInTime   string          `gorm:"size:10;default:'14:00'" json:"check_in_time"`
	CheckOutTime  string          `gorm:"size:10;default:'11:00'" json:"check_out_time"`

	Owner          User           `gorm:"foreignkey:OwnerID" json:"owner,omitempty"`
	RoomCategories []RoomCategory `gorm:"foreignkey:PropertyID" json:"room_categories,omitempty"`
	Rooms          []Room         `gorm:"foreignkey:PropertyID" json:"rooms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsBookable reports whether the property accepts new reservations.
func (p *Property) IsBookable() bool {
	return p.Status == PropertyActive
}

// PropertyAvailability is the per-property, per-date calendar: a blackout
// flag, an optional nightly price override, and an optional discount scoped
// to that single date (the date itself is the discount window).
type PropertyAvailability struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_property_date" json:"property_id"`
	Date               time.Time        `gorm:"type:date;not null;uniqueIndex:idx_property_date" json:"date"`
	// No column default: a default tag would make GORM drop Available=false
	// on insert, and a blackout is exactly Available=false.
	Available          bool             `gorm:"not null" json:"available"`
	Price              *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	MinimumStay        int              `gorm:"default:1" json:"minimum_stay"`
	HasDiscount        bool             `gorm:"default:false" json:"has_discount"`
	DiscountPercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percentage,omitempty"`

	Property Property `gorm:"foreignkey:PropertyID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *PropertyAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
