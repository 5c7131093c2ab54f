package services

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EffectiveCategoryPrice is the category's nightly rate with its own
// discount applied when the window covers today.
func EffectiveCategoryPrice(rc *models.RoomCategory) decimal.Decimal {
	price, _ := EffectivePrice(rc.BasePrice, CategoryDiscount(rc), DateDiscount{}, today())
	return price
}

// SaveRoomCategory persists a category and keeps its child rooms in step,
// all in one transaction so no partial mirror is ever visible. A lapsed
// discount is expired on the way in (lazy expiry: reads still re-check the
// window, this only corrects the stored flag).
func SaveRoomCategory(category *models.RoomCategory) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if category.HasDiscount && category.DiscountEndDate != nil && category.DiscountEndDate.Before(today()) {
			category.HasDiscount = false
		}
		if err := tx.Save(category).Error; err != nil {
			return err
		}
		return SyncRoomsFromCategory(tx, category)
	})
}

// SyncRoomsFromCategory mirrors the category's name, capacity and effective
// price onto every child room, and guarantees the category has at least one
// room by creating a default when none exist. Room identities are stable:
// existing rows are updated in place, never replaced.
func SyncRoomsFromCategory(tx *gorm.DB, category *models.RoomCategory) error {
	effective := EffectiveCategoryPrice(category)

	var rooms []models.Room
	if err := tx.Where("room_category_id = ?", category.ID).Find(&rooms).Error; err != nil {
		return err
	}

	for i := range rooms {
		room := &rooms[i]
		room.Name = category.Name
		room.MaxGuests = category.MaxOccupancy
		room.BedType = category.BedType
		room.PricePerNight = effective
		if err := tx.Save(room).Error; err != nil {
			return err
		}
	}

	if len(rooms) == 0 {
		defaultRoom := models.Room{
			PropertyID:     category.PropertyID,
			RoomCategoryID: &category.ID,
			Name:           category.Name,
			Type:           category.Name,
			MaxGuests:      category.MaxOccupancy,
			BedType:        category.BedType,
			PricePerNight:  effective,
			Available:      true,
		}
		return tx.Create(&defaultRoom).Error
	}
	return nil
}

// SetRoomAvailability upserts one date in a room's blackout/price-override
// calendar. The (room, date) pair is unique.
func SetRoomAvailability(entry *models.RoomAvailability) error {
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"available", "price", "updated_at"}),
	}).Create(entry).Error
}

// SetPropertyAvailability upserts one date in a property's calendar,
// including its single-date discount.
func SetPropertyAvailability(entry *models.PropertyAvailability) error {
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"available", "price", "minimum_stay", "has_discount", "discount_percentage", "updated_at",
		}),
	}).Create(entry).Error
}
