package handlers

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PropertyRequest struct {
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	Address       string `json:"address,omitempty"`
	Description   string `json:"description,omitempty"`
	PricePerNight string `json:"price_per_night,omitempty"`
	Currency      string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=active pending inactive"`
	CheckInTime   string `json:"check_in_time,omitempty"`
	CheckOutTime  string `json:"check_out_time,omitempty"`
}

func ListProperties(c *fiber.Ctx) error {
	query := database.DB.Where("status = ?", models.PropertyActive)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var properties []models.Property
	if err := query.Order("created_at desc").Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load properties"})
	}
	return c.JSON(properties)
}

func GetProperty(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var property models.Property
	err = database.DB.Preload("RoomCategories").Preload("RoomCategories.Rooms").
		First(&property, "id = ?", propertyID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}
	return c.JSON(property)
}

func CreateProperty(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	property := models.Property{
		OwnerID:     userID,
		Name:        req.Name,
		Type:        req.Type,
		City:        req.City,
		Country:     req.Country,
		Address:     req.Address,
		Description: req.Description,
	}
	if req.PricePerNight != "" {
		price, err := decimal.NewFromString(req.PricePerNight)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
		}
		property.PricePerNight = price
	}
	if req.Currency != "" {
		property.Currency = req.Currency
	}
	if req.Status != "" {
		property.Status = req.Status
	}
	if req.CheckInTime != "" {
		property.CheckInTime = req.CheckInTime
	}
	if req.CheckOutTime != "" {
		property.CheckOutTime = req.CheckOutTime
	}

	if err := database.DB.Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create property"})
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// ownedProperty loads a property and verifies the caller owns it.
func ownedProperty(c *fiber.Ctx, param string) (*models.Property, error) {
	propertyID, err := uuid.Parse(c.Params(param))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var property models.Property
	if err := database.DB.First(&property, "id = ?", propertyID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}
	if property.OwnerID != userID && middleware.TokenRole(c) != models.RoleAdmin {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return &property, nil
}

func UpdateProperty(c *fiber.Ctx) error {
	property, err := ownedProperty(c, "id")
	if property == nil {
		return err
	}

	var req PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != "" {
		property.Name = req.Name
	}
	if req.Type != "" {
		property.Type = req.Type
	}
	if req.City != "" {
		property.City = req.City
	}
	if req.Country != "" {
		property.Country = req.Country
	}
	if req.Address != "" {
		property.Address = req.Address
	}
	if req.Description != "" {
		property.Description = req.Description
	}
	if req.PricePerNight != "" {
		price, err := decimal.NewFromString(req.PricePerNight)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
		}
		property.PricePerNight = price
	}
	if req.Currency != "" {
		property.Currency = req.Currency
	}
	if req.Status != "" {
		property.Status = req.Status
	}
	if req.CheckInTime != "" {
		property.CheckInTime = req.CheckInTime
	}
	if req.CheckOutTime != "" {
		property.CheckOutTime = req.CheckOutTime
	}

	if err := database.DB.Save(property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update property"})
	}
	return c.JSON(property)
}

type RoomCategoryRequest struct {
	Name               string  `json:"name" validate:"required"`
	Description        string  `json:"description,omitempty"`
	BasePrice          string  `json:"base_price" validate:"required"`
	MaxOccupancy       int     `json:"max_occupancy" validate:"required,min=1"`
	BedType            string  `json:"bed_type,omitempty"`
	HasDiscount        bool    `json:"has_discount,omitempty"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
	DiscountStartDate  *string `json:"discount_start_date,omitempty"`
	DiscountEndDate    *string `json:"discount_end_date,omitempty"`
}

func (req *RoomCategoryRequest) apply(category *models.RoomCategory) error {
	category.Name = req.Name
	category.Description = req.Description
	category.MaxOccupancy = req.MaxOccupancy
	category.BedType = req.BedType

	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return err
	}
	category.BasePrice = basePrice

	category.HasDiscount = req.HasDiscount
	category.DiscountPercentage = nil
	category.DiscountStartDate = nil
	category.DiscountEndDate = nil
	if req.DiscountPercentage != nil {
		pct, err := decimal.NewFromString(*req.DiscountPercentage)
		if err != nil {
			return err
		}
		category.DiscountPercentage = &pct
	}
	if req.DiscountStartDate != nil {
		start, err := parseDate(*req.DiscountStartDate)
		if err != nil {
			return err
		}
		category.DiscountStartDate = &start
	}
	if req.DiscountEndDate != nil {
		end, err := parseDate(*req.DiscountEndDate)
		if err != nil {
			return err
		}
		category.DiscountEndDate = &end
	}
	return nil
}

func CreateRoomCategory(c *fiber.Ctx) error {
	property, err := ownedProperty(c, "id")
	if property == nil {
		return err
	}

	var req RoomCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category := models.RoomCategory{PropertyID: property.ID}
	if err := req.apply(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category payload: " + err.Error()})
	}

	if err := services.SaveRoomCategory(&category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save category"})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func UpdateRoomCategory(c *fiber.Ctx) error {
	property, err := ownedProperty(c, "id")
	if property == nil {
		return err
	}
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}

	var category models.RoomCategory
	if err := database.DB.First(&category, "id = ? AND property_id = ?", categoryID, property.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req RoomCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.apply(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category payload: " + err.Error()})
	}

	if err := services.SaveRoomCategory(&category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save category"})
	}
	return c.JSON(category)
}

func ListPropertyRooms(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var rooms []models.Room
	err = database.DB.Where("property_id = ?", propertyID).
		Order("price_per_night asc").Find(&rooms).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rooms"})
	}
	return c.JSON(rooms)
}

type CalendarEntryRequest struct {
	Date               string  `json:"date" validate:"required"`
	Available          *bool   `json:"available,omitempty"`
	Price              *string `json:"price,omitempty"`
	MinimumStay        int     `json:"minimum_stay,omitempty"`
	HasDiscount        bool    `json:"has_discount,omitempty"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
}

// SetPropertyCalendar upserts one date of the property calendar: blackout,
// price override, single-date discount.
func SetPropertyCalendar(c *fiber.Ctx) error {
	property, err := ownedProperty(c, "id")
	if property == nil {
		return err
	}

	var req CalendarEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	entry := models.PropertyAvailability{
		PropertyID:  property.ID,
		Date:        date,
		Available:   true,
		MinimumStay: 1,
		HasDiscount: req.HasDiscount,
	}
	if req.Available != nil {
		entry.Available = *req.Available
	}
	if req.MinimumStay > 0 {
		entry.MinimumStay = req.MinimumStay
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
		}
		entry.Price = &price
	}
	if req.DiscountPercentage != nil {
		pct, err := decimal.NewFromString(*req.DiscountPercentage)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid discount percentage"})
		}
		entry.DiscountPercentage = &pct
	}

	if err := services.SetPropertyAvailability(&entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save calendar entry"})
	}
	return c.JSON(entry)
}

// SetRoomCalendar upserts one date of a room's calendar.
func SetRoomCalendar(c *fiber.Ctx) error {
	property, err := ownedProperty(c, "id")
	if property == nil {
		return err
	}
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ? AND property_id = ?", roomID, property.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	var req CalendarEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	entry := models.RoomAvailability{
		RoomID:    room.ID,
		Date:      date,
		Available: true,
	}
	if req.Available != nil {
		entry.Available = *req.Available
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price"})
		}
		entry.Price = &price
	}

	if err := services.SetRoomAvailability(&entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save calendar entry"})
	}
	return c.JSON(entry)
}
