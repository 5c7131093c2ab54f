package handlers

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CheckAvailability is the public availability probe:
// GET /properties/:id/availability?category_id=&check_in=&check_out=&guests=
func CheckAvailability(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}
	categoryID, err := uuid.Parse(c.Query("category_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	guests := c.QueryInt("guests", 1)

	result, err := services.CheckAvailability(database.DB, propertyID, categoryID, checkIn, checkOut, guests)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

type CreateReservationRequest struct {
	PropertyID      string `json:"property_id" validate:"required,uuid"`
	RoomID          string `json:"room_id,omitempty" validate:"omitempty,uuid"`
	RoomCategoryID  string `json:"room_category_id,omitempty" validate:"omitempty,uuid"`
	CheckIn         string `json:"check_in" validate:"required"`
	CheckOut        string `json:"check_out" validate:"required"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	GuestFirstName  string `json:"guest_first_name" validate:"required"`
	GuestLastName   string `json:"guest_last_name" validate:"required"`
	GuestEmail      string `json:"guest_email" validate:"required,email"`
	GuestPhone      string `json:"guest_phone" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=pay_now pay_on_arrival"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func CreateReservation(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.RoomID == "" && req.RoomCategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id or room_category_id is required"})
	}

	propertyID, _ := uuid.Parse(req.PropertyID)
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_out must be YYYY-MM-DD"})
	}

	booking := services.BookingRequest{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		Guest: services.GuestContact{
			FirstName: req.GuestFirstName,
			LastName:  req.GuestLastName,
			Email:     req.GuestEmail,
			Phone:     req.GuestPhone,
		},
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
		UserID:          userID,
	}
	if req.RoomID != "" {
		roomID, _ := uuid.Parse(req.RoomID)
		booking.RoomID = &roomID
	}
	if req.RoomCategoryID != "" {
		categoryID, _ := uuid.Parse(req.RoomCategoryID)
		booking.RoomCategoryID = &categoryID
	}

	reservation, err := services.Book(booking)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

func ListMyReservations(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var reservations []models.Reservation
	err = database.DB.Preload("Property").Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reservations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reservations"})
	}
	return c.JSON(reservations)
}

func GetReservation(c *fiber.Ctx) error {
	reservationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var reservation models.Reservation
	err = database.DB.Preload("Property").Preload("Room").Preload("Payments").
		First(&reservation, "id = ?", reservationID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reservation not found"})
	}

	// Guests see their own bookings; owners see bookings on their properties.
	role := middleware.TokenRole(c)
	if reservation.UserID != userID && reservation.Property.OwnerID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return c.JSON(reservation)
}
