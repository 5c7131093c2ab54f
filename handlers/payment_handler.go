package handlers

import (
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	PaymentType   string `json:"payment_type" validate:"required,oneof=deposit full_payment balance"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	TransactionID string `json:"transaction_id,omitempty"`
}

func RecordPayment(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be a positive number"})
	}

	updated, payment, err := services.RecordPayment(reservation.ID, services.PaymentInput{
		Type:          req.PaymentType,
		Method:        req.PaymentMethod,
		Amount:        amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment":     payment,
		"reservation": updated,
	})
}

type ApprovePaymentRequest struct {
	CollectedBy string `json:"collected_by,omitempty"`
}

// ApprovePayment settles the full balance in one owner action, for payments
// that happened outside the platform.
func ApprovePayment(c *fiber.Ctx) error {
	reservation, err := ownedReservation(c)
	if reservation == nil {
		return err
	}

	var req ApprovePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	updated, err := services.ApprovePayment(reservation.ID, req.CollectedBy)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

// MonthlyInvoice returns the owner's statement for a billing month:
// GET /owner/invoices?year=2026&month=8
func MonthlyInvoice(c *fiber.Ctx) error {
	userID, err := middleware.TokenUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	now := time.Now().UTC()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be 1-12"})
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	invoice, err := services.MonthlyInvoiceForOwner(userID, periodStart, periodEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build invoice"})
	}
	return c.JSON(invoice)
}
