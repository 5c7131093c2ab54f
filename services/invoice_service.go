package services

import (
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VATRate is charged on top of the collected amount on every owner invoice.
var VATRate = decimal.RequireFromString("0.075")

type InvoiceLine struct {
	ReservationID uuid.UUID       `json:"reservation_id"`
	Reference     string          `json:"reference"`
	PropertyName  string          `json:"property_name"`
	GuestName     string          `json:"guest_name"`
	CheckIn       time.Time       `json:"check_in"`
	CheckOut      time.Time       `json:"check_out"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentDate   *time.Time      `json:"payment_date"`
}

type MonthlyInvoice struct {
	OwnerID     uuid.UUID       `json:"owner_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Lines       []InvoiceLine   `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
}

// MonthlyInvoiceForOwner aggregates every fully-paid reservation across the
// owner's properties whose payment landed in [periodStart, periodEnd), and
// charges the fixed VAT on top of the summed collections.
func MonthlyInvoiceForOwner(ownerID uuid.UUID, periodStart, periodEnd time.Time) (*MonthlyInvoice, error) {
	var reservations []models.Reservation
	err := database.DB.
		Preload("Property").
		Joins("JOIN properties ON properties.id = reservations.property_id").
		Where("properties.owner_id = ?", ownerID).
		Where("reservations.payment_status = ?", models.PaymentStatusPaid).
		Where("reservations.payment_date >= ? AND reservations.payment_date < ?", periodStart, periodEnd).
		Order("reservations.payment_date asc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	invoice := &MonthlyInvoice{
		OwnerID:     ownerID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Subtotal:    decimal.Zero,
	}
	for _, r := range reservations {
		invoice.Lines = append(invoice.Lines, InvoiceLine{
			ReservationID: r.ID,
			Reference:     r.Reference,
			PropertyName:  r.Property.Name,
			GuestName:     r.GuestFirstName + " " + r.GuestLastName,
			CheckIn:       r.CheckIn,
			CheckOut:      r.CheckOut,
			AmountPaid:    r.AmountPaid,
			PaymentDate:   r.PaymentDate,
		})
		invoice.Subtotal = invoice.Subtotal.Add(r.AmountPaid)
	}

	invoice.VAT = invoice.Subtotal.Mul(VATRate)
	invoice.Total = invoice.Subtotal.Add(invoice.VAT)
	return invoice, nil
}
