package notifications

import (
	"fmt"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
)

const dateLayout = "2006-01-02"

// GuestBookingEmail is the confirmation sent to the guest contact on a new
// reservation.
func GuestBookingEmail(r *models.Reservation) (subject, body string) {
	subject = fmt.Sprintf("Booking Confirmation - %s", r.Property.Name)
	body = fmt.Sprintf(
		"<h2>Booking Received</h2>"+
			"<p>Dear %s %s,</p>"+
			"<p>Your booking at %s has been received. Your reference is <b>%s</b>.</p>"+
			"<p><strong>Check-in:</strong> %s</p>"+
			"<p><strong>Check-out:</strong> %s</p>"+
			"<p><strong>Guests:</strong> %d</p>"+
			"<p><strong>Total Price:</strong> %s %s</p>"+
			"<p>Thank you for choosing Reserve With Ease!</p>",
		r.GuestFirstName, r.GuestLastName,
		r.Property.Name, r.Reference,
		r.CheckIn.Format(dateLayout), r.CheckOut.Format(dateLayout),
		r.Guests, r.Property.Currency, r.TotalPrice.StringFixed(2),
	)
	return subject, body
}

// OwnerBookingEmail alerts the property owner about a new reservation.
func OwnerBookingEmail(r *models.Reservation) (subject, body string) {
	subject = fmt.Sprintf("New Booking - %s", r.Property.Name)
	body = fmt.Sprintf(
		"<h2>New Booking Received</h2>"+
			"<p>You have a new booking for %s (reference %s).</p>"+
			"<p><strong>Guest:</strong> %s %s (%s)</p>"+
			"<p><strong>Stay:</strong> %s to %s, %d guest(s)</p>"+
			"<p><strong>Total:</strong> %s %s</p>",
		r.Property.Name, r.Reference,
		r.GuestFirstName, r.GuestLastName, r.GuestEmail,
		r.CheckIn.Format(dateLayout), r.CheckOut.Format(dateLayout), r.Guests,
		r.Property.Currency, r.TotalPrice.StringFixed(2),
	)
	return subject, body
}

// PaymentConfirmedEmail tells the guest their booking is fully paid.
func PaymentConfirmedEmail(r *models.Reservation) (subject, body string) {
	subject = fmt.Sprintf("Payment Confirmed - %s", r.Property.Name)
	body = fmt.Sprintf(
		"<h2>Payment Confirmed</h2>"+
			"<p>Dear %s %s,</p>"+
			"<p>Your payment of %s %s for booking %s at %s has been confirmed.</p>"+
			"<p>We look forward to hosting you on %s.</p>",
		r.GuestFirstName, r.GuestLastName,
		r.Property.Currency, r.AmountPaid.StringFixed(2),
		r.Reference, r.Property.Name,
		r.CheckIn.Format(dateLayout),
	)
	return subject, body
}
