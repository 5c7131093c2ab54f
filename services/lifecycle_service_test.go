package services

import (
	"testing"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func bookTestStay(t *testing.T, db *gorm.DB, checkIn, checkOut time.Time, method string) *models.Reservation {
	t.Helper()
	owner := createUser(t, db, models.RoleOwner)
	guest := createUser(t, db, models.RoleGuest)
	property := createProperty(t, db, owner)
	category := createCategory(t, db, property, "10000", 2)
	createRoom(t, db, property, category, "Deluxe", "10000", 2)

	reservation, err := Book(BookingRequest{
		PropertyID:     property.ID,
		RoomCategoryID: &category.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         2,
		Guest:          testGuest(),
		PaymentMethod:  method,
		UserID:         guest.ID,
	})
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	return reservation
}

func TestConfirmReservation(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	updated, err := ConfirmReservation(reservation.ID)
	if err != nil {
		t.Fatalf("ConfirmReservation failed: %v", err)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("status = %s, want confirmed", updated.Status)
	}

	// Confirming twice is an invalid transition.
	if _, err := ConfirmReservation(reservation.ID); err != ErrInvalidTransition {
		t.Errorf("double confirm: got %v, want ErrInvalidTransition", err)
	}
}

func TestRecordPaymentProjection(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	// Partial payment: partially_paid, and pending auto-confirms.
	updated, _, err := RecordPayment(reservation.ID, PaymentInput{
		Type:   models.PaymentTypeDeposit,
		Method: "card",
		Amount: money(t, "5000"),
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPartiallyPaid {
		t.Errorf("payment status = %s, want partially_paid", updated.PaymentStatus)
	}
	if !updated.AmountPaid.Equal(money(t, "5000")) {
		t.Errorf("amount paid = %s, want 5000", updated.AmountPaid)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("status = %s, want confirmed after any payment", updated.Status)
	}
	if updated.PaymentDate != nil {
		t.Error("payment date should not be set while balance remains")
	}

	// Balance lands: paid, payment_date stamped, outbox event emitted.
	updated, _, err = RecordPayment(reservation.ID, PaymentInput{
		Type:   models.PaymentTypeBalance,
		Method: "card",
		Amount: money(t, "15000"),
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", updated.PaymentStatus)
	}
	if !updated.AmountPaid.Equal(money(t, "20000")) {
		t.Errorf("amount paid = %s, want 20000", updated.AmountPaid)
	}
	if updated.PaymentDate == nil {
		t.Error("payment date should be stamped on the transition to paid")
	}

	var events int64
	db.Model(&models.OutboxEvent{}).
		Where("reservation_id = ? AND event_type = ?", reservation.ID, models.EventPaymentConfirmed).
		Count(&events)
	if events != 1 {
		t.Errorf("payment.confirmed events = %d, want 1", events)
	}
}

func TestRecordPaymentIgnoresRefunded(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	if _, _, err := RecordPayment(reservation.ID, PaymentInput{
		Type: models.PaymentTypeFullPayment, Method: "card", Amount: money(t, "20000"),
	}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	// Refund the payment, then replay the projection via another payment.
	if err := db.Model(&models.Payment{}).
		Where("reservation_id = ?", reservation.ID).
		Update("status", models.PaymentRefunded).Error; err != nil {
		t.Fatalf("failed to refund: %v", err)
	}

	updated, _, err := RecordPayment(reservation.ID, PaymentInput{
		Type: models.PaymentTypeDeposit, Method: "card", Amount: money(t, "3000"),
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if !updated.AmountPaid.Equal(money(t, "3000")) {
		t.Errorf("amount paid = %s, want 3000 (refunded payment excluded)", updated.AmountPaid)
	}
	if updated.PaymentStatus != models.PaymentStatusPartiallyPaid {
		t.Errorf("payment status = %s, want partially_paid", updated.PaymentStatus)
	}
}

func TestRecordPaymentOverpaymentKeepsFullAmount(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	updated, _, err := RecordPayment(reservation.ID, PaymentInput{
		Type: models.PaymentTypeFullPayment, Method: "card", Amount: money(t, "25000"),
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", updated.PaymentStatus)
	}
	if !updated.AmountPaid.Equal(money(t, "25000")) {
		t.Errorf("amount paid = %s, want the real 25000, not capped", updated.AmountPaid)
	}
}

func TestApprovePayment(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	updated, err := ApprovePayment(reservation.ID, "Front Desk")
	if err != nil {
		t.Fatalf("ApprovePayment failed: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", updated.PaymentStatus)
	}
	if !updated.AmountPaid.Equal(updated.TotalPrice) {
		t.Errorf("amount paid = %s, want the full total %s", updated.AmountPaid, updated.TotalPrice)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("status = %s, want confirmed", updated.Status)
	}
	if updated.CollectedBy != "Front Desk" {
		t.Errorf("collected by = %q", updated.CollectedBy)
	}

	// Approving again must not emit a second payment.confirmed event.
	if _, err := ApprovePayment(reservation.ID, "Front Desk"); err != nil {
		t.Fatalf("second ApprovePayment failed: %v", err)
	}
	var events int64
	db.Model(&models.OutboxEvent{}).
		Where("reservation_id = ? AND event_type = ?", reservation.ID, models.EventPaymentConfirmed).
		Count(&events)
	if events != 1 {
		t.Errorf("payment.confirmed events = %d, want 1", events)
	}
}

func TestCancelReservationGuard(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayNow)

	cancellation, err := CancelReservation(reservation.ID, CancellationInput{
		Reason: models.CancelReasonGuestRequest,
	})
	if err != nil {
		t.Fatalf("CancelReservation failed: %v", err)
	}
	if cancellation.Reason != models.CancelReasonGuestRequest {
		t.Errorf("reason = %s", cancellation.Reason)
	}

	var reloaded models.Reservation
	if err := db.First(&reloaded, "id = ?", reservation.ID).Error; err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if reloaded.Status != models.ReservationCancelled {
		t.Errorf("status = %s, want cancelled", reloaded.Status)
	}

	// Already cancelled.
	if _, err := CancelReservation(reservation.ID, CancellationInput{Reason: models.CancelReasonOther}); err != ErrCannotCancel {
		t.Errorf("cancelling twice: got %v, want ErrCannotCancel", err)
	}
}

func TestCancelReservationTooLate(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayOnArrival)

	// Check-in day has arrived.
	if err := db.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Update("check_in", date(t, 0)).Error; err != nil {
		t.Fatalf("failed to move check-in: %v", err)
	}

	if _, err := CancelReservation(reservation.ID, CancellationInput{Reason: models.CancelReasonGuestRequest}); err != ErrCannotCancel {
		t.Errorf("got %v, want ErrCannotCancel on check-in day", err)
	}
}

func TestCheckInAndCheckOutFlow(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 0), date(t, 2), models.PayOnArrival)

	// Pending reservations cannot check in.
	pending := bookTestStay(t, db, date(t, 5), date(t, 7), models.PayNow)
	if _, err := CheckInGuest(pending.ID, CheckInInput{ActualCheckInTime: time.Now()}); err != ErrInvalidTransition {
		t.Errorf("pending check-in: got %v, want ErrInvalidTransition", err)
	}

	checkIn, err := CheckInGuest(reservation.ID, CheckInInput{
		ActualCheckInTime:  time.Now(),
		IDDocumentVerified: true,
	})
	if err != nil {
		t.Fatalf("CheckInGuest failed: %v", err)
	}
	if !checkIn.IDDocumentVerified {
		t.Error("check-in record lost its fields")
	}

	var afterCheckIn models.Reservation
	db.First(&afterCheckIn, "id = ?", reservation.ID)
	if afterCheckIn.Status != models.ReservationConfirmed {
		t.Errorf("status after check-in = %s, want still confirmed", afterCheckIn.Status)
	}

	if _, err := CheckOutGuest(reservation.ID, CheckOutInput{
		ActualCheckOutTime: time.Now(),
		AdditionalCharges:  decimal.Zero,
		DamageCharges:      decimal.Zero,
	}); err != nil {
		t.Fatalf("CheckOutGuest failed: %v", err)
	}

	var afterCheckOut models.Reservation
	db.First(&afterCheckOut, "id = ?", reservation.ID)
	if afterCheckOut.Status != models.ReservationCompleted {
		t.Errorf("status after check-out = %s, want completed", afterCheckOut.Status)
	}
}

func TestMarkNoShow(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 10), date(t, 12), models.PayOnArrival)

	// Check-in still in the future: not a no-show yet.
	if _, err := MarkNoShow(reservation.ID); err != ErrInvalidTransition {
		t.Errorf("future stay: got %v, want ErrInvalidTransition", err)
	}

	if err := db.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{"check_in": date(t, -2), "check_out": date(t, -1)}).Error; err != nil {
		t.Fatalf("failed to move stay into the past: %v", err)
	}

	updated, err := MarkNoShow(reservation.ID)
	if err != nil {
		t.Fatalf("MarkNoShow failed: %v", err)
	}
	if updated.Status != models.ReservationNoShow {
		t.Errorf("status = %s, want no_show", updated.Status)
	}
}

func TestMarkNoShowRespectsArrival(t *testing.T) {
	db := setupTestDB(t)
	reservation := bookTestStay(t, db, date(t, 0), date(t, 2), models.PayOnArrival)

	if _, err := CheckInGuest(reservation.ID, CheckInInput{ActualCheckInTime: time.Now()}); err != nil {
		t.Fatalf("CheckInGuest failed: %v", err)
	}
	if err := db.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Update("check_in", date(t, -1)).Error; err != nil {
		t.Fatalf("failed to move check-in: %v", err)
	}

	if _, err := MarkNoShow(reservation.ID); err != ErrInvalidTransition {
		t.Errorf("guest arrived: got %v, want ErrInvalidTransition", err)
	}
}
