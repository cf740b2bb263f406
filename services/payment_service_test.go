package services

import (
	"math"
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentService(t *testing.T) (*PaymentService, *fakeGateway, *models.Room) {
	t.Helper()
	db := newTestDB(t)
	room := seedRoom(t, db, "Garden View 101", "Standard", 120)
	gw := newFakeGateway()
	users := NewUserService(db)
	bookings := NewBookingService(db, users)
	return NewPaymentService(db, gw, bookings), gw, room
}

func createTestBooking(t *testing.T, svc *PaymentService, room *models.Room) *models.Booking {
	t.Helper()
	booking, _, err := svc.Bookings.CreateReservation(CreateReservationInput{
		UserEmail:    "guest@example.com",
		Name:         "Guest One",
		Phone:        "+91 90000 00001",
		Street:       "2 Hill Rd",
		City:         "Pune",
		Country:      "IN",
		CheckInDate:  "2026-05-01",
		CheckOutDate: "2026-05-03",
		BookingInfo:  []ReservationItemInput{{RoomID: room.ID}},
	})
	require.NoError(t, err)
	return booking
}

func TestCreateOrderForBooking(t *testing.T) {
	svc, _, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	result, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	// 2 nights x 120.00 in minor units
	assert.Equal(t, int64(24000), result.Order.Amount)
	assert.Equal(t, "INR", result.Order.Currency)
	assert.Equal(t, "rzp_test_key", result.KeyID)

	require.NotNil(t, result.Payment.BookingID)
	assert.Equal(t, booking.ID, *result.Payment.BookingID)
	assert.Equal(t, models.OrderStatusCreated, result.Payment.Status)
	assert.Empty(t, result.Payment.Quote)

	// creating an order moves the booking to pending
	reloaded, err := svc.Bookings.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestCreateOrderDedupesOpenOrders(t *testing.T) {
	svc, _, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	first, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	second, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	var count int64
	svc.DB.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrderReopensWhenTotalChanged(t *testing.T) {
	svc, _, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	first, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	// admin reprices the booking after the order was opened
	newTotal := 300.0
	_, err = svc.Bookings.Update(booking.ID, UpdateBookingInput{TotalAmount: &newTotal})
	require.NoError(t, err)

	second, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)
	assert.NotEqual(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, int64(30000), second.Order.Amount)

	// the stale order is retired, not left open for the reconciler
	stale, err := svc.GetByOrderID(first.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusExpired, stale.Status)
}

func TestCreateOrderRejectsPaidBooking(t *testing.T) {
	svc, _, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	_, err := svc.Bookings.UpdatePaymentStatus(booking.ID, models.PaymentStatusPaid, nil)
	require.NoError(t, err)

	_, err = svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.Error(t, err)
	assert.Equal(t, "booking_already_paid", err.Error())
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _ := newPaymentService(t)

	_, err := svc.CreateOrder(CreateOrderInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	missing := uint(777)
	_, err = svc.CreateOrder(CreateOrderInput{BookingID: &missing})
	require.Error(t, err)
	assert.Equal(t, "booking_not_found", err.Error())
}

func TestCreateOrderForQuote(t *testing.T) {
	svc, _, room := newPaymentService(t)

	result, err := svc.CreateOrder(CreateOrderInput{Quote: &models.QuoteSnapshot{
		UserEmail:    "quote@example.com",
		CheckInDate:  "2026-06-01",
		CheckOutDate: "2026-06-04",
		BookingInfo:  []models.QuoteItem{{RoomID: room.ID, RoomType: "Standard", RoomAmount: 120}},
	}})
	require.NoError(t, err)

	// 3 nights x 120.00
	assert.Equal(t, int64(36000), result.Order.Amount)
	assert.Nil(t, result.Payment.BookingID)

	// the snapshot is stored for later materialization
	q, err := result.Payment.QuoteSnapshot()
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, models.QuoteSnapshotVersion, q.Version)
	assert.Equal(t, "quote@example.com", q.UserEmail)
}

func TestCreateOrderRejectsBadAmounts(t *testing.T) {
	svc, _, room := newPaymentService(t)

	cases := []struct {
		name  string
		total float64
	}{
		{"zero", 0},
		{"negative", -5},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total := tc.total
			_, err := svc.CreateOrder(CreateOrderInput{Quote: &models.QuoteSnapshot{
				UserEmail:    "amounts@example.com",
				CheckInDate:  "2026-06-01",
				CheckOutDate: "2026-06-02",
				BookingInfo:  []models.QuoteItem{{RoomID: room.ID, RoomType: "Standard", RoomAmount: 120}},
				TotalAmount:  &total,
			}})
			require.Error(t, err)
			assert.Equal(t, "invalid_amount", err.Error())
		})
	}

	// no payment row may be left behind by a rejected order
	var count int64
	svc.DB.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsBadQuote(t *testing.T) {
	svc, _, _ := newPaymentService(t)

	_, err := svc.CreateOrder(CreateOrderInput{Quote: &models.QuoteSnapshot{
		UserEmail: "quote@example.com",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_quote")
}

func TestVerifyPaymentMarksBookingPaid(t *testing.T) {
	svc, gw, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	created, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	orderID := created.Order.ID
	result, err := svc.VerifyPayment(orderID, "pay_OK1", gw.sign(orderID, "pay_OK1"))
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPaid, result.Payment.Status)
	assert.Equal(t, models.PaymentStatusPaid, result.Booking.PaymentStatus)
	require.NotNil(t, result.Booking.PaymentID)
	assert.Equal(t, "pay_OK1", *result.Booking.PaymentID)
}

func TestVerifyPaymentIgnoresReplayedCallbacks(t *testing.T) {
	svc, gw, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	created, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	orderID := created.Order.ID
	_, err = svc.VerifyPayment(orderID, "pay_OK1", gw.sign(orderID, "pay_OK1"))
	require.NoError(t, err)

	// a forged second callback must not flip the settled payment to failed
	_, err = svc.VerifyPayment(orderID, "pay_EVIL", "forged-signature")
	require.Error(t, err)
	assert.Equal(t, "payment_already_processed", err.Error())

	// and a genuine duplicate is rejected the same way
	_, err = svc.VerifyPayment(orderID, "pay_OK1", gw.sign(orderID, "pay_OK1"))
	require.Error(t, err)
	assert.Equal(t, "payment_already_processed", err.Error())

	payment, err := svc.GetByOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, payment.Status)

	reloaded, err := svc.Bookings.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
	require.NotNil(t, reloaded.PaymentID)
	assert.Equal(t, "pay_OK1", *reloaded.PaymentID)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	svc, _, room := newPaymentService(t)
	booking := createTestBooking(t, svc, room)

	created, err := svc.CreateOrder(CreateOrderInput{BookingID: &booking.ID})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(created.Order.ID, "pay_BAD", "forged-signature")
	require.Error(t, err)
	assert.Equal(t, "invalid_signature", err.Error())

	// both sides are marked failed
	payment, err := svc.GetByOrderID(created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, payment.Status)

	reloaded, err := svc.Bookings.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, reloaded.PaymentStatus)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	svc, gw, _ := newPaymentService(t)

	_, err := svc.VerifyPayment("order_ghost", "pay_1", gw.sign("order_ghost", "pay_1"))
	require.Error(t, err)
	assert.Equal(t, "payment_not_found", err.Error())
}

func TestVerifyPaymentMaterializesQuoteBooking(t *testing.T) {
	svc, gw, room := newPaymentService(t)

	created, err := svc.CreateOrder(CreateOrderInput{Quote: &models.QuoteSnapshot{
		UserEmail:    "late.booker@example.com",
		CheckInDate:  "2026-07-01",
		CheckOutDate: "2026-07-02",
		BookingInfo:  []models.QuoteItem{{RoomID: room.ID, RoomType: "Standard", RoomAmount: 120}},
	}})
	require.NoError(t, err)

	orderID := created.Order.ID
	result, err := svc.VerifyPayment(orderID, "pay_Q1", gw.sign(orderID, "pay_Q1"))
	require.NoError(t, err)

	// a booking now exists, born paid and linked back to the payment
	require.NotNil(t, result.Booking)
	assert.Equal(t, models.PaymentStatusPaid, result.Booking.PaymentStatus)
	assert.Equal(t, "late.booker@example.com", result.Booking.UserEmail)

	payment, err := svc.GetByOrderID(orderID)
	require.NoError(t, err)
	require.NotNil(t, payment.BookingID)
	assert.Equal(t, result.Booking.ID, *payment.BookingID)
}

func TestVerifyPaymentQuotePathWithEmptySnapshot(t *testing.T) {
	svc, gw, _ := newPaymentService(t)

	// a paid order with neither booking nor snapshot cannot be settled
	payment := models.Payment{
		Amount:   10000,
		Currency: "INR",
		OrderID:  "order_limbo",
		Status:   models.OrderStatusCreated,
	}
	require.NoError(t, svc.DB.Create(&payment).Error)

	_, err := svc.VerifyPayment("order_limbo", "pay_L1", gw.sign("order_limbo", "pay_L1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_quote")

	// the payment itself stays paid; the money is real even if unlinked
	reloaded, err := svc.GetByOrderID("order_limbo")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, reloaded.Status)
	assert.Nil(t, reloaded.BookingID)
}
