package services

import (
	"strings"
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T) (*BookingService, *models.Room) {
	t.Helper()
	db := newTestDB(t)
	room := seedRoom(t, db, "Lake View 201", "Deluxe", 150)
	users := NewUserService(db)
	return NewBookingService(db, users), room
}

func completeInput(room *models.Room) CreateReservationInput {
	return CreateReservationInput{
		UserEmail:    "Jane.Doe@Example.com",
		Name:         "Jane Doe",
		Phone:        "+91 99999 11111",
		Street:       "1 Baker St",
		City:         "Mumbai",
		Country:      "IN",
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-04",
		BookingInfo: []ReservationItemInput{
			{RoomID: room.ID, Pax: []models.Pax{{Name: "Jane Doe", AdultStatus: "adult"}}},
		},
	}
}

func TestCreateReservationComputesTotalAndLinksUser(t *testing.T) {
	svc, room := newBookingService(t)

	booking, warning, err := svc.CreateReservation(completeInput(room))
	require.NoError(t, err)
	assert.Nil(t, warning)

	// 3 nights at the room's rate snapshot
	assert.Equal(t, 3*150.0, booking.TotalAmount)
	assert.Equal(t, models.PaymentStatusNotPaid, booking.PaymentStatus)
	assert.Equal(t, "jane.doe@example.com", booking.UserEmail)

	require.Len(t, booking.BookingInfo, 1)
	assert.Equal(t, "Deluxe", booking.BookingInfo[0].RoomType)
	assert.Equal(t, 150.0, booking.BookingInfo[0].RoomAmount)

	assert.True(t, strings.HasPrefix(booking.BookCode, "BK"))
	assert.Len(t, booking.BookCode, 11)

	require.NotNil(t, booking.UserID)
	require.NotNil(t, booking.User)
	assert.Equal(t, "Jane Doe", booking.User.Name)
}

func TestCreateReservationIncompleteContactProceedsUnlinked(t *testing.T) {
	svc, room := newBookingService(t)

	input := completeInput(room)
	input.Name = ""
	input.Phone = ""
	input.Street = ""
	input.City = ""
	input.Country = ""

	booking, warning, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Nil(t, booking.UserID)
	assert.Equal(t, "jane.doe@example.com", booking.UserEmail)

	// no user row was created
	var count int64
	svc.DB.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReservationClientTotalWins(t *testing.T) {
	svc, room := newBookingService(t)

	input := completeInput(room)
	total := 999.0
	input.TotalAmount = &total

	booking, _, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Equal(t, 999.0, booking.TotalAmount)
}

func TestCreateReservationItemOverridesSnapshot(t *testing.T) {
	svc, room := newBookingService(t)

	input := completeInput(room)
	input.BookingInfo[0].RoomType = "Suite"
	input.BookingInfo[0].RoomAmount = 200

	booking, _, err := svc.CreateReservation(input)
	require.NoError(t, err)
	assert.Equal(t, "Suite", booking.BookingInfo[0].RoomType)
	assert.Equal(t, 3*200.0, booking.TotalAmount)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, room := newBookingService(t)

	cases := []struct {
		name   string
		mutate func(*CreateReservationInput)
		want   string
	}{
		{"missing email", func(in *CreateReservationInput) { in.UserEmail = "" }, "validation"},
		{"no items", func(in *CreateReservationInput) { in.BookingInfo = nil }, "validation"},
		{"bad date", func(in *CreateReservationInput) { in.CheckInDate = "01/03/2026" }, "checkInDate"},
		{"unknown room", func(in *CreateReservationInput) { in.BookingInfo[0].RoomID = 4242 }, "not found"},
		{"bad status", func(in *CreateReservationInput) { in.PaymentStatus = "settled" }, "paymentStatus"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := completeInput(room)
			tc.mutate(&input)
			_, _, err := svc.CreateReservation(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCreateReservationUpsertsReturningGuest(t *testing.T) {
	svc, room := newBookingService(t)

	_, _, err := svc.CreateReservation(completeInput(room))
	require.NoError(t, err)

	// same guest books again with a new phone number
	input := completeInput(room)
	input.Phone = "+91 88888 22222"
	_, _, err = svc.CreateReservation(input)
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, svc.DB.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "+91 88888 22222", users[0].Phone)
}

func TestCreateFromQuote(t *testing.T) {
	svc, room := newBookingService(t)

	q := &models.QuoteSnapshot{
		Version:      models.QuoteSnapshotVersion,
		UserEmail:    "quote@example.com",
		CheckInDate:  "2026-04-10",
		CheckOutDate: "2026-04-12",
		BookingInfo: []models.QuoteItem{
			{RoomID: room.ID, RoomType: "Deluxe", RoomAmount: 150},
		},
	}

	booking, err := svc.CreateFromQuote(q, "pay_ABC123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	require.NotNil(t, booking.PaymentID)
	assert.Equal(t, "pay_ABC123", *booking.PaymentID)
	assert.Equal(t, 2*150.0, booking.TotalAmount)
}

func TestCreateFromQuoteRejectsInvalidSnapshot(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.CreateFromQuote(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_quote")

	_, err = svc.CreateFromQuote(&models.QuoteSnapshot{Version: 99, UserEmail: "x@y.z"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot version")
}

func TestUpdateBooking(t *testing.T) {
	svc, room := newBookingService(t)

	created, _, err := svc.CreateReservation(completeInput(room))
	require.NoError(t, err)

	total := 500.0
	updated, err := svc.Update(created.ID, UpdateBookingInput{
		CheckOutDate: "2026-03-06",
		TotalAmount:  &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.TotalAmount)
	assert.Equal(t, "2026-03-06", updated.CheckOutDate.Format("2006-01-02"))
	assert.False(t, updated.IsPast)

	// a past check-out flips is_past automatically
	updated, err = svc.Update(created.ID, UpdateBookingInput{CheckOutDate: "2020-01-02"})
	require.NoError(t, err)
	assert.True(t, updated.IsPast)

	_, err = svc.Update(created.ID, UpdateBookingInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = svc.Update(9999, UpdateBookingInput{TotalAmount: &total})
	require.Error(t, err)
	assert.Equal(t, "booking_not_found", err.Error())
}

func TestGetByEmailAndUpdatePaymentStatus(t *testing.T) {
	svc, room := newBookingService(t)

	created, _, err := svc.CreateReservation(completeInput(room))
	require.NoError(t, err)

	list, err := svc.GetByEmail("JANE.DOE@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	pid := "pay_42"
	updated, err := svc.UpdatePaymentStatus(created.ID, models.PaymentStatusPaid, &pid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.PaymentID)
	assert.Equal(t, "pay_42", *updated.PaymentID)

	_, err = svc.UpdatePaymentStatus(9999, models.PaymentStatusPaid, nil)
	require.Error(t, err)
	assert.Equal(t, "booking_not_found", err.Error())
}
