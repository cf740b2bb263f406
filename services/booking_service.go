package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Warning is a non-fatal problem surfaced alongside a successful result
// instead of being swallowed (e.g. a failed best-effort user upsert).
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReservationItemInput is one room selection in a create-reservation request.
// RoomType and RoomAmount are optional; when absent they are snapshotted from
// the room record.
type ReservationItemInput struct {
	RoomID     uint         `json:"roomId"`
	RoomType   string       `json:"roomType"`
	RoomAmount float64      `json:"roomAmount"`
	Pax        []models.Pax `json:"pax"`
}

// CreateReservationInput carries guest contact fields, the stay window and the
// room selections. TotalAmount is optional; the pricing calculator fills it.
type CreateReservationInput struct {
	UserID    *uint  `json:"userId"`
	UserEmail string `json:"userEmail"`

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	Street2 string `json:"street2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`

	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`

	BookingInfo []ReservationItemInput `json:"bookingInfo"`
	TotalAmount *float64               `json:"totalAmount"`

	PaymentStatus string `json:"paymentStatus"`
}

type BookingService struct {
	DB    *gorm.DB
	Users *UserService
}

func NewBookingService(db *gorm.DB, users *UserService) *BookingService {
	return &BookingService{DB: db, Users: users}
}

// parseBookingDate accepts "2006-01-02" or RFC3339 (the wizard sends both).
// isDuplicateKeyErr recognizes unique-key violations across drivers: MySQL
// error 1062 in production, the generic message elsewhere.
func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func parseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// CreateReservation is the booking orchestrator's create path:
//  1. best-effort user upsert by email (never aborts the booking)
//  2. payment status defaults to not-paid
//  3. total computed via the pricing calculator when not supplied
//  4. booking + line items persisted, book code generated
//  5. booking returned with rooms and user resolved
func (s *BookingService) CreateReservation(input CreateReservationInput) (*models.Booking, *Warning, error) {
	email := utils.NormalizeEmail(input.UserEmail)
	if email == "" {
		return nil, nil, errors.New("validation: userEmail is required")
	}
	if len(input.BookingInfo) == 0 {
		return nil, nil, errors.New("validation: bookingInfo must have at least one item")
	}

	checkIn, err := parseBookingDate(input.CheckInDate)
	if err != nil {
		return nil, nil, fmt.Errorf("validation: checkInDate: %w", err)
	}
	checkOut, err := parseBookingDate(input.CheckOutDate)
	if err != nil {
		return nil, nil, fmt.Errorf("validation: checkOutDate: %w", err)
	}

	// Best-effort user upsert. A DB failure here is reported as a warning on
	// the success response, never as a booking failure.
	var warning *Warning
	userID := input.UserID
	if userID == nil {
		user, uErr := s.Users.UpsertByEmail(models.User{
			Name:    strings.TrimSpace(input.Name),
			Email:   email,
			Phone:   strings.TrimSpace(input.Phone),
			Street:  strings.TrimSpace(input.Street),
			Street2: strings.TrimSpace(input.Street2),
			City:    strings.TrimSpace(input.City),
			State:   strings.TrimSpace(input.State),
			Zip:     strings.TrimSpace(input.Zip),
			Country: strings.TrimSpace(input.Country),
		})
		switch {
		case uErr == nil:
			userID = &user.ID
		case uErr.Error() == "user_incomplete":
			// not enough contact data to create a user; booking proceeds unlinked
		default:
			log.Printf("⚠️ user upsert failed for %s: %v", email, uErr)
			warning = &Warning{Code: "warning.userUpsertFailed", Message: "guest record could not be saved"}
		}
	}

	// Resolve rooms and build line items with rate snapshots.
	items := make([]models.BookingItem, 0, len(input.BookingInfo))
	rates := make([]float64, 0, len(input.BookingInfo))
	for _, it := range input.BookingInfo {
		if it.RoomID == 0 {
			return nil, warning, errors.New("validation: bookingInfo item missing roomId")
		}
		var room models.Room
		if err := s.DB.First(&room, it.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, warning, fmt.Errorf("validation: room %d not found", it.RoomID)
			}
			return nil, warning, fmt.Errorf("db error checking room %d: %w", it.RoomID, err)
		}

		roomType := strings.TrimSpace(it.RoomType)
		if roomType == "" {
			roomType = room.Type
		}
		rate := it.RoomAmount
		if rate <= 0 {
			rate = room.RentPerDay
		}

		paxJSON, _ := json.Marshal(it.Pax)
		items = append(items, models.BookingItem{
			RoomID:     it.RoomID,
			RoomType:   roomType,
			RoomAmount: rate,
			Pax:        datatypes.JSON(paxJSON),
		})
		rates = append(rates, rate)
	}

	// The server-side recomputation is authoritative when the client did not
	// send a total.
	total := TotalAmount(checkIn, checkOut, rates)
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}

	status := input.PaymentStatus
	if status == "" {
		status = models.PaymentStatusNotPaid
	}
	if !models.IsValidPaymentStatus(status) {
		return nil, warning, fmt.Errorf("validation: invalid paymentStatus %q", status)
	}

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking := models.Booking{
			UserID:        userID,
			UserEmail:     email,
			CheckInDate:   checkIn,
			CheckOutDate:  checkOut,
			TotalAmount:   total,
			PaymentStatus: status,
			IsPast:        checkOut.Before(time.Now()),
			BookingInfo:   items,
		}

		// book code collisions are possible; retry a few times
		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			code, gErr := utils.GenerateBookCode(9)
			if gErr != nil {
				return fmt.Errorf("failed to generate book code: %w", gErr)
			}
			booking.BookCode = code

			createErr = tx.Create(&booking).Error
			if createErr == nil {
				break
			}
			if isDuplicateKeyErr(createErr) {
				log.Printf("book code collision (attempt %d) - retrying", attempt+1)
				booking.ID = 0
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create booking after retries: %w", createErr)
		}

		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return nil, warning, txErr
	}

	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, warning, err
	}
	return booking, warning, nil
}

// CreateFromQuote materializes a booking from a verified quote snapshot. Used
// by the payment verification path; the booking is born paid.
func (s *BookingService) CreateFromQuote(q *models.QuoteSnapshot, gatewayPaymentID string) (*models.Booking, error) {
	if q == nil {
		return nil, errors.New("invalid_quote: missing snapshot")
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	items := make([]ReservationItemInput, 0, len(q.BookingInfo))
	for _, it := range q.BookingInfo {
		items = append(items, ReservationItemInput{
			RoomID:     it.RoomID,
			RoomType:   it.RoomType,
			RoomAmount: it.RoomAmount,
			Pax:        it.Pax,
		})
	}

	booking, _, err := s.CreateReservation(CreateReservationInput{
		UserID:        q.UserID,
		UserEmail:     q.UserEmail,
		CheckInDate:   q.CheckInDate,
		CheckOutDate:  q.CheckOutDate,
		BookingInfo:   items,
		TotalAmount:   q.TotalAmount,
		PaymentStatus: models.PaymentStatusPaid,
	})
	if err != nil {
		return nil, err
	}

	if gatewayPaymentID != "" {
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("payment_id", gatewayPaymentID).Error; err != nil {
			return nil, fmt.Errorf("failed to attach payment id: %w", err)
		}
		booking.PaymentID = &gatewayPaymentID
	}
	return booking, nil
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("User").
		Preload("BookingInfo").
		Preload("BookingInfo.Room").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].BookingInfo == nil {
			list[i].BookingInfo = []models.BookingItem{}
		}
	}
	return list, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.
		Preload("User").
		Preload("BookingInfo").
		Preload("BookingInfo.Room").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) GetByEmail(email string) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("User").
		Preload("BookingInfo").
		Preload("BookingInfo.Room").
		Where("user_email = ?", utils.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings by email: %w", err)
	}
	return list, nil
}

// UpdateBookingInput carries the fields an admin may change after creation.
// Nil/empty fields are left untouched.
type UpdateBookingInput struct {
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	TotalAmount  *float64 `json:"totalAmount"`
	IsPast       *bool    `json:"isPast"`
}

// Update applies a partial admin edit. IsPast follows the new check-out date
// unless explicitly supplied.
func (s *BookingService) Update(id uint, input UpdateBookingInput) (*models.Booking, error) {
	updates := map[string]interface{}{}

	if input.CheckInDate != "" {
		checkIn, err := parseBookingDate(input.CheckInDate)
		if err != nil {
			return nil, fmt.Errorf("validation: checkInDate: %w", err)
		}
		updates["check_in_date"] = checkIn
	}
	if input.CheckOutDate != "" {
		checkOut, err := parseBookingDate(input.CheckOutDate)
		if err != nil {
			return nil, fmt.Errorf("validation: checkOutDate: %w", err)
		}
		updates["check_out_date"] = checkOut
		updates["is_past"] = checkOut.Before(time.Now())
	}
	if input.TotalAmount != nil {
		if *input.TotalAmount < 0 {
			return nil, errors.New("validation: totalAmount must not be negative")
		}
		updates["total_amount"] = *input.TotalAmount
	}
	if input.IsPast != nil {
		updates["is_past"] = *input.IsPast
	}

	if len(updates) == 0 {
		return nil, errors.New("validation: nothing to update")
	}

	result := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("booking_not_found")
	}
	return s.GetByID(id)
}

// UpdatePaymentStatus flips the booking's payment state; paymentID is optional.
func (s *BookingService) UpdatePaymentStatus(id uint, status string, paymentID *string) (*models.Booking, error) {
	if !models.IsValidPaymentStatus(status) {
		return nil, fmt.Errorf("validation: invalid paymentStatus %q", status)
	}

	updates := map[string]interface{}{"payment_status": status}
	if paymentID != nil {
		updates["payment_id"] = *paymentID
	}

	result := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("booking_not_found")
	}
	return s.GetByID(id)
}

func (s *BookingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("booking_not_found")
	}
	return nil
}
