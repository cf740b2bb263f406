package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateOrderInput selects either an existing booking or an inline quote for a
// booking that does not exist yet.
type CreateOrderInput struct {
	BookingID *uint                 `json:"bookingId"`
	Quote     *models.QuoteSnapshot `json:"quote"`
}

// CreateOrderResult is everything the client needs to open the gateway's
// checkout UI.
type CreateOrderResult struct {
	Order   *GatewayOrder   `json:"order"`
	Payment *models.Payment `json:"payment"`
	KeyID   string          `json:"keyId"`
}

// VerifyResult pairs the reconciled booking and payment after verification.
type VerifyResult struct {
	Booking *models.Booking `json:"booking"`
	Payment *models.Payment `json:"payment"`
}

type PaymentService struct {
	DB       *gorm.DB
	Gateway  GatewayClient
	Bookings *BookingService
}

func NewPaymentService(db *gorm.DB, gateway GatewayClient, bookings *BookingService) *PaymentService {
	return &PaymentService{DB: db, Gateway: gateway, Bookings: bookings}
}

// CreateOrder resolves the amount (booking total or quote recomputation),
// creates a remote gateway order and persists the correlating Payment row.
// An existing non-terminal payment for the same booking is returned as-is so
// a retried checkout does not open a second gateway order.
func (s *PaymentService) CreateOrder(input CreateOrderInput) (*CreateOrderResult, error) {
	if input.BookingID == nil && input.Quote == nil {
		return nil, errors.New("validation: bookingId or quote is required")
	}

	var (
		booking *models.Booking
		amount  float64
		notes   = map[string]interface{}{}
	)

	if input.BookingID != nil {
		b, err := s.Bookings.GetByID(*input.BookingID)
		if err != nil {
			return nil, err // booking_not_found passes through
		}
		if b.PaymentStatus == models.PaymentStatusPaid {
			return nil, errors.New("booking_already_paid")
		}
		booking = b
		amount = b.TotalAmount
		notes["bookingId"] = fmt.Sprintf("%d", b.ID)
		notes["userEmail"] = b.UserEmail
	} else {
		q := input.Quote
		if q.Version == 0 {
			q.Version = models.QuoteSnapshotVersion
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		amount = quoteAmount(q)
		notes["quote"] = "true"
		notes["userEmail"] = utils.NormalizeEmail(q.UserEmail)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, errors.New("invalid_amount")
	}
	amountMinor := int64(math.Round(amount * 100))
	if amountMinor <= 0 {
		return nil, errors.New("invalid_amount")
	}

	// Dedupe retried checkouts for the same booking. An open order is only
	// reused while it still matches the booking's current total; otherwise it
	// is retired so the guest never pays a stale amount.
	if booking != nil {
		var existing models.Payment
		err := s.DB.
			Where("booking_id = ? AND status IN ?", booking.ID,
				[]string{models.OrderStatusCreated, models.OrderStatusAttempted}).
			Order("id DESC").
			First(&existing).Error
		switch {
		case err == nil && existing.Amount == amountMinor:
			log.Printf("♻️ reusing open payment order %s for booking %d", existing.OrderID, booking.ID)
			return &CreateOrderResult{
				Order: &GatewayOrder{
					ID:       existing.OrderID,
					Amount:   existing.Amount,
					Currency: existing.Currency,
					Status:   existing.Status,
				},
				Payment: &existing,
				KeyID:   s.Gateway.KeyID(),
			}, nil
		case err == nil:
			if uErr := s.DB.Model(&existing).
				Update("status", models.OrderStatusExpired).Error; uErr != nil {
				return nil, fmt.Errorf("failed to retire stale payment: %w", uErr)
			}
			log.Printf("⏰ retired stale order %s for booking %d (amount changed)",
				existing.OrderID, booking.ID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to check open payments: %w", err)
		}
	}

	receipt := "rcpt_" + uuid.NewString()[:8]
	if booking != nil {
		receipt = fmt.Sprintf("rcpt_%d", booking.ID)
	}

	currency := utils.EnvOrDefault("PAYMENT_CURRENCY", "INR")
	order, err := s.Gateway.CreateOrder(amountMinor, currency, receipt, notes)
	if err != nil {
		return nil, err
	}

	notesJSON, _ := json.Marshal(notes)
	payment := models.Payment{
		Amount:   amountMinor,
		Currency: order.Currency,
		OrderID:  order.ID,
		Status:   models.OrderStatusCreated,
		Notes:    datatypes.JSON(notesJSON),
	}
	if booking != nil {
		payment.BookingID = &booking.ID
		payment.UserID = booking.UserID
	} else {
		quoteJSON, mErr := json.Marshal(input.Quote)
		if mErr != nil {
			return nil, fmt.Errorf("failed to encode quote snapshot: %w", mErr)
		}
		payment.Quote = datatypes.JSON(quoteJSON)
		payment.UserID = input.Quote.UserID
	}

	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	if booking != nil {
		if _, err := s.Bookings.UpdatePaymentStatus(booking.ID, models.PaymentStatusPending, nil); err != nil {
			return nil, err
		}
	}

	return &CreateOrderResult{Order: order, Payment: &payment, KeyID: s.Gateway.KeyID()}, nil
}

// VerifyPayment checks the gateway callback signature and reconciles payment
// and booking state. On the quote path the booking is created here for the
// first time, already marked paid.
func (s *PaymentService) VerifyPayment(orderID, paymentID, signature string) (*VerifyResult, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, errors.New("validation: missing payment verification fields")
	}

	var payment models.Payment
	if err := s.DB.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment_not_found")
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	// Replayed callbacks must not move a settled payment; a forged second
	// callback would otherwise flip a paid payment and booking to failed.
	if payment.Terminal() {
		return nil, errors.New("payment_already_processed")
	}

	if !s.Gateway.VerifySignature(orderID, paymentID, signature) {
		updates := map[string]interface{}{
			"status":     models.OrderStatusFailed,
			"payment_id": paymentID,
			"signature":  signature,
		}
		if err := s.DB.Model(&payment).Updates(updates).Error; err != nil {
			log.Printf("❌ failed to mark payment %s failed: %v", orderID, err)
		}
		if payment.BookingID != nil {
			if _, err := s.Bookings.UpdatePaymentStatus(*payment.BookingID, models.PaymentStatusFailed, nil); err != nil {
				log.Printf("❌ failed to mark booking %d failed: %v", *payment.BookingID, err)
			}
		}
		return nil, errors.New("invalid_signature")
	}

	if err := s.DB.Model(&payment).Updates(map[string]interface{}{
		"status":     models.OrderStatusPaid,
		"payment_id": paymentID,
		"signature":  signature,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to mark payment paid: %w", err)
	}
	payment.Status = models.OrderStatusPaid
	payment.PaymentID = &paymentID
	payment.Signature = &signature

	booking, err := s.finalizePaid(&payment, paymentID)
	if err != nil {
		return nil, err
	}

	s.sendReceipt(booking)

	return &VerifyResult{Booking: booking, Payment: &payment}, nil
}

// finalizePaid resolves the booking for a payment already known to be paid:
// flips a linked booking to paid, or materializes one from the stored quote
// snapshot and links it back. Shared by VerifyPayment and the reconciler.
func (s *PaymentService) finalizePaid(payment *models.Payment, gatewayPaymentID string) (*models.Booking, error) {
	var pid *string
	if gatewayPaymentID != "" {
		pid = &gatewayPaymentID
	}

	if payment.BookingID != nil {
		return s.Bookings.UpdatePaymentStatus(*payment.BookingID, models.PaymentStatusPaid, pid)
	}

	q, err := payment.QuoteSnapshot()
	if err != nil || q == nil {
		// paid-but-unlinked limbo: the money is confirmed but there is nothing
		// to attach it to; the reconciler keeps reporting these
		return nil, errors.New("invalid_quote: no snapshot to rebuild booking")
	}

	booking, err := s.Bookings.CreateFromQuote(q, gatewayPaymentID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(payment).Update("booking_id", booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to link booking to payment: %w", err)
	}
	payment.BookingID = &booking.ID
	return booking, nil
}

// GetByOrderID returns the payment row for a gateway order id.
func (s *PaymentService) GetByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Booking").Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment_not_found")
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &payment, nil
}

// sendReceipt emails a payment receipt, best-effort.
func (s *PaymentService) sendReceipt(booking *models.Booking) {
	if booking == nil || booking.UserEmail == "" {
		return
	}
	rooms := make([]utils.RoomLine, 0, len(booking.BookingInfo))
	for _, it := range booking.BookingInfo {
		name := it.Room.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Room %d", it.RoomID)
		}
		rooms = append(rooms, utils.RoomLine{Name: name, Type: it.RoomType, Amount: it.RoomAmount})
	}
	guestName := booking.UserEmail
	if booking.User != nil && booking.User.Name != "" {
		guestName = booking.User.Name
	}
	if err := utils.SendBookingReceiptEmail(
		booking.UserEmail,
		booking.BookCode,
		guestName,
		rooms,
		booking.CheckInDate.Format(dateLayout),
		booking.CheckOutDate.Format(dateLayout),
		booking.TotalAmount,
		utils.EnvOrDefault("PAYMENT_CURRENCY", "INR"),
	); err != nil {
		log.Printf("⚠️ receipt email failed for booking %d: %v", booking.ID, err)
	}
}

// quoteAmount returns the quote's explicit total or recomputes it from the
// stay window and line-item rates.
func quoteAmount(q *models.QuoteSnapshot) float64 {
	if q.TotalAmount != nil {
		return *q.TotalAmount
	}
	checkIn, err1 := parseBookingDate(q.CheckInDate)
	checkOut, err2 := parseBookingDate(q.CheckOutDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	rates := make([]float64, 0, len(q.BookingInfo))
	for _, it := range q.BookingInfo {
		rates = append(rates, it.RoomAmount)
	}
	return TotalAmount(checkIn, checkOut, rates)
}
