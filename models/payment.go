package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment order lifecycle. A payment starts as "created", may be marked
// "attempted" by the gateway, and ends in exactly one of paid / failed /
// expired. "expired" is set by the reconciler for abandoned orders.
const (
	OrderStatusCreated   = "created"
	OrderStatusAttempted = "attempted"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusExpired   = "expired"
)

// QuoteSnapshotVersion guards reconstruction of deferred bookings: a snapshot
// written by an older build is rejected instead of being half-parsed.
const QuoteSnapshotVersion = 1

// QuoteItem mirrors BookingItem for a booking that does not exist yet.
type QuoteItem struct {
	RoomID     uint    `json:"roomId"`
	RoomType   string  `json:"roomType"`
	RoomAmount float64 `json:"roomAmount"`
	Pax        []Pax   `json:"pax,omitempty"`
}

// QuoteSnapshot is the typed payload carried through the payment flow when the
// client pays before a booking row exists. It holds everything needed to
// materialize the booking once the payment is verified.
type QuoteSnapshot struct {
	Version      int         `json:"version"`
	UserID       *uint       `json:"userId,omitempty"`
	UserEmail    string      `json:"userEmail"`
	CheckInDate  string      `json:"checkInDate"`  // 2006-01-02
	CheckOutDate string      `json:"checkOutDate"` // 2006-01-02
	BookingInfo  []QuoteItem `json:"bookingInfo"`
	TotalAmount  *float64    `json:"totalAmount,omitempty"`
}

// Validate checks the snapshot is complete enough to reconstruct a booking.
func (q *QuoteSnapshot) Validate() error {
	if q.Version != QuoteSnapshotVersion {
		return errors.New("invalid_quote: unsupported snapshot version")
	}
	if q.UserEmail == "" {
		return errors.New("invalid_quote: missing userEmail")
	}
	if q.CheckInDate == "" || q.CheckOutDate == "" {
		return errors.New("invalid_quote: missing dates")
	}
	if _, err := time.Parse("2006-01-02", q.CheckInDate); err != nil {
		return errors.New("invalid_quote: bad checkInDate")
	}
	if _, err := time.Parse("2006-01-02", q.CheckOutDate); err != nil {
		return errors.New("invalid_quote: bad checkOutDate")
	}
	if len(q.BookingInfo) == 0 {
		return errors.New("invalid_quote: no booking items")
	}
	return nil
}

type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Nil until a quote-path booking is materialized at verification time.
	BookingID *uint `gorm:"index;column:booking_id" json:"bookingId,omitempty"`
	UserID    *uint `gorm:"index;column:user_id" json:"userId,omitempty"`

	Amount   int64  `gorm:"column:amount" json:"amount"` // minor currency units
	Currency string `gorm:"size:8;default:INR" json:"currency"`

	OrderID   string  `gorm:"uniqueIndex;size:64;column:order_id" json:"orderId"`
	PaymentID *string `gorm:"size:64;column:payment_id" json:"paymentId,omitempty"`
	Signature *string `gorm:"size:128" json:"signature,omitempty"`

	Status string `gorm:"size:20;index;default:created" json:"status"`

	Notes datatypes.JSON `json:"notes,omitempty"`
	Quote datatypes.JSON `json:"quote,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

// QuoteSnapshot decodes the stored quote blob. Returns nil when the payment
// was created for an existing booking and carries no quote.
func (p *Payment) QuoteSnapshot() (*QuoteSnapshot, error) {
	if len(p.Quote) == 0 {
		return nil, nil
	}
	var q QuoteSnapshot
	if err := json.Unmarshal(p.Quote, &q); err != nil {
		return nil, err
	}
	if q.UserEmail == "" && len(q.BookingInfo) == 0 {
		// empty object "{}" stored for booking-path payments
		return nil, nil
	}
	return &q, nil
}

// Terminal reports whether status can no longer change.
func (p *Payment) Terminal() bool {
	switch p.Status {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusExpired:
		return true
	}
	return false
}
