package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking payment lifecycle.
const (
	PaymentStatusNotPaid  = "not-paid"
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusNotPaid, PaymentStatusPending, PaymentStatusPaid,
		PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// Pax is one occupant inside a booking line item. Stored as JSON on the item.
type Pax struct {
	Name        string `json:"name"`
	AdultStatus string `json:"adultStatus"` // adult | child
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
}

// BookingItem is one room selection within a booking. RoomType and RoomAmount
// are snapshots taken at booking time so later room edits don't rewrite history.
type BookingItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	RoomType   string         `json:"roomType" gorm:"size:50"`
	RoomAmount float64        `json:"roomAmount" gorm:"column:room_amount"`
	Pax        datatypes.JSON `json:"pax,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    *uint  `gorm:"index;column:user_id" json:"userId,omitempty"`
	UserEmail string `gorm:"index;size:150;column:user_email" json:"userEmail"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`

	BookCode    string  `gorm:"uniqueIndex;size:32;column:book_code" json:"bookCode,omitempty"`
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	PaymentStatus string  `gorm:"size:20;column:payment_status;default:not-paid" json:"paymentStatus"`
	PaymentID     *string `gorm:"size:64;column:payment_id" json:"paymentId,omitempty"`

	IsPast bool `gorm:"column:is_past;default:false" json:"isPast"`

	BookingInfo []BookingItem `gorm:"foreignKey:BookingID" json:"bookingInfo"`
	User        *User         `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
