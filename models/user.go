package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a guest contact record. Email is the natural key: bookings with a
// known email merge into the existing row instead of creating a duplicate.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `json:"name" gorm:"size:150"`
	Email string `json:"email" gorm:"uniqueIndex;size:150"`
	Phone string `json:"phone" gorm:"size:50"`

	Street  string `json:"street" gorm:"size:255"`
	Street2 string `json:"street2" gorm:"size:255"`
	City    string `json:"city" gorm:"size:100"`
	State   string `json:"state" gorm:"size:100"`
	Zip     string `json:"zip" gorm:"size:20"`
	Country string `json:"country" gorm:"size:100"`
}

// HasCompleteAddress reports whether the record carries everything we require
// before creating a brand-new user during booking creation.
func (u *User) HasCompleteAddress() bool {
	return u.Name != "" && u.Phone != "" && u.Street != "" && u.City != "" && u.Country != ""
}
