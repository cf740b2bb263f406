package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Valid room categories; anything else is rejected at the controller.
var RoomTypes = []string{"Single", "Double", "Deluxe", "Suite", "Family", "Standard"}

func IsValidRoomType(t string) bool {
	for _, rt := range RoomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

type Room struct {
	gorm.Model

	Name        string  `json:"name" gorm:"size:100"`
	RentPerDay  float64 `json:"rentPerDay" gorm:"column:rent_per_day"`
	Type        string  `json:"type" gorm:"size:50"`
	MaxCount    int     `json:"maxCount" gorm:"column:max_count"`
	Description string  `json:"description" gorm:"type:text"`

	IsAvailable bool `json:"isAvailable" gorm:"column:is_available;default:true"`

	// JSON string arrays; the frontend sends/expects plain lists.
	Amenities datatypes.JSON `json:"amenities,omitempty"`
	Images    datatypes.JSON `json:"images,omitempty"`
}
