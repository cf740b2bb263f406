package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"hotel-booking-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	if room.Name == "" || room.Type == "" || room.Description == "" ||
		room.RentPerDay < 0 || room.MaxCount < 1 {
		return errors.New("validation: name, type, description, rentPerDay and maxCount are required")
	}
	if !models.IsValidRoomType(room.Type) {
		return fmt.Errorf("validation: invalid room type %q", room.Type)
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

// GetAvailable lists rooms guests can book right now.
func (s *RoomService) GetAvailable() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("is_available = ?", true).Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

// Update applies a partial update; protected columns are stripped by the
// controller before this is called.
func (s *RoomService) Update(id uint, updates map[string]interface{}) (*models.Room, error) {
	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("room_not_found")
	}
	return s.GetByID(id)
}

// UpdateImages replaces the room's image URL list.
func (s *RoomService) UpdateImages(id uint, imageURLs []string) (*models.Room, error) {
	raw, err := json.Marshal(imageURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image urls: %w", err)
	}
	return s.Update(id, map[string]interface{}{"images": datatypes.JSON(raw)})
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}
