package services

import (
	"errors"
	"fmt"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", utils.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user_not_found")
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// UpsertByEmail merges the supplied contact fields into the user with the same
// email, or creates a new user when none exists and the input is complete.
// Only non-empty supplied fields overwrite existing values.
//
// Returns "user_incomplete" when no user exists and required fields are
// missing; booking creation treats that as a soft miss, not a failure.
func (s *UserService) UpsertByEmail(input models.User) (*models.User, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		return nil, errors.New("validation: email is required")
	}
	input.Email = email

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if !input.HasCompleteAddress() {
			return nil, errors.New("user_incomplete")
		}
		if err := s.DB.Create(&input).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &input, nil
	}

	updates := map[string]interface{}{}
	setIf := func(col, v string) {
		if v != "" {
			updates[col] = v
		}
	}
	setIf("name", input.Name)
	setIf("phone", input.Phone)
	setIf("street", input.Street)
	setIf("street2", input.Street2)
	setIf("city", input.City)
	setIf("state", input.State)
	setIf("zip", input.Zip)
	setIf("country", input.Country)

	if len(updates) > 0 {
		if err := s.DB.Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if err := s.DB.First(&existing, existing.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return &existing, nil
}

func (s *UserService) Update(id uint, input models.User) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		input.Email = utils.NormalizeEmail(input.Email)
	}
	if err := s.DB.Model(user).Updates(input).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserService) Delete(id uint) error {
	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("user_not_found")
	}
	return nil
}
