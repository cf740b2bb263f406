package services

import (
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCreateValidation(t *testing.T) {
	svc := NewRoomService(newTestDB(t))

	err := svc.Create(&models.Room{Name: "No Type"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	err = svc.Create(&models.Room{
		Name: "Odd", Type: "Penthouse", Description: "x", RentPerDay: 10, MaxCount: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid room type")

	room := models.Room{
		Name: "Garden View 102", Type: "Standard", Description: "ground floor",
		RentPerDay: 90, MaxCount: 2, IsAvailable: true,
	}
	require.NoError(t, svc.Create(&room))
	assert.NotZero(t, room.ID)
}

func TestRoomAvailabilityFilter(t *testing.T) {
	svc := NewRoomService(newTestDB(t))

	open := seedRoom(t, svc.DB, "Open Room", "Standard", 90)
	closed := seedRoom(t, svc.DB, "Closed Room", "Standard", 90)
	_, err := svc.Update(closed.ID, map[string]interface{}{"is_available": false})
	require.NoError(t, err)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := svc.GetAvailable()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)
}

func TestRoomUpdateImages(t *testing.T) {
	svc := NewRoomService(newTestDB(t))
	room := seedRoom(t, svc.DB, "Pics Room", "Deluxe", 200)

	updated, err := svc.UpdateImages(room.ID, []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, err)
	assert.JSONEq(t, `["https://cdn.example.com/a.jpg"]`, string(updated.Images))

	_, err = svc.UpdateImages(9999, nil)
	require.Error(t, err)
	assert.Equal(t, "room_not_found", err.Error())
}

func TestRoomDelete(t *testing.T) {
	svc := NewRoomService(newTestDB(t))
	room := seedRoom(t, svc.DB, "Short Lived", "Single", 50)

	require.NoError(t, svc.Delete(room.ID))
	assert.Equal(t, "room_not_found", svc.Delete(room.ID).Error())

	_, err := svc.GetByID(room.ID)
	require.Error(t, err)
	assert.Equal(t, "room_not_found", err.Error())
}
