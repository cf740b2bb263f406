package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type UpdateRoomImagesPayload struct {
	Images []string `json:"images" binding:"required"`
}

// UpdateRoomPayload allows partial updates; nil fields are left untouched.
type UpdateRoomPayload struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	RentPerDay  *float64 `json:"rentPerDay"`
	MaxCount    *int     `json:"maxCount"`
	Description *string  `json:"description"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (p *UpdateRoomPayload) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Type != nil {
		updates["type"] = *p.Type
	}
	if p.RentPerDay != nil {
		updates["rent_per_day"] = *p.RentPerDay
	}
	if p.MaxCount != nil {
		updates["max_count"] = *p.MaxCount
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.IsAvailable != nil {
		updates["is_available"] = *p.IsAvailable
	}
	return updates
}

// GetRooms handles GET /api/rooms (admin, includes unavailable rooms).
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		log.Printf("❌ GetRooms failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetAvailableRooms handles GET /api/rooms/available (public storefront list).
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAvailable()
	if err != nil {
		log.Printf("❌ GetAvailableRooms failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	room, err := ctrl.RoomSvc.GetByID(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "room_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom handles POST /api/rooms (admin).
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ CreateRoom bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		if strings.Contains(err.Error(), "validation") {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ CreateRoom failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id (admin). Accepts partial updates.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	var payload UpdateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	updates := payload.columns()
	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No updatable fields in payload")
		return
	}
	if typ, ok := updates["type"].(string); ok && !models.IsValidRoomType(typ) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room type")
		return
	}

	room, err := ctrl.RoomSvc.Update(uint(id), updates)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "room_not_found"):
			utils.JSONError(c, http.StatusNotFound, "Room not found")
		case strings.Contains(err.Error(), "validation"):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ UpdateRoom failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update room")
		}
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room updated", room)
}

// UpdateRoomImages handles PUT /api/rooms/:id/images (admin).
func (ctrl *RoomController) UpdateRoomImages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	var payload UpdateRoomImagesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := ctrl.RoomSvc.UpdateImages(uint(id), payload.Images)
	if err != nil {
		if strings.Contains(err.Error(), "room_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		log.Printf("❌ UpdateRoomImages failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update room images")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room images updated", room)
}

// DeleteRoom handles DELETE /api/rooms/:id (admin).
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	if err := ctrl.RoomSvc.Delete(uint(id)); err != nil {
		if strings.Contains(err.Error(), "room_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		log.Printf("❌ DeleteRoom failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room deleted", nil)
}
