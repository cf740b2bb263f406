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

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

// GetUsers handles GET /api/users (admin).
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.GetAll()
	if err != nil {
		log.Printf("❌ GetUsers failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load users")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

// GetUser handles GET /api/users/:id.
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := ctrl.UserSvc.GetByID(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "user_not_found") {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// GetUserByEmail handles GET /api/users/email/:email. Used by the booking form
// to prefill contact details for returning guests.
func (ctrl *UserController) GetUserByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := ctrl.UserSvc.FindByEmail(email)
	if err != nil {
		if strings.Contains(err.Error(), "user_not_found") {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("❌ GetUserByEmail failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// UpsertUser handles POST /api/users. Creates or merges a guest profile keyed
// by email.
func (ctrl *UserController) UpsertUser(c *gin.Context) {
	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(input.Email) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := ctrl.UserSvc.UpsertByEmail(input)
	if err != nil {
		if strings.Contains(err.Error(), "user_incomplete") {
			utils.JSONError(c, http.StatusBadRequest, "Name, phone, street, city and country are required for a new profile")
			return
		}
		log.Printf("❌ UpsertUser failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save user")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/:id (admin).
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := ctrl.UserSvc.Update(uint(id), input)
	if err != nil {
		if strings.Contains(err.Error(), "user_not_found") {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("❌ UpdateUser failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User updated", user)
}

// DeleteUser handles DELETE /api/users/:id (admin).
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := ctrl.UserSvc.Delete(uint(id)); err != nil {
		if strings.Contains(err.Error(), "user_not_found") {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("❌ DeleteUser failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User deleted", nil)
}
