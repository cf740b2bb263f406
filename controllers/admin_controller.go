package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

type AdminSignupPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AdminLoginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /api/admin/signup.
func (ctrl *AdminController) Signup(c *gin.Context) {
	var payload AdminSignupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	email := utils.NormalizeEmail(payload.Email)

	var existing models.Admin
	if err := ctrl.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "Admin with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Signup hash error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	admin := models.Admin{
		FullName: strings.TrimSpace(payload.FullName),
		Email:    email,
		Password: string(hash),
		Role:     "admin",
		IsActive: true,
	}
	if err := ctrl.DB.Create(&admin).Error; err != nil {
		log.Printf("❌ Signup failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	token, err := utils.CreateAdminToken(admin.ID, admin.Role)
	if err != nil {
		log.Printf("❌ Signup token error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"token": token, "admin": admin})
}

// Login handles POST /api/admin/login.
func (ctrl *AdminController) Login(c *gin.Context) {
	var payload AdminLoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var admin models.Admin
	err := ctrl.DB.Where("email = ?", utils.NormalizeEmail(payload.Email)).First(&admin).Error
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !admin.IsActive {
		utils.JSONError(c, http.StatusForbidden, "Account is disabled")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	ctrl.DB.Model(&admin).Update("last_login", now)
	admin.LastLogin = &now

	token, err := utils.CreateAdminToken(admin.ID, admin.Role)
	if err != nil {
		log.Printf("❌ Login token error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// List handles GET /api/admin (signed-in admins can see the roster).
func (ctrl *AdminController) List(c *gin.Context) {
	var admins []models.Admin
	if err := ctrl.DB.Order("created_at DESC").Find(&admins).Error; err != nil {
		log.Printf("❌ List admins failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load admins")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

// Me handles GET /api/admin/me. Requires the auth middleware, which stores the
// admin id in the context.
func (ctrl *AdminController) Me(c *gin.Context) {
	adminID, ok := c.Get("adminID")
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var admin models.Admin
	if err := ctrl.DB.First(&admin, adminID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "Admin not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admin)
}
