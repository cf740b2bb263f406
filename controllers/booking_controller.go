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

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type UpdatePaymentStatusPayload struct {
	PaymentStatus string  `json:"paymentStatus" binding:"required"`
	PaymentID     *string `json:"paymentId"`
}

// CreateBooking handles POST /api/bookings. A failed best-effort user upsert
// does not fail the request; it is surfaced in the response as a warning.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("❌ CreateBooking bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, warning, err := ctrl.BookingSvc.CreateReservation(input)
	if err != nil {
		log.Printf("❌ CreateBooking failed: %v", err)
		switch {
		case strings.Contains(err.Error(), "validation"):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "room_not_found"):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	resp := gin.H{"booking": booking}
	if warning != nil {
		resp["warning"] = warning
	}
	utils.JSONSuccess(c, http.StatusCreated, resp)
}

// GetBookings handles GET /api/bookings (admin overview, newest first).
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		log.Printf("❌ GetBookings failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "booking_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GetBookingsByEmail handles GET /api/bookings/user/:email ("my bookings").
func (ctrl *BookingController) GetBookingsByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}

	bookings, err := ctrl.BookingSvc.GetByEmail(email)
	if err != nil {
		log.Printf("❌ GetBookingsByEmail failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// UpdateBooking handles PUT /api/bookings/:id (admin edit of stay dates/total).
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var input services.UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, err := ctrl.BookingSvc.Update(uint(id), input)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "booking_not_found"):
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
		case strings.Contains(err.Error(), "validation"):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ UpdateBooking failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking updated", booking)
}

// UpdatePaymentStatus handles PATCH /api/bookings/:id/payment (admin override).
func (ctrl *BookingController) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var payload UpdatePaymentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !models.IsValidPaymentStatus(payload.PaymentStatus) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment status")
		return
	}

	booking, err := ctrl.BookingSvc.UpdatePaymentStatus(uint(id), payload.PaymentStatus, payload.PaymentID)
	if err != nil {
		if strings.Contains(err.Error(), "booking_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("❌ UpdatePaymentStatus failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update payment status")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Payment status updated", booking)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	if err := ctrl.BookingSvc.Delete(uint(id)); err != nil {
		if strings.Contains(err.Error(), "booking_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("❌ DeleteBooking failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking deleted", nil)
}
