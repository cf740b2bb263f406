package controllers

import (
	"log"
	"net/http"
	"strings"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

type VerifyPaymentPayload struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CreateOrder handles POST /api/payment/create-order. The request carries
// either a bookingId for an existing booking or an inline quote for a booking
// that will be created once the payment is verified.
func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("❌ CreateOrder bind error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := ctrl.PaymentSvc.CreateOrder(input)
	if err != nil {
		log.Printf("❌ CreateOrder failed: %v", err)
		switch {
		case strings.Contains(err.Error(), "booking_not_found"):
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
		case strings.Contains(err.Error(), "booking_already_paid"),
			strings.Contains(err.Error(), "invalid_amount"),
			strings.Contains(err.Error(), "invalid_quote"),
			strings.Contains(err.Error(), "validation"):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create payment order")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"orderId":  result.Order.ID,
		"amount":   result.Order.Amount,
		"currency": result.Order.Currency,
		"keyId":    result.KeyID,
		"payment":  result.Payment,
	})
}

// VerifyPayment handles POST /api/payment/verify. On a valid signature the
// payment is marked paid and the booking is updated or materialized from the
// stored quote; on a bad signature both sides are marked failed.
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	var payload VerifyPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := ctrl.PaymentSvc.VerifyPayment(
		payload.RazorpayOrderID,
		payload.RazorpayPaymentID,
		payload.RazorpaySignature,
	)
	if err != nil {
		log.Printf("❌ VerifyPayment failed for order %s: %v", payload.RazorpayOrderID, err)
		switch {
		case strings.Contains(err.Error(), "payment_not_found"):
			utils.JSONError(c, http.StatusNotFound, "Payment not found")
		case strings.Contains(err.Error(), "invalid_signature"):
			utils.JSONError(c, http.StatusBadRequest, "Payment verification failed")
		case strings.Contains(err.Error(), "payment_already_processed"):
			utils.JSONError(c, http.StatusConflict, "Payment already processed")
		case strings.Contains(err.Error(), "invalid_quote"):
			// The payment is captured but the booking could not be rebuilt.
			// Surface a distinct message so support can reconcile manually.
			utils.JSONError(c, http.StatusConflict, "Payment captured but booking could not be created")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to verify payment")
		}
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Payment verified", gin.H{
		"booking": result.Booking,
		"payment": result.Payment,
	})
}

// GetOrder handles GET /api/payment/orders/:orderId (admin lookup).
func (ctrl *PaymentController) GetOrder(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("orderId"))
	if orderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Order id is required")
		return
	}

	payment, err := ctrl.PaymentSvc.GetByOrderID(orderID)
	if err != nil {
		if strings.Contains(err.Error(), "payment_not_found") {
			utils.JSONError(c, http.StatusNotFound, "Payment not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load payment")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
