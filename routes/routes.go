package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers to routes. Admin-only routes sit behind the
// JWT middleware; booking and payment flows are public for the storefront.
func SetupRouter(
	rc *controllers.RoomController,
	uc *controllers.UserController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	ac *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("/available", rc.GetAvailableRooms)
			rooms.GET("/:id", rc.GetRoom)

			roomsAdmin := rooms.Group("", middleware.Protect())
			{
				roomsAdmin.GET("", rc.GetRooms)
				roomsAdmin.POST("", rc.CreateRoom)
				roomsAdmin.PUT("/:id", rc.UpdateRoom)
				roomsAdmin.PUT("/:id/images", rc.UpdateRoomImages)
				roomsAdmin.DELETE("/:id", rc.DeleteRoom)
			}
		}

		users := api.Group("/users")
		{
			users.POST("", uc.UpsertUser)
			users.GET("/email/:email", uc.GetUserByEmail)

			usersAdmin := users.Group("", middleware.Protect())
			{
				usersAdmin.GET("", uc.GetUsers)
				usersAdmin.GET("/:id", uc.GetUser)
				usersAdmin.PUT("/:id", uc.UpdateUser)
				usersAdmin.DELETE("/:id", middleware.RequireRole("superadmin"), uc.DeleteUser)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/user/:email", bc.GetBookingsByEmail)

			bookingsAdmin := bookings.Group("", middleware.Protect())
			{
				bookingsAdmin.GET("", bc.GetBookings)
				bookingsAdmin.GET("/:id", bc.GetBooking)
				bookingsAdmin.PUT("/:id", bc.UpdateBooking)
				bookingsAdmin.PATCH("/:id/payment", bc.UpdatePaymentStatus)
				bookingsAdmin.DELETE("/:id", bc.DeleteBooking)
			}
		}

		payment := api.Group("/payment")
		{
			payment.POST("/create-order", pc.CreateOrder)
			payment.POST("/verify", pc.VerifyPayment)
			payment.GET("/orders/:orderId", middleware.Protect(), pc.GetOrder)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/signup", ac.Signup)
			admin.POST("/login", ac.Login)
			admin.GET("", middleware.Protect(), ac.List)
			admin.GET("/me", middleware.Protect(), ac.Me)
		}
	}

	return r
}
