package routes

import (
	"time"

	"pawcare/handlers"
	"pawcare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the customer booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthCustomerMiddleware())
		api.GET("/mine", hb.BookingHandler.ListMyBookings)
		api.GET("/id/:id", hb.BookingHandler.GetBooking)

		api.POST("/:category", hb.BookingHandler.CreateBooking)
		api.PUT("/:category/reschedule", hb.BookingHandler.RescheduleBooking)
		api.POST("/:category/reschedule", hb.BookingHandler.RescheduleBooking)
		api.GET("/:category/availability", hb.BookingHandler.GetAvailability)
		api.POST("/:category/payment/verify", hb.BookingHandler.VerifyPayment)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/settings", hb.AdminHandler.ListSettings)
		adminGroup.GET("/settings/:category", hb.AdminHandler.GetSettings)
		adminGroup.PUT("/settings/:category", hb.AdminHandler.UpdateSettings)
		adminGroup.PATCH("/bookings/:id/status", hb.AdminHandler.UpdateBookingStatus)
		adminGroup.DELETE("/bookings/:id", hb.AdminHandler.DeleteBooking)
		adminGroup.GET("/clinics", hb.AdminHandler.ListClinics)
		adminGroup.PUT("/clinics/:id", hb.AdminHandler.UpsertClinic)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
