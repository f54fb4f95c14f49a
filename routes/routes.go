package routes

import (
	"net/http"
	"time"

	"stayloft/handlers"
	"stayloft/middleware"
	"stayloft/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the public booking-flow endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability", hb.CheckAvailability)
		api.POST("/hold", hb.CreateHold)
		api.DELETE("/hold/:id", hb.ReleaseHold)
		api.POST("/checkout", hb.Checkout)
		api.POST("/payment-webhook", hb.PaymentWebhook)
		api.GET("/blocked", hb.BlockedDates)
		api.GET("/booking-session/:sessionID", hb.BookingSession)
	}
}

// RegisterDashboardRoutes registers the host-scoped dashboard endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	dash := r.Group("/api/dashboard")
	{
		dash.POST("/login", hb.HostLogin)

		// Protected routes (Require Authentication)
		dash.Use(middleware.JWTAuthHostMiddleware(hb.Hosts, hb.AuthCache))
		dash.GET("/bookings", hb.ListBookings)
		dash.GET("/customers", hb.ListCustomers)
		dash.DELETE("/customers/:id", hb.DeleteCustomer)
		dash.GET("/blocked-dates", hb.ListBlocks)
		dash.POST("/blocked-dates", hb.CreateBlock)
		dash.DELETE("/blocked-dates/:id", hb.DeleteBlock)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
}
