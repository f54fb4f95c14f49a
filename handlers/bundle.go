// File: stayloft/handlers/bundle.go
package handlers

import (
	"stayloft/catalog"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Hosts catalog.HostDirectory

	// AuthCache backs the dashboard auth middleware's token cache.
	AuthCache *redis.Client

	// Public booking-flow endpoints.
	CheckAvailability gin.HandlerFunc
	CreateHold        gin.HandlerFunc
	ReleaseHold       gin.HandlerFunc
	Checkout          gin.HandlerFunc
	PaymentWebhook    gin.HandlerFunc
	BlockedDates      gin.HandlerFunc
	BookingSession    gin.HandlerFunc

	// Host dashboard endpoints.
	HostLogin      gin.HandlerFunc
	ListBookings   gin.HandlerFunc
	ListCustomers  gin.HandlerFunc
	DeleteCustomer gin.HandlerFunc
	ListBlocks     gin.HandlerFunc
	CreateBlock    gin.HandlerFunc
	DeleteBlock    gin.HandlerFunc
}
