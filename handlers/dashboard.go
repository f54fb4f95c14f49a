package handlers

import (
	"errors"
	"net/http"

	"stayloft/models"
	hostSvc "stayloft/services/host"
	"stayloft/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the host-scoped dashboard endpoints.
type DashboardHandler struct {
	Svc hostSvc.DashboardService
}

// NewDashboardHandler creates a handler around the dashboard service.
func NewDashboardHandler(svc hostSvc.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// requireHostID pulls the authenticated host identity set by the auth
// middleware.
func requireHostID(c *gin.Context) (string, bool) {
	hostID := c.GetString("hostID")
	if hostID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "missing host identity")
		return "", false
	}
	return hostID, true
}

func dashboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hostSvc.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "not owner", err.Error())
	case errors.Is(err, hostSvc.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "dashboard operation failed", err.Error())
	}
}

// Login handles POST /api/dashboard/login.
func (h *DashboardHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	token, host, err := h.Svc.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "host": host})
}

// ListBookings handles GET /api/dashboard/bookings.
func (h *DashboardHandler) ListBookings(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	bookings, err := h.Svc.ListBookings(hostID)
	if err != nil {
		dashboardError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListCustomers handles GET /api/dashboard/customers.
func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	customers, err := h.Svc.ListCustomers(hostID)
	if err != nil {
		dashboardError(c, err)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// DeleteCustomer handles DELETE /api/dashboard/customers/:id.
func (h *DashboardHandler) DeleteCustomer(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteCustomer(hostID, c.Param("id")); err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListBlocks handles GET /api/dashboard/blocked-dates.
func (h *DashboardHandler) ListBlocks(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	blocks, err := h.Svc.ListBlocks(hostID)
	if err != nil {
		dashboardError(c, err)
		return
	}
	if blocks == nil {
		blocks = []models.ExternalBlock{}
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// CreateBlock handles POST /api/dashboard/blocked-dates.
func (h *DashboardHandler) CreateBlock(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	var input struct {
		ListingID string `json:"listingId" binding:"required"`
		Start     string `json:"start" binding:"required"`
		End       string `json:"end" binding:"required"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	r, err := models.NewDateRange(input.Start, input.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	block, err := h.Svc.CreateBlock(hostID, input.ListingID, r, input.Note)
	if err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"block": block})
}

// DeleteBlock handles DELETE /api/dashboard/blocked-dates/:id.
func (h *DashboardHandler) DeleteBlock(c *gin.Context) {
	hostID, ok := requireHostID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteBlock(hostID, c.Param("id")); err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
