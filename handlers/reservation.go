package handlers

import (
	"net/http"
	"time"

	"stayloft/models"
	"stayloft/services/reservation"
	"stayloft/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the public booking-flow endpoints.
type ReservationHandler struct {
	Engine  *reservation.Engine
	HoldTTL time.Duration
	logger  *zap.Logger
}

// NewReservationHandler creates a handler around the reservation engine.
func NewReservationHandler(engine *reservation.Engine, holdTTL time.Duration, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Engine: engine, HoldTTL: holdTTL, logger: logger}
}

func parseRangeParams(c *gin.Context, startKey, endKey string) (models.DateRange, bool) {
	start := c.Query(startKey)
	end := c.Query(endKey)
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing parameters", startKey+" and "+endKey+" are required")
		return models.DateRange{}, false
	}
	r, err := models.NewDateRange(start, end)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date range", err.Error())
		return models.DateRange{}, false
	}
	return r, true
}

// CheckAvailability handles GET /api/availability.
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	listingID := c.Query("listingId")
	if listingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing parameters", "listingId is required")
		return
	}
	r, ok := parseRangeParams(c, "start", "end")
	if !ok {
		return
	}

	free, err := h.Engine.IsFree(listingID, r)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": free})
}

// CreateHold handles POST /api/hold.
func (h *ReservationHandler) CreateHold(c *gin.Context) {
	var input struct {
		ListingID string `json:"listingId" binding:"required"`
		Start     string `json:"start" binding:"required"`
		End       string `json:"end" binding:"required"`
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

	hold, err := h.Engine.CreateHold(input.ListingID, r, h.HoldTTL)
	if err != nil {
		switch {
		case reservation.IsConflict(err):
			utils.JSONError(c, http.StatusConflict, "range unavailable", err.Error())
		case reservation.IsNotFound(err):
			utils.JSONError(c, http.StatusNotFound, "unknown listing", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create hold", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"hold": hold})
}

// ReleaseHold handles DELETE /api/hold/:id.
func (h *ReservationHandler) ReleaseHold(c *gin.Context) {
	hold, err := h.Engine.ReleaseHold(c.Param("id"))
	if err != nil {
		if reservation.IsNotFound(err) {
			utils.JSONError(c, http.StatusNotFound, "hold not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to release hold", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"hold": hold})
}

// Checkout handles POST /api/checkout.
func (h *ReservationHandler) Checkout(c *gin.Context) {
	var input struct {
		ListingID string `json:"listingId" binding:"required"`
		Start     string `json:"start" binding:"required"`
		End       string `json:"end" binding:"required"`
		HoldID    string `json:"holdId" binding:"required"`
		SiteKey   string `json:"site"`
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

	redirectURL, err := h.Engine.Checkout(c.Request.Context(), reservation.CheckoutRequest{
		ListingID: input.ListingID,
		Range:     r,
		HoldID:    input.HoldID,
		SiteKey:   input.SiteKey,
	})
	if err != nil {
		if reservation.IsNotFound(err) {
			utils.JSONError(c, http.StatusNotFound, "checkout failed", err.Error())
			return
		}
		h.logger.Error("payment session creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "payment processor error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirectUrl": redirectURL})
}

// BlockedDates handles GET /api/blocked.
func (h *ReservationHandler) BlockedDates(c *gin.Context) {
	listingID := c.Query("listingId")
	if listingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing parameters", "listingId is required")
		return
	}
	window, ok := parseRangeParams(c, "from", "to")
	if !ok {
		return
	}

	days, err := h.Engine.BlockedDates(listingID, window)
	if err != nil {
		if reservation.IsNotFound(err) {
			utils.JSONError(c, http.StatusNotFound, "unknown listing", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to aggregate blocked dates", err.Error())
		return
	}
	if days == nil {
		days = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"blocked": days})
}

// BookingSession handles GET /api/booking-session/:sessionID, the
// fallback confirmation path: if no booking exists yet for the session,
// the session is read back from the processor and confirmed
// synchronously.
func (h *ReservationHandler) BookingSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	booking, err := h.Engine.ConfirmSession(c.Request.Context(), sessionID, c.Query("site"))
	if err != nil {
		if reservation.IsNotFound(err) || reservation.IsConflict(err) {
			// Post-payment conflicts surface to the guest as an absent
			// booking; the conflict itself is already logged for
			// operator follow-up.
			utils.JSONError(c, http.StatusNotFound, "session not found", "no booking recorded for this session")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
