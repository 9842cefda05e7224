package handlers

import (
	"net/http"

	"brightsite/models"
	"brightsite/services/booking"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes availability window administration and slot
// listings.
type AvailabilityHandler struct {
	Engine booking.BookingEngine
}

func NewAvailabilityHandler(engine booking.BookingEngine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// CreateWindow handles POST /admin/availability.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Engine.CreateWindow(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateWindow handles PUT /admin/availability/:id.
func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	window.ID = c.Param("id")

	updated, err := h.Engine.UpdateWindow(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteWindow handles DELETE /admin/availability/:id.
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	if err := h.Engine.DeleteWindow(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability window deleted"})
}

// ListWindows handles GET /admin/availability?resourceId=.
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resourceId is required"})
		return
	}

	windows, err := h.Engine.ListWindows(c.Request.Context(), resourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// AvailableSlots handles GET /resources/:resourceId/slots?date=YYYY-MM-DD.
// Slots already claimed by a live booking are excluded.
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.Engine.AvailableSlots(c.Request.Context(), c.Param("resourceId"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
