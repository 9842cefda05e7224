package handlers

import (
	"net/http"

	"brightsite/models"
	"brightsite/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes booking creation and lifecycle endpoints.
type BookingHandler struct {
	Engine booking.BookingEngine
}

func NewBookingHandler(engine booking.BookingEngine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// CreateBooking handles POST /bookings. Overlapping requests lose with 409.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Engine.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	found, err := h.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// MyBookings handles GET /bookings?email=, the customer's own lookup.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	bookings, err := h.Engine.BookingsByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// ListBookings handles GET /admin/bookings?status=.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Engine.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// Transition handles POST /admin/bookings/:id/:action where action is
// confirm, cancel or end. Cancel accepts an optional JSON reason.
func (h *BookingHandler) Transition(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	// The body is optional; ignore bind errors on an empty payload.
	_ = c.ShouldBindJSON(&body)

	updated, err := h.Engine.Transition(c.Request.Context(), c.Param("id"), c.Param("action"), body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
