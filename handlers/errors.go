package handlers

import (
	"errors"
	"net/http"

	"brightsite/services/booking"
	"brightsite/services/chat"
	"brightsite/services/content"
	"brightsite/services/payment"
	"brightsite/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses: validation and
// forbidden transitions to 400, unknown entities to 404, lost races to 409,
// bad credentials to 401, everything else to a logged 500.
func respondError(c *gin.Context, err error) {
	var (
		bookingValidation *booking.ValidationError
		bookingNotFound   *booking.NotFoundError
		bookingOverlap    *booking.OverlapError
		bookingTransition *booking.TransitionError
		contentValidation *content.ValidationError
		contentNotFound   *content.NotFoundError
	)

	switch {
	case errors.As(err, &bookingValidation), errors.As(err, &contentValidation),
		errors.As(err, &bookingTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &bookingNotFound), errors.As(err, &contentNotFound),
		errors.Is(err, chat.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &bookingOverlap):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrSessionEnded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrInvalidSender), errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrInvalidChatType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrInvalidGuestToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrBadSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
