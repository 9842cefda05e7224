package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brightsite/services/booking"
	"brightsite/services/chat"
	"brightsite/services/content"
	"brightsite/services/payment"
	"brightsite/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"booking validation", booking.NewValidationError("date", "is required"), http.StatusBadRequest},
		{"forbidden transition", &booking.TransitionError{From: "canceled", Action: "confirm"}, http.StatusBadRequest},
		{"content validation", &content.ValidationError{Field: "title", Message: "is required"}, http.StatusBadRequest},
		{"booking not found", &booking.NotFoundError{Entity: "booking", ID: "b1"}, http.StatusNotFound},
		{"content not found", &content.NotFoundError{Entity: "service", Key: "x"}, http.StatusNotFound},
		{"session not found", chat.ErrSessionNotFound, http.StatusNotFound},
		{"overlap", &booking.OverlapError{ResourceID: "svc-1", Date: "2026-09-07"}, http.StatusConflict},
		{"session ended", chat.ErrSessionEnded, http.StatusConflict},
		{"invalid sender", chat.ErrInvalidSender, http.StatusBadRequest},
		{"empty message", chat.ErrEmptyMessage, http.StatusBadRequest},
		{"invalid chat type", chat.ErrInvalidChatType, http.StatusBadRequest},
		{"invalid guest token", utils.ErrInvalidGuestToken, http.StatusUnauthorized},
		{"bad webhook signature", payment.ErrBadSignature, http.StatusBadRequest},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
