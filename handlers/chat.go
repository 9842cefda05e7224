package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"brightsite/services/chat"
	"brightsite/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// guestCookieTTL is how long a minted guest identity stays valid.
const guestCookieTTL = 30 * 24 * time.Hour

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer; the upgrade itself
	// accepts any origin the router let through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatHandler exposes the chat REST surface and the WebSocket upgrade
// endpoints backed by the hub.
type ChatHandler struct {
	Service chat.ChatService
	Hub     *chat.Hub
}

func NewChatHandler(service chat.ChatService, hub *chat.Hub) *ChatHandler {
	return &ChatHandler{Service: service, Hub: hub}
}

// userIDFrom pulls an authenticated user id from a bearer token, if any.
// Chat never requires an account; this only links sessions for users who
// happen to be signed in.
func userIDFrom(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	userID, err := utils.ExtractIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return ""
	}
	return userID
}

// StartSession handles POST /chat/sessions. It resumes the caller's active
// session of the requested type, or creates one, minting and setting the
// guest cookie for first-time guests.
func (h *ChatHandler) StartSession(c *gin.Context) {
	var input struct {
		Type  string `json:"type"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	guestToken, _ := c.Cookie(utils.GuestTokenCookie)
	result, err := h.Service.StartOrResumeSession(c.Request.Context(), chat.StartSessionRequest{
		Type:       input.Type,
		UserID:     userIDFrom(c),
		GuestToken: guestToken,
		GuestName:  input.Name,
		GuestEmail: input.Email,
	})
	if err != nil {
		if err == utils.ErrInvalidGuestToken {
			c.SetCookie(utils.GuestTokenCookie, "", -1, "/", "", false, true)
		}
		respondError(c, err)
		return
	}

	if result.MintedGuest {
		signed, err := utils.SignGuestToken(*result.Guest, guestCookieTTL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.SetCookie(utils.GuestTokenCookie, signed, int(guestCookieTTL.Seconds()), "/", "", false, true)
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result.Session)
}

// GetSession handles GET /chat/sessions/:id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// PostMessage appends one message from the given side.
func (h *ChatHandler) PostMessage(side string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		msg, err := h.Service.AppendMessage(c.Request.Context(), c.Param("id"), side, input.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// MarkRead flips read receipts for the given side: one message when a
// messageId is supplied, otherwise everything unread.
func (h *ChatHandler) MarkRead(side string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			MessageID string `json:"messageId"`
		}
		_ = c.ShouldBindJSON(&input)

		flipped, err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), side, input.MessageID)
		if err != nil {
			respondError(c, err)
			return
		}
		if flipped == nil {
			flipped = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"readMessageIds": flipped})
	}
}

// EndSession handles POST /admin/chat/sessions/:id/end. Ended is terminal.
func (h *ChatHandler) EndSession(c *gin.Context) {
	if err := h.Service.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chat session ended"})
}

// ListSessions handles GET /admin/chat/sessions.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	views, err := h.Service.ListSessionsForAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// SessionSocket upgrades GET /chat/sessions/:id/ws (or the admin variant)
// into a live subscription on the session's room. Inbound frames carry
// messages and read receipts; a dropped connection just unsubscribes.
func (h *ChatHandler) SessionSocket(side string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		if _, err := h.Service.GetSession(c.Request.Context(), sessionID); err != nil {
			respondError(c, err)
			return
		}

		conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := h.Hub.Join(conn, sessionID, side)
		// The request context dies when this handler returns; the socket
		// outlives it.
		ctx := context.Background()
		client.ReadInbound(func(frame chat.InboundFrame) {
			switch frame.Action {
			case "message":
				if _, err := h.Service.AppendMessage(ctx, sessionID, side, frame.Text); err != nil {
					utils.GetLogger().Debug("socket message rejected",
						zap.String("sessionID", sessionID), zap.Error(err))
				}
			case "markRead":
				if _, err := h.Service.MarkRead(ctx, sessionID, side, frame.MessageID); err != nil {
					utils.GetLogger().Debug("socket markRead rejected",
						zap.String("sessionID", sessionID), zap.Error(err))
				}
			}
		})
	}
}

// InboxSocket upgrades GET /admin/chat/ws into the admin inbox stream:
// new-session and message events across every session.
func (h *ChatHandler) InboxSocket(c *gin.Context) {
	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := h.Hub.JoinInbox(conn)
	client.ReadInbound(nil)
}
