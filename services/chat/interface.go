package chat

import (
	"context"

	"brightsite/models"
	"brightsite/utils"
)

// StartSessionRequest carries whatever identity material the transport
// collected: an authenticated user id, a raw guest cookie token, or the
// name/email a brand-new guest typed into the chat widget.
type StartSessionRequest struct {
	Type       string
	UserID     string
	GuestToken string
	GuestName  string
	GuestEmail string
}

// StartSessionResult is the resolved session plus the guest identity to
// (re-)sign into the cookie. MintedGuest is true when a fresh guest identity
// was created and the handler must set the cookie.
type StartSessionResult struct {
	Session     *models.ChatSession
	Guest       *utils.GuestIdentity
	MintedGuest bool
	Created     bool
}

// ChatService is the session state machine: identity resolution, ordered
// append, dual-sided read receipts and admin listing.
type ChatService interface {
	// StartOrResumeSession returns the single active session for the resolved
	// identity and type, creating one only when none exists. An invalid guest
	// token fails with utils.ErrInvalidGuestToken; it never silently mints a
	// replacement identity.
	StartOrResumeSession(ctx context.Context, req StartSessionRequest) (*StartSessionResult, error)

	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)

	// AppendMessage appends to an active session with a server-assigned id
	// and timestamp, then fans the message out to the session's subscribers
	// in append order.
	AppendMessage(ctx context.Context, sessionID, sender, text string) (*models.ChatMessage, error)

	// MarkRead flips read flags for one side: a single message when
	// messageID is given, otherwise every message not yet read by that side.
	// Flips are monotonic and idempotent. The other side's subscribers are
	// notified of the affected message ids.
	MarkRead(ctx context.Context, sessionID, side, messageID string) ([]string, error)

	// EndSession transitions active to ended. Ending an already-ended
	// session is a no-op success.
	EndSession(ctx context.Context, sessionID string) error

	// ListSessionsForAdmin returns every session, active before ended, most
	// recent message first within each group, enriched with user details.
	ListSessionsForAdmin(ctx context.Context) ([]models.AdminSessionView, error)
}

// Notifier fans session events out to connected subscribers. The WebSocket
// hub implements it; a nil-safe no-op keeps the service testable without one.
type Notifier interface {
	NotifyMessage(sessionID string, msg models.ChatMessage)
	NotifyRead(sessionID, readerSide string, messageIDs []string)
	NotifySessionStarted(session *models.ChatSession)
	NotifySessionEnded(sessionID string)
}
