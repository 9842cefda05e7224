package chatRepo

import (
	"context"
	"errors"
	"time"

	"brightsite/models"
)

// ErrNotActive is returned when an append or end targets a session that is no
// longer active.
var ErrNotActive = errors.New("chat session is not active")

// ChatRepository persists chat sessions and their append-only message logs.
type ChatRepository interface {
	Create(ctx context.Context, session *models.ChatSession) error
	GetByID(ctx context.Context, id string) (*models.ChatSession, error)

	// FindActive looks up the single active session for the resolved identity
	// and chat type. Returns (nil, nil) when none exists.
	FindActive(ctx context.Context, identity models.ChatIdentity, chatType string) (*models.ChatSession, error)

	// AppendMessage pushes the message onto the session's log, conditional on
	// the session still being active. Returns ErrNotActive otherwise.
	AppendMessage(ctx context.Context, sessionID string, msg models.ChatMessage) error

	// MarkMessageRead flips one message's read flag for the given side. The
	// flip is monotonic; returns false when the flag was already set.
	MarkMessageRead(ctx context.Context, sessionID, messageID, side string) (bool, error)

	// MarkMessagesRead flips the read flag for the given message IDs.
	MarkMessagesRead(ctx context.Context, sessionID string, messageIDs []string, side string) error

	// End transitions an active session to ended. Returns ErrNotActive when
	// the session is already ended.
	End(ctx context.Context, sessionID string, endedAt time.Time) error

	ListAll(ctx context.Context) ([]models.ChatSession, error)
}
