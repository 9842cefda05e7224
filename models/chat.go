package models

import "time"

// Chat session types and statuses.
const (
	ChatTypeBooking = "booking"
	ChatTypeSupport = "supportchat"

	ChatStatusActive = "active"
	ChatStatusEnded  = "ended"

	ChatSenderUser  = "user"
	ChatSenderAdmin = "admin"
)

// ChatMessage is one entry in a session's append-only message log. The two
// read flags flip false to true independently and never reset.
type ChatMessage struct {
	ID            string    `bson:"id" json:"id"`
	Sender        string    `bson:"sender" json:"sender"` // "user" or "admin"
	Message       string    `bson:"message" json:"message"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
	IsReadByAdmin bool      `bson:"is_read_by_admin" json:"isReadByAdmin"`
	IsReadByUser  bool      `bson:"is_read_by_user" json:"isReadByUser"`
}

// ChatSession is a conversation thread between one client identity and the
// admin side. The identity is either a registered user (UserID set) or a
// guest (GuestUID set), never both. At most one active session exists per
// (identity, type) pair.
type ChatSession struct {
	ID string `bson:"id" json:"id"`

	UserID     string `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestUID   string `bson:"guest_uid,omitempty" json:"guestUid,omitempty"`
	GuestName  string `bson:"guest_name,omitempty" json:"guestName,omitempty"`
	GuestEmail string `bson:"guest_email,omitempty" json:"guestEmail,omitempty"`

	Type   string `bson:"type" json:"type"`     // "booking" or "supportchat"
	Status string `bson:"status" json:"status"` // "active" or "ended"

	Messages []ChatMessage `bson:"messages" json:"messages"`

	StartedAt time.Time  `bson:"started_at" json:"startedAt"`
	EndedAt   *time.Time `bson:"ended_at,omitempty" json:"endedAt,omitempty"`
}

// LastMessageAt returns the timestamp of the most recent message, or the zero
// time for an empty session. Admin listing sorts on this within each status
// group.
func (s *ChatSession) LastMessageAt() time.Time {
	if len(s.Messages) == 0 {
		return time.Time{}
	}
	return s.Messages[len(s.Messages)-1].Timestamp
}

// ChatIdentity is the resolved identity a session is keyed on: exactly one of
// UserID or Guest is set.
type ChatIdentity struct {
	UserID     string
	GuestUID   string
	GuestName  string
	GuestEmail string
}

// IsGuest reports whether the identity is guest-keyed.
func (id ChatIdentity) IsGuest() bool {
	return id.UserID == ""
}

// AdminSessionView is the enriched listing row for the admin inbox: the raw
// session plus display-only details joined from the referenced user account.
type AdminSessionView struct {
	ChatSession `bson:",inline"`
	UserName    string `json:"userName,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	UnreadCount int    `json:"unreadCount"`
}
