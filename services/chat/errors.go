package chat

import "errors"

var (
	// ErrSessionNotFound is returned when the session id resolves to nothing.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrSessionEnded is returned when an operation targets an ended session.
	// Ended is terminal; a new session must be started instead.
	ErrSessionEnded = errors.New("chat session has ended")

	// ErrInvalidSender is returned for senders other than "user" or "admin".
	ErrInvalidSender = errors.New("sender must be user or admin")

	// ErrEmptyMessage is returned when the message body is blank.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrInvalidChatType is returned for session types other than "booking"
	// or "supportchat".
	ErrInvalidChatType = errors.New("chat type must be booking or supportchat")
)
