package booking

import "fmt"

// ValidationError reports malformed or missing input. Handlers map it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// OverlapError reports a scheduling conflict with an existing live booking.
// Handlers map it to 409.
type OverlapError struct {
	ResourceID string
	Date       string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("requested time overlaps an existing booking for resource %s on %s", e.ResourceID, e.Date)
}

// NotFoundError reports a missing entity. Handlers map it to 404.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// TransitionError reports a status change the transition table forbids.
// Handlers map it to 400.
type TransitionError struct {
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Action, e.From)
}
