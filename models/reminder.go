package models

// ReminderPayload is the queued task payload for a booking reminder.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	ResourceID string `json:"resourceId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
}
