package models

import "time"

// AvailabilityWindow is an admin-defined window during which a resource (a
// bookable sub-service) accepts bookings. A window is either recurring on a
// weekday or tied to one specific calendar date, never both.
type AvailabilityWindow struct {
	ID           string    `bson:"id" json:"id"`
	ResourceID   string    `bson:"resource_id" json:"resourceId"`
	IsRecurring  bool      `bson:"is_recurring" json:"isRecurring"`
	DayOfWeek    *int      `bson:"day_of_week,omitempty" json:"dayOfWeek,omitempty"`     // 0 (Sunday) .. 6, required iff recurring
	SpecificDate string    `bson:"specific_date,omitempty" json:"specificDate,omitempty"` // "2006-01-02", required iff one-off
	StartTime    string    `bson:"start_time" json:"startTime"` // "HH:MM", 24-hour
	EndTime      string    `bson:"end_time" json:"endTime"`     // "HH:MM", strictly after StartTime
	SlotDuration int       `bson:"slot_duration" json:"slotDuration"` // minutes, 1..480
	IsActive     bool      `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Slot is a single bookable interval produced from a window.
type Slot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}
