package models

import "time"

// Booking statuses. Pending and confirmed bookings are "live": they hold
// their time interval against competing requests.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusEnded     = "ended"
	BookingStatusCanceled  = "canceled"
)

// Booking is a reservation of a time interval against a bookable resource.
type Booking struct {
	ID          string `bson:"id" json:"id"`
	ResourceID  string `bson:"resource_id" json:"resourceId"`
	UserID      string `bson:"user_id,omitempty" json:"userId,omitempty"` // empty for guest bookings
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`

	Date      string `bson:"date" json:"date"`             // "2006-01-02"
	StartTime string `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime   string `bson:"end_time" json:"endTime"`      // "HH:MM", strictly after StartTime

	Status       string `bson:"status" json:"status"`
	CancelReason string `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`

	// PaymentID links the booking to a payment-provider transaction so the
	// webhook can resolve which booking to confirm or cancel.
	PaymentID string `bson:"payment_id,omitempty" json:"paymentId,omitempty"`

	// Set exactly once, the first time the corresponding status is entered.
	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CanceledAt  *time.Time `bson:"canceled_at,omitempty" json:"canceledAt,omitempty"`
	EndedAt     *time.Time `bson:"ended_at,omitempty" json:"endedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsLive reports whether the booking currently holds its time interval.
func (b *Booking) IsLive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// BookingInput is the client payload for creating a booking.
type BookingInput struct {
	ResourceID  string `json:"resourceId"`
	UserID      string `json:"userId,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	PaymentID   string `json:"paymentId,omitempty"`
}
