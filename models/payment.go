package models

// Payment statuses a provider may report.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// PaymentEvent is the webhook payload the payment provider delivers after the
// HMAC signature has been verified. Status values follow the provider's
// vocabulary: "completed"/"succeeded" confirm, "failed"/"cancelled" cancel.
type PaymentEvent struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}
