package payment

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "brightsite/database/repository/booking"
	"brightsite/models"
	"brightsite/services/booking"
	"brightsite/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrBadSignature is returned when the webhook payload fails signature
// verification. Nothing is mutated in that case.
var ErrBadSignature = errors.New("invalid webhook signature")

// PaymentProcessor consumes provider payment events and drives the matching
// booking through its lifecycle.
type PaymentProcessor interface {
	// HandleStripeWebhook verifies and applies one raw webhook delivery.
	// Event types outside the payment lifecycle are acknowledged untouched.
	HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error

	// Apply reacts to a normalized payment event: success confirms the
	// booking, failure cancels it. An unknown payment id is a NotFoundError
	// and mutates nothing.
	Apply(ctx context.Context, event models.PaymentEvent) error
}

// DefaultPaymentProcessor is the production processor.
type DefaultPaymentProcessor struct {
	Bookings      bookingRepo.BookingRepository
	Engine        booking.BookingEngine
	WebhookSecret string
}

// NewDefaultPaymentProcessor wires the processor with its collaborators.
func NewDefaultPaymentProcessor(bookings bookingRepo.BookingRepository, engine booking.BookingEngine, webhookSecret string) *DefaultPaymentProcessor {
	return &DefaultPaymentProcessor{Bookings: bookings, Engine: engine, WebhookSecret: webhookSecret}
}

func (p *DefaultPaymentProcessor) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	// Tolerate api_version drift: the HMAC check is the gate, not the
	// version pin of the vendored client.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, p.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ErrBadSignature
	}

	paymentEvent, ok := translateStripeEvent(event)
	if !ok {
		utils.GetLogger().Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
	return p.Apply(ctx, paymentEvent)
}

// translateStripeEvent maps a Stripe event onto the provider-neutral payment
// event the booking lifecycle understands.
func translateStripeEvent(event stripe.Event) (models.PaymentEvent, bool) {
	object := event.Data.Object

	paymentID, _ := object["payment_intent"].(string)
	if paymentID == "" {
		paymentID, _ = object["id"].(string)
	}
	if paymentID == "" {
		return models.PaymentEvent{}, false
	}

	switch event.Type {
	case "checkout.session.completed":
		return models.PaymentEvent{PaymentID: paymentID, Status: models.PaymentStatusCompleted}, true
	case "payment_intent.succeeded":
		return models.PaymentEvent{PaymentID: paymentID, Status: models.PaymentStatusSucceeded}, true
	case "payment_intent.payment_failed":
		return models.PaymentEvent{PaymentID: paymentID, Status: models.PaymentStatusFailed}, true
	case "payment_intent.canceled", "checkout.session.expired":
		return models.PaymentEvent{PaymentID: paymentID, Status: models.PaymentStatusCancelled}, true
	default:
		return models.PaymentEvent{}, false
	}
}

func (p *DefaultPaymentProcessor) Apply(ctx context.Context, event models.PaymentEvent) error {
	logger := utils.GetLogger()

	target, err := p.Bookings.GetByPaymentID(ctx, event.PaymentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &booking.NotFoundError{Entity: "booking", ID: event.PaymentID}
		}
		return err
	}

	switch event.Status {
	case models.PaymentStatusCompleted, models.PaymentStatusSucceeded:
		_, err = p.Engine.Transition(ctx, target.ID, booking.ActionConfirm, "")
	case models.PaymentStatusFailed, models.PaymentStatusCancelled:
		_, err = p.Engine.Transition(ctx, target.ID, booking.ActionCancel, "payment "+event.Status)
	default:
		return fmt.Errorf("unknown payment status %q", event.Status)
	}
	if err != nil {
		return err
	}

	logger.Info("payment event applied",
		zap.String("paymentID", event.PaymentID),
		zap.String("status", event.Status),
		zap.String("bookingID", target.ID))
	return nil
}
