package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// Notifier tells customers about their orders. Implementations may be slow;
// callers run them through a TaskRunner.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *order.Order) error
	OrderStatusChanged(ctx context.Context, o *order.Order, message string) error
	Welcome(ctx context.Context, email string) error
}

// CheckoutSession is a hosted payment page opened at the payment processor.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway opens checkout sessions for online payment.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, o *order.Order) (CheckoutSession, error)
}

// PaymentEvent is a verified notification from the payment processor.
// OrderID is empty for events that do not concern an order.
type PaymentEvent struct {
	ID                string
	Type              string
	CheckoutCompleted bool
	OrderID           string
	SessionID         string
}

// PaymentEventVerifier authenticates and decodes payment processor webhooks.
type PaymentEventVerifier interface {
	Verify(payload []byte, signature string) (PaymentEvent, error)
}

// StatusChangedEvent is broadcast to kitchen displays and other listeners.
type StatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	TrackingToken  string    `json:"tracking_token"`
	OrderType      string    `json:"order_type"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	Transition     string    `json:"transition"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// StatusEventPublisher broadcasts order status changes.
type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}

// TaskRunner runs fire-and-forget work outside the request. Failures are
// logged by the runner and never reach the caller.
type TaskRunner interface {
	Go(name string, task func(ctx context.Context) error)
}
