// Package ports defines the contracts between the restaurant core and its adapters:
// persistence, notifications, payments and status events.
package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Writes are narrow on purpose: payment settlement and status changes touch
// disjoint columns so that a webhook and a staff action racing on the same
// order cannot undo each other.
type OrderRepository interface {
	// Add inserts the order row without its lines. A tracking token that is
	// already taken yields an errs.ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// AddLines inserts the lines of an existing order in one statement.
	AddLines(ctx context.Context, orderID kernel.UUID, lines []order.Line) error

	// Delete removes an order row. Used to undo a half-created order.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order with its lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingToken retrieves an order with its lines by its public handle.
	GetByTrackingToken(ctx context.Context, token order.TrackingToken) (*order.Order, error)


	// UpdateStatus writes the status and, if the aggregate is paid, the payment status.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// SavePaymentSession stores the checkout session id of the order.
	SavePaymentSession(ctx context.Context, aggregate *order.Order) error

	// MarkPaid sets payment_status to paid without any precondition.
	MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) error

	// FailPendingOnlinePayments marks pending online payments created before
	// cutoff as failed and returns how many orders changed.
	FailPendingOnlinePayments(ctx context.Context, cutoff time.Time, at time.Time) (int64, error)
}
