package smtp

import (
	"context"

	"restaurant/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// NoopNotifier stands in when SMTP credentials are not configured.
type NoopNotifier struct {
	logger *zap.Logger
}

func NewNoopNotifier(logger *zap.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) OrderPlaced(_ context.Context, o *order.Order) error {
	n.skip("order placed", o.TrackingToken().String())
	return nil
}

func (n *NoopNotifier) OrderStatusChanged(_ context.Context, o *order.Order, _ string) error {
	n.skip("order status", o.TrackingToken().String())
	return nil
}

func (n *NoopNotifier) Welcome(context.Context, string) error {
	n.skip("welcome", "")
	return nil
}

func (n *NoopNotifier) skip(kind, token string) {
	n.logger.Warn("SMTP credentials not configured, skipping email",
		zap.String("email", kind), zap.String("tracking_token", token))
}
