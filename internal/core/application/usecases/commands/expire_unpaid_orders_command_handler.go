package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpireUnpaidOrdersCommandHandler marks stale pending online payments as
// failed. The store applies the change only where payment is still pending, so
// a paid order is never downgraded and a later confirmation still wins.
type ExpireUnpaidOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *zap.Logger
}

func NewExpireUnpaidOrdersCommandHandler(uowFactory OrderUoWFactory, logger *zap.Logger) ExpireUnpaidOrdersCommandHandler {
	return ExpireUnpaidOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "payment_expiry")),
	}
}

// Handle returns the number of orders whose payment was marked failed.
func (h *ExpireUnpaidOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireUnpaidOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	cutoff := now.Add(-cmd.OlderThan())

	n, err := h.uowFactory.Create().OrderRepository().FailPendingOnlinePayments(ctx, cutoff, now)
	if err != nil {
		return 0, storeError("expire unpaid orders", err)
	}

	if n > 0 {
		h.logger.Info("unpaid online orders expired", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
