package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReconcileOutcome tells whether a confirmation changed anything.
type ReconcileOutcome string

const (
	ReconcileApplied        ReconcileOutcome = "applied"
	ReconcileAlreadyApplied ReconcileOutcome = "already_applied"
)

// ReconcilePaymentCommandHandler marks an order as paid after the payment
// processor confirmed the checkout. A replayed confirmation of a paid order
// writes nothing. The order status is never touched.
type ReconcilePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *zap.Logger
}

func NewReconcilePaymentCommandHandler(uowFactory OrderUoWFactory, logger *zap.Logger) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "payment_reconciler")),
	}
}

func (h *ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) (ReconcileOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	orderRepo := h.uowFactory.Create().OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", storeError("get order", err)
	}

	outcome := ReconcileAlreadyApplied
	if !o.IsPaid() {
		if err = orderRepo.MarkPaid(ctx, cmd.OrderID(), time.Now()); err != nil {
			return "", storeError("mark order paid", err)
		}
		outcome = ReconcileApplied
	}

	h.logger.Info("payment reconciled",
		zap.String("order_id", cmd.OrderID().String()),
		zap.String("session_id", cmd.SessionID()),
		zap.String("outcome", string(outcome)),
	)
	return outcome, nil
}
