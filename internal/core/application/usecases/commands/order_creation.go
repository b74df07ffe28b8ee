package commands

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"go.uber.org/zap"
)

// OrderCreation tracks a two-step order write (order row, then lines) that is
// not wrapped in a transaction. If the lines never make it, UndoIfIncomplete
// removes the order row so no order is left without lines.
type OrderCreation struct {
	repo     ports.OrderRepository
	orderID  kernel.UUID
	complete bool
	logger   *zap.Logger
}

func NewOrderCreation(repo ports.OrderRepository, orderID kernel.UUID, logger *zap.Logger) *OrderCreation {
	return &OrderCreation{repo: repo, orderID: orderID, logger: logger}
}

// Complete marks the lines as persisted.
func (c *OrderCreation) Complete() {
	c.complete = true
}

func (c *OrderCreation) IsComplete() bool {
	return c.complete
}

// UndoIfIncomplete deletes the order row unless Complete was called. It runs
// synchronously and ignores cancellation of ctx. A failed delete is logged
// and returned.
func (c *OrderCreation) UndoIfIncomplete(ctx context.Context) error {
	if c.complete {
		return nil
	}

	if err := c.repo.Delete(context.WithoutCancel(ctx), c.orderID); err != nil {
		c.logger.Error("failed to delete incomplete order",
			zap.String("order_id", c.orderID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Warn("deleted incomplete order", zap.String("order_id", c.orderID.String()))
	return nil
}
