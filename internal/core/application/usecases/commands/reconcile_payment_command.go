package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries a verified checkout-completed confirmation.
type ReconcilePaymentCommand struct {
	orderID   kernel.UUID
	sessionID string

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand parses the order id taken from the event metadata.
func NewReconcilePaymentCommand(orderID string, sessionID string) (ReconcilePaymentCommand, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return ReconcilePaymentCommand{}, err
	}
	return ReconcilePaymentCommand{
		orderID:   id,
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReconcilePaymentCommand) SessionID() string {
	return c.sessionID
}
