// Package queries contains read-only operations. Handlers never modify state.
package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/guard"
)

var ErrPriceCartItemQueryIsNotConstructed = errors.New(
	"PriceCartItemQuery must be created via NewPriceCartItemQuery constructor",
)

// PriceCartItemQuery asks for the unit price of a menu item with the
// customer's modifier selection, as frozen into the cart.
type PriceCartItemQuery struct {
	menuItemID kernel.UUID
	selection  menu.Selection

	guard guard.ConstructorGuard
}

func NewPriceCartItemQuery(menuItemID kernel.UUID, selection menu.Selection) (PriceCartItemQuery, error) {
	if err := menuItemID.Validate(); err != nil {
		return PriceCartItemQuery{}, err
	}
	return PriceCartItemQuery{menuItemID: menuItemID, selection: selection, guard: guard.NewConstructorGuard()}, nil
}

func (q PriceCartItemQuery) Validate() error {
	return q.guard.Validate(ErrPriceCartItemQueryIsNotConstructed)
}

func (q PriceCartItemQuery) MenuItemID() kernel.UUID {
	return q.menuItemID
}

func (q PriceCartItemQuery) Selection() menu.Selection {
	return q.selection
}
