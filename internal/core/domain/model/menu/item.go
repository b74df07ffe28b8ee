package menu

import (
	"restaurant/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Item is a menu row as read from the store. Menu maintenance lives outside
// this service, so Item has no mutators.
type Item struct {
	ID        kernel.UUID
	Name      string
	Price     decimal.Decimal
	Available bool
	Groups    []ModifierGroup
}

// UnitPrice prices this item for the given selection.
func (i Item) UnitPrice(selection Selection) decimal.Decimal {
	return Price(i.Price, selection, i.Groups)
}
