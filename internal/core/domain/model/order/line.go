package order

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one cart position of an order. UnitPrice is the price computed when
// the item was added to the cart. The order rounds it to cents and never
// recomputes it.
type Line struct {
	ID         kernel.UUID
	MenuItemID *kernel.UUID
	DealID     *kernel.UUID
	ItemName   string
	UnitPrice  decimal.Decimal
	Quantity   int
	Selections menu.Selection
	Notes      *string
}

func (l Line) Validate() error {
	var errList []error
	if strings.TrimSpace(l.ItemName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item_name"))
	}
	if l.UnitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("item_price",
			fmt.Errorf("%s is negative", l.UnitPrice.String())))
	}
	if l.Quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity)))
	}
	return errors.Join(errList...)
}

// Total is UnitPrice × Quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
