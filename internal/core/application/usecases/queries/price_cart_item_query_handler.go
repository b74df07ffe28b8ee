package queries

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PriceCartItemResponse carries the priced cart line.
type PriceCartItemResponse struct {
	Item      *menu.Item
	UnitPrice decimal.Decimal
}

type PriceCartItemQueryHandler struct {
	menuRepo ports.MenuRepository
}

func NewPriceCartItemQueryHandler(menuRepo ports.MenuRepository) PriceCartItemQueryHandler {
	return PriceCartItemQueryHandler{menuRepo: menuRepo}
}

// Handle prices the item. Unavailable items are rejected so they cannot reach a cart.
func (h PriceCartItemQueryHandler) Handle(ctx context.Context, query PriceCartItemQuery) (PriceCartItemResponse, error) {
	if err := query.Validate(); err != nil {
		return PriceCartItemResponse{}, err
	}

	item, err := h.menuRepo.GetItem(ctx, query.MenuItemID())
	if err != nil {
		return PriceCartItemResponse{}, err
	}
	if !item.Available {
		return PriceCartItemResponse{}, errs.NewValueIsInvalidErrorWithCause("menu_item_id",
			fmt.Errorf("%s is not available", item.Name))
	}

	return PriceCartItemResponse{Item: item, UnitPrice: kernel.RoundToCurrency(item.UnitPrice(query.Selection()))}, nil
}
