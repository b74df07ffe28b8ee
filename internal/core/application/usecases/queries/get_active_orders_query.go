package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery feeds the kitchen board: every order that has not
// reached a terminal status, oldest first.
type GetActiveOrdersQuery struct {
	actor staff.Actor

	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(actor staff.Actor) GetActiveOrdersQuery {
	return GetActiveOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) Actor() staff.Actor {
	return q.actor
}

// ActiveOrderResponse is one ticket on the kitchen board.
type ActiveOrderResponse struct {
	ID                  kernel.UUID
	TrackingToken       string
	OrderType           string
	Status              string
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     *string
	TableID             *string
	SpecialInstructions *string
	ScheduledTime       *time.Time
	Total               decimal.Decimal
	PaymentMethod       string
	PaymentStatus       string
	CreatedAt           time.Time
	Lines               []ActiveOrderLineResponse
}

type ActiveOrderLineResponse struct {
	ItemName   string
	Quantity   int
	Selections menu.Selection
	Notes      *string
}
