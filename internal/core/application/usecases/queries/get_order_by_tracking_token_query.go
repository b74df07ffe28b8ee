package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrGetOrderByTrackingTokenQueryIsNotConstructed = errors.New(
	"GetOrderByTrackingTokenQuery must be created via NewGetOrderByTrackingTokenQuery constructor",
)

// GetOrderByTrackingTokenQuery is the customer's unauthenticated order lookup.
type GetOrderByTrackingTokenQuery struct {
	token order.TrackingToken

	guard guard.ConstructorGuard
}

func NewGetOrderByTrackingTokenQuery(token string) (GetOrderByTrackingTokenQuery, error) {
	t, err := order.ParseTrackingToken(token)
	if err != nil {
		return GetOrderByTrackingTokenQuery{}, err
	}
	return GetOrderByTrackingTokenQuery{token: t, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderByTrackingTokenQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByTrackingTokenQueryIsNotConstructed)
}

func (q GetOrderByTrackingTokenQuery) Token() order.TrackingToken {
	return q.token
}
