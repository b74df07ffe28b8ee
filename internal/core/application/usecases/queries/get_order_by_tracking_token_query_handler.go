package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// GetOrderByTrackingTokenResponse is an order as its customer sees it.
type GetOrderByTrackingTokenResponse struct {
	Order   *order.Order
	History []order.HistoryEntry
}

type GetOrderByTrackingTokenQueryHandler struct {
	orderRepo   ports.OrderRepository
	historyRepo ports.HistoryRepository
}

func NewGetOrderByTrackingTokenQueryHandler(
	orderRepo ports.OrderRepository,
	historyRepo ports.HistoryRepository,
) GetOrderByTrackingTokenQueryHandler {
	return GetOrderByTrackingTokenQueryHandler{orderRepo: orderRepo, historyRepo: historyRepo}
}

func (h GetOrderByTrackingTokenQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByTrackingTokenQuery,
) (GetOrderByTrackingTokenResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByTrackingTokenResponse{}, err
	}

	o, err := h.orderRepo.GetByTrackingToken(ctx, query.Token())
	if err != nil {
		return GetOrderByTrackingTokenResponse{}, err
	}

	history, err := h.historyRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderByTrackingTokenResponse{}, err
	}

	return GetOrderByTrackingTokenResponse{Order: o, History: history}, nil
}
