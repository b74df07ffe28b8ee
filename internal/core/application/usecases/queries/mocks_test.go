package queries_test

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) GetItem(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*menu.Item)
	return item, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(context.Context, *order.Order) error { return nil }
func (m *MockOrderRepository) AddLines(context.Context, kernel.UUID, []order.Line) error {
	return nil
}
func (m *MockOrderRepository) Delete(context.Context, kernel.UUID) error { return nil }
func (m *MockOrderRepository) Get(context.Context, kernel.UUID) (*order.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) GetByTrackingToken(ctx context.Context, token order.TrackingToken) (*order.Order, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(context.Context, *order.Order) error       { return nil }
func (m *MockOrderRepository) SavePaymentSession(context.Context, *order.Order) error { return nil }
func (m *MockOrderRepository) MarkPaid(context.Context, kernel.UUID, time.Time) error { return nil }
func (m *MockOrderRepository) FailPendingOnlinePayments(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(context.Context, order.HistoryEntry) error { return nil }

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	entries, _ := args.Get(0).([]order.HistoryEntry)
	return entries, args.Error(1)
}
