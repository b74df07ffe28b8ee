package http_test

import (
	"context"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderPlacer struct{ mock.Mock }

func (m *MockOrderPlacer) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockStatusChanger struct{ mock.Mock }

func (m *MockStatusChanger) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (commands.ChangeOrderStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ChangeOrderStatusResult), args.Error(1)
}

type MockPaymentReconciler struct{ mock.Mock }

func (m *MockPaymentReconciler) Handle(
	ctx context.Context,
	cmd commands.ReconcilePaymentCommand,
) (commands.ReconcileOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ReconcileOutcome), args.Error(1)
}

type MockNewsletterSubscriber struct{ mock.Mock }

func (m *MockNewsletterSubscriber) Handle(ctx context.Context, cmd commands.SubscribeNewsletterCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderTracker struct{ mock.Mock }

func (m *MockOrderTracker) Handle(
	ctx context.Context,
	query queries.GetOrderByTrackingTokenQuery,
) (queries.GetOrderByTrackingTokenResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderByTrackingTokenResponse), args.Error(1)
}

type MockActiveOrdersLister struct{ mock.Mock }

func (m *MockActiveOrdersLister) Handle(
	ctx context.Context,
	query queries.GetActiveOrdersQuery,
) ([]queries.ActiveOrderResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]queries.ActiveOrderResponse)
	return res, args.Error(1)
}

type MockCartItemPricer struct{ mock.Mock }

func (m *MockCartItemPricer) Handle(ctx context.Context, query queries.PriceCartItemQuery) (queries.PriceCartItemResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.PriceCartItemResponse), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) ResolveSession(ctx context.Context, sessionToken string) (staff.Actor, error) {
	args := m.Called(ctx, sessionToken)
	return args.Get(0).(staff.Actor), args.Error(1)
}

type MockPaymentEventVerifier struct{ mock.Mock }

func (m *MockPaymentEventVerifier) Verify(payload []byte, signature string) (ports.PaymentEvent, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(ports.PaymentEvent), args.Error(1)
}
