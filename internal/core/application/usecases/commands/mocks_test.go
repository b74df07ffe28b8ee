package commands_test

import (
	"context"
	"sync"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) AddLines(ctx context.Context, orderID kernel.UUID, lines []order.Line) error {
	return m.Called(ctx, orderID, lines).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingToken(ctx context.Context, token order.TrackingToken) (*order.Order, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) SavePaymentSession(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockOrderRepository) FailPendingOnlinePayments(ctx context.Context, cutoff, at time.Time) (int64, error) {
	args := m.Called(ctx, cutoff, at)
	return args.Get(0).(int64), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entry order.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	entries, _ := args.Get(0).([]order.HistoryEntry)
	return entries, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) HistoryRepository() ports.HistoryRepository {
	return m.Called().Get(0).(ports.HistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockSubscriberRepository struct{ mock.Mock }

func (m *MockSubscriberRepository) Add(ctx context.Context, s *newsletter.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

type MockNewsletterUoW struct{ mock.Mock }

func (m *MockNewsletterUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockNewsletterUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockNewsletterUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockNewsletterUoW) SubscriberRepository() ports.SubscriberRepository {
	return m.Called().Get(0).(ports.SubscriberRepository)
}

type MockNewsletterUoWFactory struct{ mock.Mock }

func (m *MockNewsletterUoWFactory) Create() commands.NewsletterUoW {
	return m.Called().Get(0).(commands.NewsletterUoW)
}

type MockTokenSource struct{ mock.Mock }

func (m *MockTokenSource) Next() (order.TrackingToken, error) {
	args := m.Called()
	return args.Get(0).(order.TrackingToken), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, o *order.Order) (ports.CheckoutSession, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OrderPlaced(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, o *order.Order, message string) error {
	return m.Called(ctx, o, message).Error(0)
}

func (m *MockNotifier) Welcome(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}

// inlineRunner runs tasks synchronously and remembers their names.
type inlineRunner struct {
	mu    sync.Mutex
	names []string
	errs  []error
}

func (r *inlineRunner) Go(name string, task func(ctx context.Context) error) {
	err := task(context.Background())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.errs = append(r.errs, err)
}

func (r *inlineRunner) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func mustToken(s string) order.TrackingToken {
	token, err := order.ParseTrackingToken(s)
	if err != nil {
		panic(err)
	}
	return token
}

func strPtr(s string) *string { return &s }
