package smtp_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/internal/adapters/out/smtp"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/mail.v2"
)

type recordingSender struct {
	messages []*mail.Message
	err      error
}

func (s *recordingSender) DialAndSend(m ...*mail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func render(t *testing.T, m *mail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func newNotifier(sender smtp.Sender) *smtp.Notifier {
	return smtp.NewNotifier(sender, smtp.Settings{
		FromAddress:    "orders@pizzamania.test",
		RestaurantName: "Pizza Mania",
		AppURL:         "https://pizzamania.test/",
	}, zap.NewNop())
}

func deliveryOrder(t *testing.T, email *string) *order.Order {
	t.Helper()
	token, err := order.ParseTrackingToken("ORD-XYZ789")
	require.NoError(t, err)
	address := "1 Main St"
	o, err := order.NewOrder(kernel.NewUUID(), token,
		order.Customer{Name: "Ada", Phone: "+100", Email: email},
		order.Fulfilment{Type: order.TypeDelivery, DeliveryAddress: &address},
		order.PaymentCounter,
		[]order.Line{
			{ItemName: "Margherita", UnitPrice: kernel.MustDecimal("13.00"), Quantity: 1},
			{ItemName: "Cola", UnitPrice: kernel.MustDecimal("3.25"), Quantity: 2},
		},
		kernel.MustDecimal("3.99"), time.Now())
	require.NoError(t, err)
	return o
}

func TestNotifier_OrderPlaced(t *testing.T) {
	sender := &recordingSender{}
	email := "ada@example.com"

	err := newNotifier(sender).OrderPlaced(context.Background(), deliveryOrder(t, &email))
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"New Order Received #ORD-XYZ789 - Pizza Mania"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"ada@example.com"}, m.GetHeader("To"))

	raw := render(t, m)
	assert.Contains(t, raw, "Delivery Address: 1 Main St")
	assert.Contains(t, raw, "2x Cola")
	assert.Contains(t, raw, "https://pizzamania.test/order/ORD-XYZ789")
}

func TestNotifier_SkipsOrdersWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender)
	o := deliveryOrder(t, nil)

	require.NoError(t, n.OrderPlaced(context.Background(), o))
	require.NoError(t, n.OrderStatusChanged(context.Background(), o, "Your order is ready"))
	assert.Empty(t, sender.messages)
}

func TestNotifier_OrderStatusChanged(t *testing.T) {
	sender := &recordingSender{}
	email := "ada@example.com"
	o := deliveryOrder(t, &email)
	require.NoError(t, o.ApplyStatus(order.StatusOutForDelivery, time.Now()))

	err := newNotifier(sender).OrderStatusChanged(context.Background(), o,
		"Your order is out for delivery and heading your way!")
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"Order Update #ORD-XYZ789: Out for Delivery"}, sender.messages[0].GetHeader("Subject"))
	assert.Contains(t, render(t, sender.messages[0]), "heading your way")
}

func TestNotifier_Welcome(t *testing.T) {
	sender := &recordingSender{}

	require.NoError(t, newNotifier(sender).Welcome(context.Background(), "ada@example.com"))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"Welcome to Pizza Mania! 🍕 Here is your first treat"}, sender.messages[0].GetHeader("Subject"))
}

func TestNotifier_SendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection refused")}

	err := newNotifier(sender).Welcome(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNotifier_CancelledContext(t *testing.T) {
	sender := &recordingSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newNotifier(sender).Welcome(ctx, "ada@example.com")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.messages)
}

func TestNoopNotifier_LogsSkip(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := smtp.NewNoopNotifier(zap.New(core))

	require.NoError(t, n.Welcome(context.Background(), "ada@example.com"))
	assert.Equal(t, 1, logs.FilterMessage("SMTP credentials not configured, skipping email").Len())
}
