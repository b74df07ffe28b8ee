package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serverFixture struct {
	echo      *echo.Echo
	placer    *MockOrderPlacer
	changer   *MockStatusChanger
	reconcile *MockPaymentReconciler
	subscribe *MockNewsletterSubscriber
	tracker   *MockOrderTracker
	active    *MockActiveOrdersLister
	pricer    *MockCartItemPricer
	sessions  *MockStaffRepository
	verifier  *MockPaymentEventVerifier
}

func newServerFixture(requestMiddleware ...echo.MiddlewareFunc) *serverFixture {
	f := &serverFixture{
		echo:      echo.New(),
		placer:    &MockOrderPlacer{},
		changer:   &MockStatusChanger{},
		reconcile: &MockPaymentReconciler{},
		subscribe: &MockNewsletterSubscriber{},
		tracker:   &MockOrderTracker{},
		active:    &MockActiveOrdersLister{},
		pricer:    &MockCartItemPricer{},
		sessions:  &MockStaffRepository{},
		verifier:  &MockPaymentEventVerifier{},
	}
	f.echo.JSONSerializer = httpadapter.JSONSerializer{}

	server := httpadapter.NewServer(httpadapter.UseCases{
		PlaceOrder:    f.placer,
		ChangeStatus:  f.changer,
		ReconcilePay:  f.reconcile,
		Subscribe:     f.subscribe,
		TrackOrder:    f.tracker,
		ActiveOrders:  f.active,
		PriceCartItem: f.pricer,
		Sessions:      f.sessions,
		WebhookEvents: f.verifier,
	}, zap.NewNop())
	server.Register(f.echo, requestMiddleware...)
	return f
}

func newValidatedServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	doc, err := httpadapter.LoadOpenAPI(context.Background())
	require.NoError(t, err)
	validator, err := httpadapter.RequestValidator(doc)
	require.NoError(t, err)
	return newServerFixture(validator)
}

func (f *serverFixture) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

const deliveryOrderBody = `{
	"order_type": "delivery",
	"customer_name": "Ada",
	"customer_phone": "+100",
	"customer_email": "ada@example.com",
	"delivery_address": "1 Main St",
	"payment_method": "online",
	"items": [
		{"item_name": "Margherita", "item_price": 10.5, "quantity": 2, "selected_options": {"size": "L"}}
	]
}`

func TestCreateOrder_Success_Returns201(t *testing.T) {
	f := newServerFixture()
	token, err := order.ParseTrackingToken("ORD-ABCDEF")
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	paymentURL := "https://checkout.example/cs_1"

	f.placer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		lines := cmd.Lines()
		return cmd.Fulfilment().Type == order.TypeDelivery &&
			cmd.PaymentMethod() == order.PaymentOnline &&
			len(lines) == 1 &&
			lines[0].Quantity == 2 &&
			lines[0].UnitPrice.Equal(decimal.RequireFromString("10.5")) &&
			lines[0].Selections["size"][0] == "L"
	})).Return(commands.CreateOrderResult{
		OrderID:       orderID,
		TrackingToken: token,
		PaymentURL:    &paymentURL,
	}, nil).Once()

	rec := f.do(http.MethodPost, "/api/orders", deliveryOrderBody, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ORD-ABCDEF", body["tracking_token"])
	assert.Equal(t, orderID.String(), body["order_id"])
	assert.Equal(t, paymentURL, body["payment_url"])
	assert.NotContains(t, body, "error_payment")
	f.placer.AssertExpectations(t)
}

func TestCreateOrder_PaymentSetupFailed_StillCreated(t *testing.T) {
	f := newServerFixture()
	token, err := order.ParseTrackingToken("ORD-ABCDEF")
	require.NoError(t, err)
	msg := commands.PaymentSetupFailedMessage

	f.placer.On("Handle", mock.Anything, mock.Anything).Return(commands.CreateOrderResult{
		OrderID:       kernel.NewUUID(),
		TrackingToken: token,
		PaymentError:  &msg,
	}, nil).Once()

	rec := f.do(http.MethodPost, "/api/orders", deliveryOrderBody, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Payment setup failed, but order was created", body["error_payment"])
	assert.NotContains(t, body, "payment_url")
}

func TestCreateOrder_MalformedJSON_Returns400(t *testing.T) {
	f := newServerFixture()

	rec := f.do(http.MethodPost, "/api/orders", `{"order_type":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
	f.placer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateOrder_InvalidInput_Returns400(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown order type", `{"order_type":"drone","customer_name":"A","customer_phone":"1","items":[{"item_name":"X","item_price":1,"quantity":1}]}`},
		{"no items", `{"order_type":"pickup","customer_name":"A","customer_phone":"1","items":[]}`},
		{"delivery without address", `{"order_type":"delivery","customer_name":"A","customer_phone":"1","items":[{"item_name":"X","item_price":1,"quantity":1}]}`},
		{"zero quantity", `{"order_type":"pickup","customer_name":"A","customer_phone":"1","items":[{"item_name":"X","item_price":1,"quantity":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture()

			rec := f.do(http.MethodPost, "/api/orders", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			f.placer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_StoreFailure_Returns500WithoutDetails(t *testing.T) {
	f := newServerFixture()
	f.placer.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CreateOrderResult{}, errs.NewDependencyFailureError("store", "insert order", errors.New("pq: boom"))).
		Once()

	rec := f.do(http.MethodPost, "/api/orders", deliveryOrderBody, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeBody(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestTrackOrder_Success_ReturnsPublicView(t *testing.T) {
	f := newServerFixture()
	token, err := order.ParseTrackingToken("ORD-XYZ234")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), token,
		order.Customer{Name: "Ada", Phone: "+100"},
		order.Fulfilment{Type: order.TypePickup},
		order.PaymentCounter,
		[]order.Line{{ID: kernel.NewUUID(), ItemName: "Cola", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2}},
		decimal.RequireFromString("3.99"), now)
	require.NoError(t, err)
	entry, err := order.NewHistoryEntry(o.ID(), order.StatusNew, nil, now)
	require.NoError(t, err)

	f.tracker.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderByTrackingTokenQuery) bool {
		return q.Token().String() == "ORD-XYZ234"
	})).Return(queries.GetOrderByTrackingTokenResponse{Order: o, History: []order.HistoryEntry{entry}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/orders/track/ORD-XYZ234", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ORD-XYZ234", body["tracking_token"])
	assert.Equal(t, "new", body["status"])
	assert.Equal(t, order.StatusNew.Label(), body["status_label"])
	assert.InDelta(t, 5.0, body["total"], 0.0001)
	assert.InDelta(t, 0.0, body["delivery_fee"], 0.0001)
	assert.NotContains(t, body, "customer_phone")
	assert.NotContains(t, body, "id")
	assert.Len(t, body["items"], 1)
	assert.Len(t, body["history"], 1)
}

func TestTrackOrder_Errors(t *testing.T) {
	t.Run("malformed token", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodGet, "/api/orders/track/12345", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.tracker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newServerFixture()
		f.tracker.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetOrderByTrackingTokenResponse{}, errs.NewObjectNotFoundError("order", "ORD-AAAAAA")).
			Once()

		rec := f.do(http.MethodGet, "/api/orders/track/ORD-AAAAAA", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetActiveOrders_Authentication(t *testing.T) {
	t.Run("missing bearer token", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodGet, "/api/orders/active", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.sessions.AssertNotCalled(t, "ResolveSession", mock.Anything, mock.Anything)
		f.active.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newServerFixture()
		f.sessions.On("ResolveSession", mock.Anything, "stale").
			Return(staff.Actor{}, errs.NewUnauthenticatedError("resolve session")).Once()

		rec := f.do(http.MethodGet, "/api/orders/active", "", bearer("stale"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.active.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("customer role", func(t *testing.T) {
		f := newServerFixture()
		customer := staff.Actor{ID: kernel.NewUUID(), Role: staff.RoleCustomer}
		f.sessions.On("ResolveSession", mock.Anything, "cust").Return(customer, nil).Once()
		f.active.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewForbiddenError(customer.ID.String(), "list active orders")).Once()

		rec := f.do(http.MethodGet, "/api/orders/active", "", bearer("cust"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetActiveOrders_Chef_ReturnsBoard(t *testing.T) {
	f := newServerFixture()
	chef := staff.Actor{ID: kernel.NewUUID(), Role: staff.RoleChef}
	address := "1 Main St"
	f.sessions.On("ResolveSession", mock.Anything, "chef-session").Return(chef, nil).Once()
	f.active.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetActiveOrdersQuery) bool {
		return q.Actor() == chef
	})).Return([]queries.ActiveOrderResponse{{
		ID:              kernel.NewUUID(),
		TrackingToken:   "ORD-ABCDEF",
		OrderType:       "delivery",
		Status:          "preparing",
		CustomerName:    "Ada",
		CustomerPhone:   "+100",
		DeliveryAddress: &address,
		Total:           decimal.RequireFromString("23.49"),
		PaymentMethod:   "counter",
		PaymentStatus:   "pending",
		Lines: []queries.ActiveOrderLineResponse{
			{ItemName: "Margherita", Quantity: 2, Selections: menu.Selection{"size": {"L"}}},
		},
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/orders/active", "", bearer("chef-session"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "ORD-ABCDEF", body[0]["tracking_token"])
	assert.Equal(t, "+100", body[0]["customer_phone"])
	assert.InDelta(t, 23.49, body[0]["total"], 0.0001)
	assert.Len(t, body[0]["items"], 1)
}

func TestChangeOrderStatus(t *testing.T) {
	manager := staff.Actor{ID: kernel.NewUUID(), Role: staff.RoleManager}

	t.Run("success", func(t *testing.T) {
		f := newServerFixture()
		orderID := kernel.NewUUID()
		f.sessions.On("ResolveSession", mock.Anything, "mgr").Return(manager, nil).Once()
		f.changer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
			return cmd.OrderID() == orderID && cmd.Status() == order.StatusDelivered && cmd.Actor() == manager
		})).Return(commands.ChangeOrderStatusResult{
			Status:        order.StatusDelivered,
			PaymentStatus: order.PaymentPaid,
		}, nil).Once()

		rec := f.do(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", `{"status":"delivered"}`, bearer("mgr"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "delivered", body["status"])
		assert.Equal(t, "paid", body["payment_status"])
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newServerFixture()
		f.sessions.On("ResolveSession", mock.Anything, "mgr").Return(manager, nil).Once()

		rec := f.do(http.MethodPatch, "/api/orders/not-a-uuid/status", `{"status":"ready"}`, bearer("mgr"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("missing status", func(t *testing.T) {
		f := newServerFixture()
		f.sessions.On("ResolveSession", mock.Anything, "mgr").Return(manager, nil).Once()

		rec := f.do(http.MethodPatch, "/api/orders/"+kernel.NewUUID().String()+"/status", `{}`, bearer("mgr"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newServerFixture()
		orderID := kernel.NewUUID()
		f.sessions.On("ResolveSession", mock.Anything, "mgr").Return(manager, nil).Once()
		f.changer.On("Handle", mock.Anything, mock.Anything).
			Return(commands.ChangeOrderStatusResult{}, errs.NewObjectNotFoundError("order", orderID)).Once()

		rec := f.do(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", `{"status":"ready"}`, bearer("mgr"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChangeOrderStatus_AuthenticatesBeforeValidating(t *testing.T) {
	manager := staff.Actor{ID: kernel.NewUUID(), Role: staff.RoleManager}

	t.Run("anonymous request with an invalid body", func(t *testing.T) {
		f := newValidatedServerFixture(t)

		rec := f.do(http.MethodPatch, "/api/orders/not-a-uuid/status", `{"status":5}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("signed in request with an invalid body", func(t *testing.T) {
		f := newValidatedServerFixture(t)
		f.sessions.On("ResolveSession", mock.Anything, "mgr").Return(manager, nil).Once()

		rec := f.do(http.MethodPatch, "/api/orders/not-a-uuid/status", `{"status":5}`, bearer("mgr"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.changer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		f.sessions.AssertExpectations(t)
	})
}

func TestPriceCartItem_ReturnsUnitPrice(t *testing.T) {
	f := newServerFixture()
	itemID := kernel.NewUUID()
	item := &menu.Item{ID: itemID, Name: "Margherita", Price: decimal.RequireFromString("10.00"), Available: true}
	f.pricer.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.PriceCartItemQuery) bool {
		return q.MenuItemID() == itemID && q.Selection()["size"][0] == "L"
	})).Return(queries.PriceCartItemResponse{Item: item, UnitPrice: decimal.RequireFromString("13.00")}, nil).Once()

	rec := f.do(http.MethodPost, "/api/cart/price",
		`{"menu_item_id":"`+itemID.String()+`","selected_options":{"size":"L"}}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, itemID.String(), body["menu_item_id"])
	assert.Equal(t, "Margherita", body["item_name"])
	assert.InDelta(t, 13.0, body["unit_price"], 0.0001)
}

func TestSubscribeNewsletter(t *testing.T) {
	t.Run("subscribed", func(t *testing.T) {
		f := newServerFixture()
		f.subscribe.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubscribeNewsletterCommand) bool {
			return cmd.Email().String() == "ada@example.com"
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/newsletter", `{"email":"  Ada@Example.com "}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newServerFixture()
		f.subscribe.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewConflictError("email", "ada@example.com")).Once()

		rec := f.do(http.MethodPost, "/api/newsletter", `{"email":"ada@example.com"}`, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already subscribed", decodeBody(t, rec)["error"])
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newServerFixture()

		rec := f.do(http.MethodPost, "/api/newsletter", `{"email":"nope"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.subscribe.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestPaymentWebhook(t *testing.T) {
	const payload = `{"id":"evt_1"}`
	orderID := kernel.NewUUID().String()
	signed := map[string]string{"Stripe-Signature": "t=1,v1=abc"}
	completed := ports.PaymentEvent{
		ID:                "evt_1",
		Type:              "checkout.session.completed",
		CheckoutCompleted: true,
		OrderID:           orderID,
		SessionID:         "cs_1",
	}

	t.Run("missing signature", func(t *testing.T) {
		f := newServerFixture()
		f.verifier.On("Verify", []byte(payload), "").
			Return(ports.PaymentEvent{}, errs.NewValueIsRequiredError("stripe-signature")).Once()

		rec := f.do(http.MethodPost, "/api/webhook", payload, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.reconcile.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("ignored event type", func(t *testing.T) {
		f := newServerFixture()
		f.verifier.On("Verify", []byte(payload), "t=1,v1=abc").
			Return(ports.PaymentEvent{ID: "evt_1", Type: "charge.refunded"}, nil).Once()

		rec := f.do(http.MethodPost, "/api/webhook", payload, signed)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["received"])
		f.reconcile.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("checkout completed", func(t *testing.T) {
		f := newServerFixture()
		f.verifier.On("Verify", []byte(payload), "t=1,v1=abc").Return(completed, nil).Once()
		f.reconcile.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReconcilePaymentCommand) bool {
			return cmd.OrderID().String() == orderID && cmd.SessionID() == "cs_1"
		})).Return(commands.ReconcileApplied, nil).Once()

		rec := f.do(http.MethodPost, "/api/webhook", payload, signed)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.reconcile.AssertExpectations(t)
	})

	t.Run("unknown order is acknowledged", func(t *testing.T) {
		f := newServerFixture()
		f.verifier.On("Verify", []byte(payload), "t=1,v1=abc").Return(completed, nil).Once()
		f.reconcile.On("Handle", mock.Anything, mock.Anything).
			Return(commands.ReconcileOutcome(""), errs.NewObjectNotFoundError("order", orderID)).Once()

		rec := f.do(http.MethodPost, "/api/webhook", payload, signed)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store failure asks for a retry", func(t *testing.T) {
		f := newServerFixture()
		f.verifier.On("Verify", []byte(payload), "t=1,v1=abc").Return(completed, nil).Once()
		f.reconcile.On("Handle", mock.Anything, mock.Anything).
			Return(commands.ReconcileOutcome(""), errs.NewDependencyFailureError("store", "mark paid", errors.New("down"))).Once()

		rec := f.do(http.MethodPost, "/api/webhook", payload, signed)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	f := newServerFixture()

	rec := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}
