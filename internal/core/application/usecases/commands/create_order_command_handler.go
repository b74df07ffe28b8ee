package commands

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentSetupFailedMessage is returned to the customer when the order was
// placed but no checkout page could be opened.
const PaymentSetupFailedMessage = "Payment setup failed, but order was created"

const DefaultTokenMaxAttempts = 3

// TrackingTokenSource issues candidate tracking tokens.
type TrackingTokenSource interface {
	Next() (order.TrackingToken, error)
}

// CreateOrderSettings are the pricing and retry knobs of order creation.
type CreateOrderSettings struct {
	DeliveryFee      decimal.Decimal
	TokenMaxAttempts int
}

// CreateOrderResult is what the customer gets back after checkout.
// PaymentError is set when the order exists but the checkout session failed.
type CreateOrderResult struct {
	Order         *order.Order
	OrderID       kernel.UUID
	TrackingToken order.TrackingToken
	PaymentURL    *string
	PaymentError  *string
}

// CreateOrderCommandHandler places orders.
//
// The steps are: insert the order row under a fresh tracking token (retried
// on token conflicts), insert its lines (the row is deleted again if this
// fails), record the initial history entry, open a checkout session for online
// payment and finally queue the confirmation email.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	tokens     TrackingTokenSource
	payments   ports.PaymentGateway
	notifier   ports.Notifier
	tasks      ports.TaskRunner
	settings   CreateOrderSettings
	logger     *zap.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	tokens TrackingTokenSource,
	payments ports.PaymentGateway,
	notifier ports.Notifier,
	tasks ports.TaskRunner,
	settings CreateOrderSettings,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	if settings.TokenMaxAttempts <= 0 {
		settings.TokenMaxAttempts = DefaultTokenMaxAttempts
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
		payments:   payments,
		notifier:   notifier,
		tasks:      tasks,
		settings:   settings,
		logger:     logger.With(zap.String("component", "create_order")),
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	o, err := h.insertWithFreshToken(ctx, orderRepo, cmd)
	if err != nil {
		return CreateOrderResult{}, err
	}

	creation := NewOrderCreation(orderRepo, o.ID(), h.logger)
	if err = orderRepo.AddLines(ctx, o.ID(), o.Lines()); err != nil {
		_ = creation.UndoIfIncomplete(ctx)
		return CreateOrderResult{}, storeError("insert order lines", err)
	}
	creation.Complete()

	h.appendInitialHistory(ctx, uow.HistoryRepository(), o)

	result := CreateOrderResult{Order: o, OrderID: o.ID(), TrackingToken: o.TrackingToken()}
	if o.RequiresOnlinePayment() {
		h.openCheckout(ctx, orderRepo, o, &result)
	}

	if o.Customer().Email != nil {
		h.tasks.Go("order placed email", func(taskCtx context.Context) error {
			return h.notifier.OrderPlaced(taskCtx, o)
		})
	}

	h.logger.Info("order placed",
		zap.String("order_id", o.ID().String()),
		zap.String("tracking_token", o.TrackingToken().String()),
		zap.String("order_type", o.Type().String()),
		zap.String("total", o.Total().StringFixed(kernel.CurrencyScale)),
	)
	return result, nil
}

func (h *CreateOrderCommandHandler) insertWithFreshToken(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	var lastConflict error
	for attempt := 1; attempt <= h.settings.TokenMaxAttempts; attempt++ {
		token, err := h.tokens.Next()
		if err != nil {
			return nil, err
		}

		o, err := order.NewOrder(
			kernel.NewUUID(),
			token,
			cmd.Customer(),
			cmd.Fulfilment(),
			cmd.PaymentMethod(),
			cmd.Lines(),
			h.settings.DeliveryFee,
			time.Now(),
		)
		if err != nil {
			return nil, err
		}

		err = orderRepo.Add(ctx, o)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, storeError("insert order", err)
		}

		lastConflict = err
		h.logger.Warn("tracking token collision",
			zap.String("tracking_token", token.String()),
			zap.Int("attempt", attempt),
		)
	}
	return nil, lastConflict
}

func (h *CreateOrderCommandHandler) appendInitialHistory(ctx context.Context, history ports.HistoryRepository, o *order.Order) {
	entry, err := order.NewHistoryEntry(o.ID(), o.Status(), nil, o.CreatedAt())
	if err == nil {
		err = history.Append(ctx, entry)
	}
	if err != nil {
		h.logger.Error("failed to record initial status", zap.String("order_id", o.ID().String()), zap.Error(err))
	}
}

func (h *CreateOrderCommandHandler) openCheckout(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	o *order.Order,
	result *CreateOrderResult,
) {
	session, err := h.payments.CreateCheckoutSession(ctx, o)
	if err != nil {
		h.logger.Error("checkout session failed", zap.String("order_id", o.ID().String()), zap.Error(err))
		msg := PaymentSetupFailedMessage
		result.PaymentError = &msg
		return
	}

	url := session.URL
	result.PaymentURL = &url

	if err = o.AttachPaymentSession(session.ID); err == nil {
		err = orderRepo.SavePaymentSession(ctx, o)
	}
	if err != nil {
		h.logger.Warn("failed to store checkout session id",
			zap.String("order_id", o.ID().String()),
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
}
