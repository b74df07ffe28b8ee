package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// Use cases the server drives. The command and query handlers satisfy them.
type (
	OrderPlacer interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}

	StatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
	}

	PaymentReconciler interface {
		Handle(ctx context.Context, cmd commands.ReconcilePaymentCommand) (commands.ReconcileOutcome, error)
	}

	NewsletterSubscriber interface {
		Handle(ctx context.Context, cmd commands.SubscribeNewsletterCommand) error
	}

	OrderTracker interface {
		Handle(ctx context.Context, query queries.GetOrderByTrackingTokenQuery) (queries.GetOrderByTrackingTokenResponse, error)
	}

	ActiveOrdersLister interface {
		Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.ActiveOrderResponse, error)
	}

	CartItemPricer interface {
		Handle(ctx context.Context, query queries.PriceCartItemQuery) (queries.PriceCartItemResponse, error)
	}
)

// UseCases groups everything the server dispatches to.
type UseCases struct {
	PlaceOrder    OrderPlacer
	ChangeStatus  StatusChanger
	ReconcilePay  PaymentReconciler
	Subscribe     NewsletterSubscriber
	TrackOrder    OrderTracker
	ActiveOrders  ActiveOrdersLister
	PriceCartItem CartItemPricer
	Sessions      ports.StaffRepository
	WebhookEvents ports.PaymentEventVerifier
}

const alreadySubscribedMessage = "Email already subscribed"

// Server translates HTTP requests into commands and queries.
type Server struct {
	useCases UseCases
	logger   *zap.Logger
}

func NewServer(useCases UseCases, logger *zap.Logger) *Server {
	return &Server{useCases: useCases, logger: logger}
}

// Register mounts every route on e. requestMiddleware, usually the request
// validator, runs per route after staff authentication.
func (s *Server) Register(e *echo.Echo, requestMiddleware ...echo.MiddlewareFunc) {
	public := requestMiddleware
	staffOnly := append([]echo.MiddlewareFunc{StaffAuth(s.useCases.Sessions, s)}, requestMiddleware...)

	api := e.Group("/api")
	api.POST("/orders", s.CreateOrder, public...)
	api.GET("/orders/track/:token", s.TrackOrder, public...)
	api.GET("/orders/active", s.GetActiveOrders, staffOnly...)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus, staffOnly...)
	api.POST("/cart/price", s.PriceCartItem, public...)
	api.POST("/newsletter", s.SubscribeNewsletter, public...)
	api.POST("/webhook", s.PaymentWebhook, public...)

	e.GET("/health", s.Health, public...)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	lines, err := req.lines()
	if err != nil {
		return s.writeError(c, err)
	}
	fulfilment, err := req.fulfilment()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(req.customer(), fulfilment, req.PaymentMethod, lines)
	if err != nil {
		return s.writeError(c, err)
	}

	res, err := s.useCases.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateOrderResponse{
		TrackingToken: res.TrackingToken.String(),
		OrderID:       res.OrderID.String(),
		PaymentURL:    res.PaymentURL,
		ErrorPayment:  res.PaymentError,
	})
}

// TrackOrder handles GET /api/orders/track/:token.
func (s *Server) TrackOrder(c echo.Context) error {
	query, err := queries.NewGetOrderByTrackingTokenQuery(c.Param("token"))
	if err != nil {
		return s.writeError(c, err)
	}

	res, err := s.useCases.TrackOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, trackedOrderFromResult(res))
}

// GetActiveOrders handles GET /api/orders/active.
func (s *Server) GetActiveOrders(c echo.Context) error {
	query := queries.NewGetActiveOrdersQuery(actorFrom(c))

	orders, err := s.useCases.ActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, activeOrdersFromResult(orders))
}

// ChangeOrderStatus handles PATCH /api/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(c, err)
	}

	var req ChangeStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status, actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}

	res, err := s.useCases.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ChangeStatusResponse{
		Success:       true,
		Status:        res.Status.String(),
		PaymentStatus: res.PaymentStatus.String(),
	})
}

// PriceCartItem handles POST /api/cart/price.
func (s *Server) PriceCartItem(c echo.Context) error {
	var req PriceCartItemRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	menuItemID, err := kernel.UUIDFromBytes(req.MenuItemID[:])
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewPriceCartItemQuery(menuItemID, req.SelectedOptions)
	if err != nil {
		return s.writeError(c, err)
	}

	res, err := s.useCases.PriceCartItem.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, PriceCartItemResponse{
		MenuItemID: res.Item.ID.String(),
		ItemName:   res.Item.Name,
		UnitPrice:  res.UnitPrice,
	})
}

// SubscribeNewsletter handles POST /api/newsletter.
func (s *Server) SubscribeNewsletter(c echo.Context) error {
	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewSubscribeNewsletterCommand(req.Email)
	if err != nil {
		return s.writeError(c, err)
	}
	err = s.useCases.Subscribe.Handle(c.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: alreadySubscribedMessage})
	case err != nil:
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// PaymentWebhook handles POST /api/webhook. The raw body is needed for the
// signature check, so it is never bound.
func (s *Server) PaymentWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	event, err := s.useCases.WebhookEvents.Verify(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		s.logger.Warn("rejected payment webhook", zap.Error(err))
		return s.writeError(c, err)
	}

	if !event.CheckoutCompleted {
		return c.JSON(http.StatusOK, WebhookResponse{Received: true})
	}

	cmd, err := commands.NewReconcilePaymentCommand(event.OrderID, event.SessionID)
	if err != nil {
		s.logger.Warn("checkout event without a usable order id",
			zap.String("event_id", event.ID), zap.Error(err))
		return c.JSON(http.StatusOK, WebhookResponse{Received: true})
	}

	outcome, err := s.useCases.ReconcilePay.Handle(c.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		s.logger.Warn("checkout completed for unknown order",
			zap.String("order_id", event.OrderID), zap.Error(err))
	case err != nil:
		return s.writeError(c, err)
	default:
		s.logger.Info("payment reconciled",
			zap.String("order_id", event.OrderID), zap.String("outcome", string(outcome)))
	}
	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) badRequest(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		}
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}
