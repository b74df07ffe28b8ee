package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"go.uber.org/zap"
)

const changeOrderStatusAction = "change order status"

// ChangeOrderStatusResult reports the state written by a status change.
type ChangeOrderStatusResult struct {
	Status        order.Status
	PaymentStatus order.PaymentStatus
	Transition    services.Transition
}

// StatusClassifier decides the kind of a status change and its customer notice.
type StatusClassifier interface {
	Classify(orderType order.Type, previous *order.Status, requested order.Status) (services.Transition, error)
}

// ChangeOrderStatusCommandHandler applies a staff status change.
//
// The status write and the history entry share one transaction. The customer
// email and the status broadcast are queued after commit and never fail the request.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	classifier StatusClassifier
	notifier   ports.Notifier
	publisher  ports.StatusEventPublisher
	tasks      ports.TaskRunner
	logger     *zap.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	classifier StatusClassifier,
	notifier ports.Notifier,
	publisher ports.StatusEventPublisher,
	tasks ports.TaskRunner,
	logger *zap.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		classifier: classifier,
		notifier:   notifier,
		publisher:  publisher,
		tasks:      tasks,
		logger:     logger.With(zap.String("component", "change_order_status")),
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err := cmd.Actor().AuthorizeOrderManagement(changeOrderStatusAction); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, storeError("begin transaction", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, storeError("get order", err)
	}

	previous := o.Status()
	transition, err := h.classifier.Classify(o.Type(), &previous, cmd.Status())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	now := time.Now()
	if err = o.ApplyStatus(cmd.Status(), now); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = uow.OrderRepository().UpdateStatus(ctx, o); err != nil {
		return ChangeOrderStatusResult{}, storeError("update order status", err)
	}

	actorID := cmd.Actor().ID
	entry, err := order.NewHistoryEntry(o.ID(), o.Status(), &actorID, now)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return ChangeOrderStatusResult{}, storeError("append status history", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, storeError("commit status change", err)
	}

	h.logger.Info("order status changed",
		zap.String("order_id", o.ID().String()),
		zap.String("from", previous.String()),
		zap.String("to", o.Status().String()),
		zap.String("transition", string(transition.Kind)),
		zap.String("changed_by", actorID.String()),
	)

	h.dispatch(o, previous, transition, now)

	return ChangeOrderStatusResult{
		Status:        o.Status(),
		PaymentStatus: o.PaymentStatus(),
		Transition:    transition,
	}, nil
}

func (h *ChangeOrderStatusCommandHandler) dispatch(o *order.Order, previous order.Status, tr services.Transition, at time.Time) {
	if tr.Notify && o.Customer().Email != nil {
		h.tasks.Go("order status email", func(ctx context.Context) error {
			return h.notifier.OrderStatusChanged(ctx, o, tr.Message)
		})
	}

	if h.publisher == nil {
		return
	}
	event := ports.StatusChangedEvent{
		OrderID:        o.ID().String(),
		TrackingToken:  o.TrackingToken().String(),
		OrderType:      o.Type().String(),
		PreviousStatus: previous.String(),
		Status:         o.Status().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		Transition:     string(tr.Kind),
		OccurredAt:     at.UTC(),
	}
	h.tasks.Go("order status event", func(ctx context.Context) error {
		return h.publisher.PublishStatusChanged(ctx, event)
	})
}
