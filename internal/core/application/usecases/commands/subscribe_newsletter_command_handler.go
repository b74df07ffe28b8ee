package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/core/ports"

	"go.uber.org/zap"
)

// SubscribeNewsletterCommandHandler stores a subscriber and queues the welcome
// email. An address that is already subscribed yields errs.ErrConflict.
type SubscribeNewsletterCommandHandler struct {
	uowFactory NewsletterUoWFactory
	notifier   ports.Notifier
	tasks      ports.TaskRunner
	logger     *zap.Logger
}

func NewSubscribeNewsletterCommandHandler(
	uowFactory NewsletterUoWFactory,
	notifier ports.Notifier,
	tasks ports.TaskRunner,
	logger *zap.Logger,
) SubscribeNewsletterCommandHandler {
	return SubscribeNewsletterCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		tasks:      tasks,
		logger:     logger.With(zap.String("component", "newsletter")),
	}
}

func (h *SubscribeNewsletterCommandHandler) Handle(ctx context.Context, cmd SubscribeNewsletterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	subscriber, err := newsletter.NewSubscriber(cmd.Email(), time.Now())
	if err != nil {
		return err
	}

	if err = h.uowFactory.Create().SubscriberRepository().Add(ctx, subscriber); err != nil {
		return storeError("insert subscriber", err)
	}

	email := subscriber.Email.String()
	h.tasks.Go("welcome email", func(taskCtx context.Context) error {
		return h.notifier.Welcome(taskCtx, email)
	})

	h.logger.Info("newsletter subscriber added", zap.String("subscriber_id", subscriber.ID.String()))
	return nil
}
