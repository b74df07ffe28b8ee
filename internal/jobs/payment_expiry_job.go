package jobs

import (
	"context"
	"time"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UnpaidOrderExpirer is satisfied by commands.ExpireUnpaidOrdersCommandHandler.
type UnpaidOrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireUnpaidOrdersCommand) (int64, error)
}

type PaymentExpirySettings struct {
	// Schedule is a standard five-field cron expression.
	Schedule  string
	OlderThan time.Duration
	Timeout   time.Duration
}

// PaymentExpiryJob marks online payments that were never completed as failed.
type PaymentExpiryJob struct {
	handler  UnpaidOrderExpirer
	settings PaymentExpirySettings
	cron     *cron.Cron
	logger   *zap.Logger
}

const defaultExpiryTimeout = time.Minute

func NewPaymentExpiryJob(handler UnpaidOrderExpirer, settings PaymentExpirySettings, logger *zap.Logger) *PaymentExpiryJob {
	if settings.Timeout <= 0 {
		settings.Timeout = defaultExpiryTimeout
	}
	return &PaymentExpiryJob{
		handler:  handler,
		settings: settings,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "payment_expiry_job")),
	}
}

func (j *PaymentExpiryJob) Name() string {
	return "payment expiry"
}

func (j *PaymentExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.settings.Schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("payment expiry job started",
		zap.String("schedule", j.settings.Schedule),
		zap.Duration("older_than", j.settings.OlderThan),
	)
	return nil
}

// Stop waits for a running pass to finish.
func (j *PaymentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("payment expiry job stopped")
}

func (j *PaymentExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.settings.Timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("payment expiry job failed", zap.Error(err))
	}
}

// RunOnce performs a single expiry pass and reports how many orders changed.
func (j *PaymentExpiryJob) RunOnce(ctx context.Context) (int64, error) {
	cmd, err := commands.NewExpireUnpaidOrdersCommand(j.settings.OlderThan)
	if err != nil {
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		j.logger.Info("expired unpaid online orders", zap.Int64("count", expired))
	}
	return expired, nil
}
