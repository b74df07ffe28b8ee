package cmd

import (
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/staffrepo"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Adapters are the outbound collaborators built by main. Publisher may be nil.
type Adapters struct {
	Tasks     ports.TaskRunner
	Notifier  ports.Notifier
	Payments  ports.PaymentGateway
	Webhooks  ports.PaymentEventVerifier
	Publisher ports.StatusEventPublisher
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	adapters   Adapters
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, adapters Adapters, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		adapters:   adapters,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		services.NewTrackingTokenGenerator(),
		c.adapters.Payments,
		c.adapters.Notifier,
		c.adapters.Tasks,
		commands.CreateOrderSettings{
			DeliveryFee:      c.config.DeliveryFee,
			TokenMaxAttempts: c.config.TokenMaxAttempts,
		},
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(),
		services.NewOrderStatusMachine(c.config.RestaurantName),
		c.adapters.Notifier,
		c.adapters.Publisher,
		c.adapters.Tasks,
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() *commands.ReconcilePaymentCommandHandler {
	h := commands.NewReconcilePaymentCommandHandler(c.orderUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateExpireUnpaidOrdersCommandHandler() *commands.ExpireUnpaidOrdersCommandHandler {
	h := commands.NewExpireUnpaidOrdersCommandHandler(c.orderUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateSubscribeNewsletterCommandHandler() *commands.SubscribeNewsletterCommandHandler {
	var f commands.NewsletterUoWFactory = FuncNewsletterUoWFactory(func() commands.NewsletterUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSubscribeNewsletterCommandHandler(f, c.adapters.Notifier, c.adapters.Tasks, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderByTrackingTokenQueryHandler() queries.GetOrderByTrackingTokenQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderByTrackingTokenQueryHandler(uow.OrderRepository(), uow.HistoryRepository())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePriceCartItemQueryHandler() queries.PriceCartItemQueryHandler {
	return queries.NewPriceCartItemQueryHandler(menurepo.NewGormMenuRepository(c.gormDB))
}

// HTTPUseCases wires every use case the HTTP server dispatches to.
func (c *CompositionRoot) HTTPUseCases() httpadapter.UseCases {
	return httpadapter.UseCases{
		PlaceOrder:    c.CreateCreateOrderCommandHandler(),
		ChangeStatus:  c.CreateChangeOrderStatusCommandHandler(),
		ReconcilePay:  c.CreateReconcilePaymentCommandHandler(),
		Subscribe:     c.CreateSubscribeNewsletterCommandHandler(),
		TrackOrder:    c.CreateGetOrderByTrackingTokenQueryHandler(),
		ActiveOrders:  c.CreateGetActiveOrdersQueryHandler(),
		PriceCartItem: c.CreatePriceCartItemQueryHandler(),
		Sessions:      staffrepo.NewGormStaffRepository(c.gormDB),
		WebhookEvents: c.adapters.Webhooks,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewPaymentExpiryJob(c.CreateExpireUnpaidOrdersCommandHandler(), jobs.PaymentExpirySettings{
			Schedule:  c.config.PaymentExpirySchedule,
			OlderThan: c.config.PaymentExpiryAfter,
		}, c.logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNewsletterUoWFactory func() commands.NewsletterUoW

func (f FuncNewsletterUoWFactory) Create() commands.NewsletterUoW {
	return f()
}
