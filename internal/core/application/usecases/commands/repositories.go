// Package commands contains business operations that modify system state.
// Every command is built through its constructor and validated again by its handler.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	SubscriberRepoFactory interface {
		SubscriberRepository() ports.SubscriberRepository
	}

	// OrderUoW covers order rows and their status history.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   uow.OrderRepository().UpdateStatus(ctx, o)
	//   uow.HistoryRepository().Append(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NewsletterUoW manages subscriber writes.
	NewsletterUoW interface {
		TxManager
		SubscriberRepoFactory
	}

	NewsletterUoWFactory interface {
		Create() NewsletterUoW
	}
)
