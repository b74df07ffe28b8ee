package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
)

// HistoryRepository stores the append-only status log.
type HistoryRepository interface {
	Append(ctx context.Context, entry order.HistoryEntry) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)
}

// MenuRepository reads the menu. Menu maintenance lives elsewhere.
type MenuRepository interface {
	GetItem(ctx context.Context, id kernel.UUID) (*menu.Item, error)
}

// StaffRepository resolves the user behind a session token issued by the
// authentication provider. Unknown or expired tokens yield errs.ErrUnauthenticated.
type StaffRepository interface {
	ResolveSession(ctx context.Context, sessionToken string) (staff.Actor, error)
}

// SubscriberRepository persists newsletter subscribers. A duplicate email
// yields an errs.ConflictError.
type SubscriberRepository interface {
	Add(ctx context.Context, subscriber *newsletter.Subscriber) error
}
