package postgres

import (
	"restaurant/internal/adapters/out/postgres/historyrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/staffrepo"
	"restaurant/internal/adapters/out/postgres/subscriberrepo"

	"gorm.io/gorm"
)

// Models lists every table owned or read by the service, parents first.
func Models() []any {
	return []any{
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&historyrepo.HistoryDTO{},
		&staffrepo.ProfileDTO{},
		&staffrepo.SessionDTO{},
		&subscriberrepo.SubscriberDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
