// Package historyrepo persists the append-only order status log.
package historyrepo

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryDTO is one order_status_history row.
type HistoryDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status    string     `gorm:"type:varchar(32);not null"`
	ChangedBy *uuid.UUID `gorm:"type:uuid"`
	ChangedAt time.Time  `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) Append(ctx context.Context, entry order.HistoryEntry) error {
	if err := entry.OrderID.Validate(); err != nil {
		return err
	}
	if err := entry.Status.Validate(); err != nil {
		return err
	}

	dto := HistoryDTO{
		OrderID:   entry.OrderID.Bytes(),
		Status:    entry.Status.String(),
		ChangedAt: entry.ChangedAt,
	}
	if entry.ChangedBy != nil {
		by := entry.ChangedBy.Bytes()
		dto.ChangedBy = &by
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the log oldest first.
func (r *GormHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("changed_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry := order.HistoryEntry{
			OrderID:   orderID,
			Status:    order.Status(dto.Status),
			ChangedAt: dto.ChangedAt,
		}
		if dto.ChangedBy != nil {
			by, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
			if err != nil {
				return nil, err
			}
			entry.ChangedBy = &by
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
