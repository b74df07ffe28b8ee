package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// HistoryEntry is one row of an order's append-only status log. ChangedBy is
// nil for entries written by the system (creation, scheduled jobs).
type HistoryEntry struct {
	OrderID   kernel.UUID
	Status    Status
	ChangedBy *kernel.UUID
	ChangedAt time.Time
}

func NewHistoryEntry(orderID kernel.UUID, status Status, changedBy *kernel.UUID, at time.Time) (HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{OrderID: orderID, Status: status, ChangedBy: changedBy, ChangedAt: at.UTC()}, nil
}
