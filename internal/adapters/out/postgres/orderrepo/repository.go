package orderrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row. Lines are written separately by AddLines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Lines").Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("tracking_token", dto.TrackingToken, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) AddLines(ctx context.Context, orderID kernel.UUID, lines []order.Line) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if len(lines) == 0 {
		return order.ErrOrderHasNoLines
	}

	dtos, err := linesFromDomain(orderID, lines)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes()).Error
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByTrackingToken(ctx context.Context, token order.TrackingToken) (*order.Order, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, token.String(), "tracking_token = ?", token.String())
}

func (r *GormOrderRepository) first(ctx context.Context, key string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, err
	}
	return toDomain(dto)
}

// UpdateStatus writes only the status columns so a concurrent payment
// settlement is never overwritten with a stale pending value.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	updates := map[string]any{
		"status":     aggregate.Status().String(),
		"updated_at": aggregate.UpdatedAt(),
	}
	if aggregate.IsPaid() {
		updates["payment_status"] = order.PaymentPaid.String()
	}

	if err := r.update(ctx, aggregate.ID(), updates); err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) SavePaymentSession(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.PaymentSessionID() == nil {
		return errs.NewValueIsRequiredError("payment_session_id")
	}
	return r.update(ctx, aggregate.ID(), map[string]any{
		"payment_session_id": *aggregate.PaymentSessionID(),
		"updated_at":         aggregate.UpdatedAt(),
	})
}

// MarkPaid settles the payment. An order that is already paid is left
// untouched, updated_at included.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND payment_status <> ?", id.Bytes(), order.PaymentPaid.String()).
		Updates(map[string]any{
			"payment_status": order.PaymentPaid.String(),
			"updated_at":     at.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *GormOrderRepository) FailPendingOnlinePayments(ctx context.Context, cutoff time.Time, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("payment_status = ? AND payment_method = ? AND created_at < ?",
			order.PaymentPending.String(), order.PaymentOnline.String(), cutoff.UTC()).
		Updates(map[string]any{
			"payment_status": order.PaymentFailed.String(),
			"updated_at":     at.UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *GormOrderRepository) update(ctx context.Context, id kernel.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
