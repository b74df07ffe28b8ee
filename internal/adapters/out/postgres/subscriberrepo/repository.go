// Package subscriberrepo persists newsletter subscribers.
package subscriberrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/newsletter"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type SubscriberDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (SubscriberDTO) TableName() string {
	return "newsletter_subscribers"
}

type GormSubscriberRepository struct {
	db *gorm.DB
}

func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// Add inserts the subscriber. The unique index on email turns a repeated
// subscription into an errs.ConflictError.
func (r *GormSubscriberRepository) Add(ctx context.Context, subscriber *newsletter.Subscriber) error {
	dto := SubscriberDTO{
		ID:        subscriber.ID.Bytes(),
		Email:     subscriber.Email.String(),
		CreatedAt: subscriber.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errs.NewConflictErrorWithCause("email", dto.Email, err)
		}
		return err
	}
	return nil
}
