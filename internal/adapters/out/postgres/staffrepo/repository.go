// Package staffrepo resolves staff session tokens. Sessions are issued by the
// authentication provider; this service only reads them.
package staffrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resolveAction = "resolve session"

// SessionDTO is an issued session token.
type SessionDTO struct {
	Token     string    `gorm:"type:varchar(128);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (SessionDTO) TableName() string {
	return "staff_sessions"
}

// ProfileDTO carries the role of a user.
type ProfileDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role string    `gorm:"type:varchar(16);not null"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

type GormStaffRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db, now: time.Now}
}

func (r *GormStaffRepository) ResolveSession(ctx context.Context, sessionToken string) (staff.Actor, error) {
	if sessionToken == "" {
		return staff.Actor{}, errs.NewUnauthenticatedError(resolveAction)
	}

	var row struct {
		UserID uuid.UUID
		Role   string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.user_id, p.role
		FROM staff_sessions s
		JOIN profiles p ON p.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ?
	`, sessionToken, r.now().UTC()).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return staff.Actor{}, errs.NewUnauthenticatedError(resolveAction)
		}
		return staff.Actor{}, err
	}

	id, err := kernel.UUIDFromBytes(row.UserID[:])
	if err != nil {
		return staff.Actor{}, err
	}
	role, err := staff.ParseRole(row.Role)
	if err != nil {
		return staff.Actor{}, err
	}
	return staff.NewActor(id, role)
}
