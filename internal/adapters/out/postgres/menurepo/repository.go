// Package menurepo reads menu items. The menu is maintained by another
// service, so the repository is read-only.
package menurepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MenuItemDTO is a menu_items row. Options holds the modifier groups as jsonb.
type MenuItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available bool            `gorm:"not null;default:true"`
	Options   datatypes.JSON  `gorm:"type:jsonb"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) GetItem(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return nil, err
	}

	return toDomain(id, dto)
}

func toDomain(id kernel.UUID, dto MenuItemDTO) (*menu.Item, error) {
	var groups []menu.ModifierGroup
	if len(dto.Options) > 0 {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(dto.Options, &groups); err != nil {
			return nil, err
		}
	}
	for _, g := range groups {
		if err := g.Kind.Validate(); err != nil {
			return nil, err
		}
	}

	return &menu.Item{
		ID:        id,
		Name:      dto.Name,
		Price:     dto.Price,
		Available: dto.Available,
		Groups:    groups,
	}, nil
}
