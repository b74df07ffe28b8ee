// Package orderrepo persists order aggregates and their lines.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OrderDTO is the orders row. Lines live in order_items and are loaded on
// demand; deleting an order cascades to them.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingToken       string          `gorm:"type:varchar(16);uniqueIndex;not null"`
	OrderType           string          `gorm:"type:varchar(16);not null"`
	Status              string          `gorm:"type:varchar(32);index;not null"`
	CustomerName        string          `gorm:"not null"`
	CustomerPhone       string          `gorm:"not null"`
	CustomerEmail       *string
	DeliveryAddress     *string
	TableID             *string
	SpecialInstructions *string
	ScheduledTime       *time.Time
	EstimatedMinutes    int
	Subtotal            decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveryFee         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total               decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentMethod       string          `gorm:"type:varchar(16);not null"`
	PaymentStatus       string          `gorm:"type:varchar(16);index;not null"`
	PaymentSessionID    *string
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time

	Lines []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the cart order.
type OrderItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	MenuItemID *uuid.UUID      `gorm:"type:uuid"`
	DealID     *uuid.UUID      `gorm:"type:uuid"`
	ItemName   string          `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity   int             `gorm:"not null"`
	Selections datatypes.JSON  `gorm:"type:jsonb"`
	Notes      *string
	Position   int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	c := o.Customer()
	f := o.Fulfilment()
	return OrderDTO{
		ID:                  o.ID().Bytes(),
		TrackingToken:       o.TrackingToken().String(),
		OrderType:           o.Type().String(),
		Status:              o.Status().String(),
		CustomerName:        c.Name,
		CustomerPhone:       c.Phone,
		CustomerEmail:       c.Email,
		DeliveryAddress:     f.DeliveryAddress,
		TableID:             f.TableID,
		SpecialInstructions: f.SpecialInstructions,
		ScheduledTime:       f.ScheduledTime,
		EstimatedMinutes:    o.EstimatedMinutes(),
		Subtotal:            kernel.RoundToCurrency(o.Subtotal()),
		DeliveryFee:         kernel.RoundToCurrency(o.DeliveryFee()),
		Total:               kernel.RoundToCurrency(o.Total()),
		PaymentMethod:       o.PaymentMethod().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		PaymentSessionID:    o.PaymentSessionID(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

func linesFromDomain(orderID kernel.UUID, lines []order.Line) ([]OrderItemDTO, error) {
	dtos := make([]OrderItemDTO, 0, len(lines))
	for i, l := range lines {
		selections, err := json.Marshal(l.Selections)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, OrderItemDTO{
			ID:         l.ID.Bytes(),
			OrderID:    orderID.Bytes(),
			MenuItemID: optionalBytes(l.MenuItemID),
			DealID:     optionalBytes(l.DealID),
			ItemName:   l.ItemName,
			UnitPrice:  kernel.RoundToCurrency(l.UnitPrice),
			Quantity:   l.Quantity,
			Selections: datatypes.JSON(selections),
			Notes:      l.Notes,
			Position:   i,
		})
	}
	return dtos, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	token, err := order.ParseTrackingToken(dto.TrackingToken)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		TrackingToken: token,
		Customer: order.Customer{
			Name:  dto.CustomerName,
			Phone: dto.CustomerPhone,
			Email: dto.CustomerEmail,
		},
		Fulfilment: order.Fulfilment{
			Type:                order.Type(dto.OrderType),
			DeliveryAddress:     dto.DeliveryAddress,
			TableID:             dto.TableID,
			SpecialInstructions: dto.SpecialInstructions,
			ScheduledTime:       dto.ScheduledTime,
		},
		Status:           order.Status(dto.Status),
		EstimatedMinutes: dto.EstimatedMinutes,
		Lines:            lines,
		Subtotal:         dto.Subtotal,
		DeliveryFee:      dto.DeliveryFee,
		Total:            dto.Total,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:    order.PaymentStatus(dto.PaymentStatus),
		PaymentSessionID: dto.PaymentSessionID,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}

func lineToDomain(dto OrderItemDTO) (order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Line{}, err
	}
	var selections menu.Selection
	if len(dto.Selections) > 0 {
		if err = json.Unmarshal(dto.Selections, &selections); err != nil {
			return order.Line{}, err
		}
	}
	return order.Line{
		ID:         id,
		MenuItemID: optionalUUID(dto.MenuItemID),
		DealID:     optionalUUID(dto.DealID),
		ItemName:   dto.ItemName,
		UnitPrice:  dto.UnitPrice,
		Quantity:   dto.Quantity,
		Selections: selections,
		Notes:      dto.Notes,
	}, nil
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	b := id.Bytes()
	return &b
}

func optionalUUID(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil
	}
	return &k
}
