package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	MenuItemID      *uuid.UUID      `json:"menu_item_id"`
	DealID          *uuid.UUID      `json:"deal_id"`
	ItemName        string          `json:"item_name"`
	ItemPrice       decimal.Decimal `json:"item_price"`
	Quantity        int             `json:"quantity"`
	SelectedOptions menu.Selection  `json:"selected_options"`
	Notes           *string         `json:"notes"`
}

type CreateOrderRequest struct {
	OrderType           string             `json:"order_type"`
	CustomerName        string             `json:"customer_name"`
	CustomerPhone       string             `json:"customer_phone"`
	CustomerEmail       *string            `json:"customer_email"`
	DeliveryAddress     *string            `json:"delivery_address"`
	TableID             *string            `json:"table_id"`
	PaymentMethod       string             `json:"payment_method"`
	SpecialInstructions *string            `json:"special_instructions"`
	ScheduledTime       *time.Time         `json:"scheduled_time"`
	Items               []OrderItemRequest `json:"items"`
}

func (r CreateOrderRequest) customer() order.Customer {
	return order.Customer{Name: r.CustomerName, Phone: r.CustomerPhone, Email: r.CustomerEmail}
}

func (r CreateOrderRequest) fulfilment() (order.Fulfilment, error) {
	orderType, err := order.ParseType(r.OrderType)
	if err != nil {
		return order.Fulfilment{}, err
	}
	return order.Fulfilment{
		Type:                orderType,
		DeliveryAddress:     r.DeliveryAddress,
		TableID:             r.TableID,
		SpecialInstructions: r.SpecialInstructions,
		ScheduledTime:       r.ScheduledTime,
	}, nil
}

func (r CreateOrderRequest) lines() ([]order.Line, error) {
	lines := make([]order.Line, 0, len(r.Items))
	for _, item := range r.Items {
		menuItemID, err := optionalID(item.MenuItemID)
		if err != nil {
			return nil, err
		}
		dealID, err := optionalID(item.DealID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{
			MenuItemID: menuItemID,
			DealID:     dealID,
			ItemName:   item.ItemName,
			UnitPrice:  item.ItemPrice,
			Quantity:   item.Quantity,
			Selections: item.SelectedOptions,
			Notes:      item.Notes,
		})
	}
	return lines, nil
}

type CreateOrderResponse struct {
	TrackingToken string  `json:"tracking_token"`
	OrderID       string  `json:"order_id"`
	PaymentURL    *string `json:"payment_url,omitempty"`
	ErrorPayment  *string `json:"error_payment,omitempty"`
}

type OrderLineResponse struct {
	ItemName        string          `json:"item_name"`
	ItemPrice       decimal.Decimal `json:"item_price"`
	Quantity        int             `json:"quantity"`
	SelectedOptions menu.Selection  `json:"selected_options"`
	Notes           *string         `json:"notes"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	ChangedAt time.Time `json:"changed_at"`
}

// TrackedOrderResponse is the customer view of an order. Internal ids and
// contact details stay out of it.
type TrackedOrderResponse struct {
	TrackingToken    string                 `json:"tracking_token"`
	OrderType        string                 `json:"order_type"`
	Status           string                 `json:"status"`
	StatusLabel      string                 `json:"status_label"`
	EstimatedMinutes int                    `json:"estimated_minutes"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	DeliveryFee      decimal.Decimal        `json:"delivery_fee"`
	Total            decimal.Decimal        `json:"total"`
	PaymentMethod    string                 `json:"payment_method"`
	PaymentStatus    string                 `json:"payment_status"`
	CreatedAt        time.Time              `json:"created_at"`
	Items            []OrderLineResponse    `json:"items"`
	History          []HistoryEntryResponse `json:"history"`
}

func trackedOrderFromResult(res queries.GetOrderByTrackingTokenResponse) TrackedOrderResponse {
	o := res.Order
	items := make([]OrderLineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		items = append(items, OrderLineResponse{
			ItemName:        l.ItemName,
			ItemPrice:       l.UnitPrice,
			Quantity:        l.Quantity,
			SelectedOptions: l.Selections,
			Notes:           l.Notes,
		})
	}
	history := make([]HistoryEntryResponse, 0, len(res.History))
	for _, h := range res.History {
		history = append(history, HistoryEntryResponse{
			Status:    h.Status.String(),
			Label:     h.Status.Label(),
			ChangedAt: h.ChangedAt,
		})
	}
	return TrackedOrderResponse{
		TrackingToken:    o.TrackingToken().String(),
		OrderType:        o.Type().String(),
		Status:           o.Status().String(),
		StatusLabel:      o.Status().Label(),
		EstimatedMinutes: o.EstimatedMinutes(),
		Subtotal:         o.Subtotal(),
		DeliveryFee:      o.DeliveryFee(),
		Total:            o.Total(),
		PaymentMethod:    o.PaymentMethod().String(),
		PaymentStatus:    o.PaymentStatus().String(),
		CreatedAt:        o.CreatedAt(),
		Items:            items,
		History:          history,
	}
}

type ActiveOrderResponse struct {
	ID                  string              `json:"id"`
	TrackingToken       string              `json:"tracking_token"`
	OrderType           string              `json:"order_type"`
	Status              string              `json:"status"`
	CustomerName        string              `json:"customer_name"`
	CustomerPhone       string              `json:"customer_phone"`
	DeliveryAddress     *string             `json:"delivery_address"`
	TableID             *string             `json:"table_id"`
	SpecialInstructions *string             `json:"special_instructions"`
	ScheduledTime       *time.Time          `json:"scheduled_time"`
	Total               decimal.Decimal     `json:"total"`
	PaymentMethod       string              `json:"payment_method"`
	PaymentStatus       string              `json:"payment_status"`
	CreatedAt           time.Time           `json:"created_at"`
	Items               []OrderLineResponse `json:"items"`
}

func activeOrdersFromResult(orders []queries.ActiveOrderResponse) []ActiveOrderResponse {
	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		items := make([]OrderLineResponse, 0, len(o.Lines))
		for _, l := range o.Lines {
			items = append(items, OrderLineResponse{
				ItemName:        l.ItemName,
				Quantity:        l.Quantity,
				SelectedOptions: l.Selections,
				Notes:           l.Notes,
			})
		}
		response[i] = ActiveOrderResponse{
			ID:                  o.ID.String(),
			TrackingToken:       o.TrackingToken,
			OrderType:           o.OrderType,
			Status:              o.Status,
			CustomerName:        o.CustomerName,
			CustomerPhone:       o.CustomerPhone,
			DeliveryAddress:     o.DeliveryAddress,
			TableID:             o.TableID,
			SpecialInstructions: o.SpecialInstructions,
			ScheduledTime:       o.ScheduledTime,
			Total:               o.Total,
			PaymentMethod:       o.PaymentMethod,
			PaymentStatus:       o.PaymentStatus,
			CreatedAt:           o.CreatedAt,
			Items:               items,
		}
	}
	return response
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type ChangeStatusResponse struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type PriceCartItemRequest struct {
	MenuItemID      uuid.UUID      `json:"menu_item_id"`
	SelectedOptions menu.Selection `json:"selected_options"`
}

type PriceCartItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	ItemName   string          `json:"item_name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

func optionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
