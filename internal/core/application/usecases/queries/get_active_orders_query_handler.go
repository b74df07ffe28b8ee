package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the kitchen board straight from the
// database without loading aggregates.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

type activeOrderLineRow struct {
	OrderID    uuid.UUID
	ItemName   string
	Quantity   int
	Selections datatypes.JSON
	Notes      *string
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]ActiveOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().AuthorizeOrderManagement("view active orders"); err != nil {
		return nil, err
	}

	orders := make([]ActiveOrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_token,
			order_type,
			status,
			customer_name,
			customer_phone,
			delivery_address,
			table_id,
			special_instructions,
			scheduled_time,
			total,
			payment_method,
			payment_status,
			created_at
		FROM orders
		WHERE status NOT IN ?
		ORDER BY created_at, id
	`, terminalStatusValues()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[uuid.UUID]int)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var resp ActiveOrderResponse
		var rawID uuid.UUID

		err = rows.Scan(
			&rawID,
			&resp.TrackingToken,
			&resp.OrderType,
			&resp.Status,
			&resp.CustomerName,
			&resp.CustomerPhone,
			&resp.DeliveryAddress,
			&resp.TableID,
			&resp.SpecialInstructions,
			&resp.ScheduledTime,
			&resp.Total,
			&resp.PaymentMethod,
			&resp.PaymentStatus,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = id
		resp.Lines = make([]ActiveOrderLineResponse, 0)

		index[rawID] = len(orders)
		ids = append(ids, rawID)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	var lines []activeOrderLineRow
	if err = h.db.WithContext(ctx).Raw(`
		SELECT order_id, item_name, quantity, selections, notes
		FROM order_items
		WHERE order_id IN ?
		ORDER BY position
	`, ids).Scan(&lines).Error; err != nil {
		return nil, err
	}

	for _, l := range lines {
		var selection menu.Selection
		if len(l.Selections) > 0 {
			if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(l.Selections, &selection); err != nil {
				return nil, err
			}
		}
		i, ok := index[l.OrderID]
		if !ok {
			continue
		}
		orders[i].Lines = append(orders[i].Lines, ActiveOrderLineResponse{
			ItemName:   l.ItemName,
			Quantity:   l.Quantity,
			Selections: selection,
			Notes:      l.Notes,
		})
	}

	return orders, nil
}

func terminalStatusValues() []string {
	statuses := order.TerminalStatuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = s.String()
	}
	return values
}
