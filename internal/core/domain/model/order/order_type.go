package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Type is how the customer receives the order.
type Type string

const (
	TypeDelivery Type = "delivery"
	TypePickup   Type = "pickup"
	TypeDineIn   Type = "dine_in"
)

const (
	deliveryEstimatedMinutes = 45
	defaultEstimatedMinutes  = 30
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case TypeDelivery, TypePickup, TypeDineIn:
		return nil
	case "":
		return errs.NewValueIsRequiredError("order_type")
	default:
		return errs.NewValueIsInvalidErrorWithCause("order_type", fmt.Errorf("%q is not a valid order type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}

// Label is the customer-facing name of the order type.
func (t Type) Label() string {
	switch t {
	case TypeDelivery:
		return "Home Delivery"
	case TypePickup:
		return "Self Pickup"
	case TypeDineIn:
		return "Dine In"
	default:
		return string(t)
	}
}

// RequiresAddress reports whether a delivery address is mandatory.
func (t Type) RequiresAddress() bool {
	return t == TypeDelivery
}

// EstimatedMinutes is the preparation estimate promised to the customer.
func (t Type) EstimatedMinutes() int {
	if t == TypeDelivery {
		return deliveryEstimatedMinutes
	}
	return defaultEstimatedMinutes
}

// Lifecycle returns the status machine of the order type.
// It panics for an invalid type; validate first.
func (t Type) Lifecycle() Lifecycle {
	switch t {
	case TypeDelivery:
		return deliveryLifecycle
	case TypePickup:
		return pickupLifecycle
	case TypeDineIn:
		return dineInLifecycle
	default:
		panic(fmt.Sprintf("order: no lifecycle for order type %q", string(t)))
	}
}
