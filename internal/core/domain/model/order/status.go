package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status is a point in an order's lifecycle. Which statuses are meaningful
// depends on the order Type; see Lifecycle.
type Status string

const (
	StatusNew            Status = "new"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusPickedUp       Status = "picked_up"
	StatusServed         Status = "served"
	StatusCancelled      Status = "cancelled"
)

func getStatusLabels() map[Status]string {
	return map[Status]string{
		StatusNew:            "New Order",
		StatusConfirmed:      "Confirmed",
		StatusPreparing:      "Preparing",
		StatusReady:          "Ready",
		StatusOutForDelivery: "Out for Delivery",
		StatusDelivered:      "Delivered",
		StatusPickedUp:       "Picked Up",
		StatusServed:         "Served",
		StatusCancelled:      "Cancelled",
	}
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Label is the customer-facing name of the status. Unknown values are shown as-is.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return string(s)
}

// IsFulfilment reports whether the status ends a lifecycle successfully:
// delivered, picked up or served. Reaching one settles payment.
func (s Status) IsFulfilment() bool {
	return s == StatusDelivered || s == StatusPickedUp || s == StatusServed
}

// IsTerminal reports whether no further transition is expected in normal operation.
func (s Status) IsTerminal() bool {
	return s.IsFulfilment() || s == StatusCancelled
}

// TerminalStatuses lists every terminal status, for queries that exclude finished orders.
func TerminalStatuses() []Status {
	return []Status{StatusDelivered, StatusPickedUp, StatusServed, StatusCancelled}
}
