package services

import (
	"fmt"

	"restaurant/internal/core/domain/model/order"
)

// TransitionKind names the shape of a status change.
type TransitionKind string

const (
	TransitionForward        TransitionKind = "forward"
	TransitionRegression     TransitionKind = "regression"
	TransitionTerminalSettle TransitionKind = "terminal_settle"
	TransitionUnchanged      TransitionKind = "unchanged"
	TransitionCancel         TransitionKind = "cancel"
)

const regressionPrefix = "We've updated your order status to ensure accuracy. "

// Transition is the outcome of classifying a status change.
//
// Settles is true when the change must also set the payment status to paid.
// Notify tells whether the customer is emailed; Message is the email body
// sentence and is filled even when Notify is false.
type Transition struct {
	Kind       TransitionKind
	Previous   *order.Status
	Requested  order.Status
	Regression bool
	Notify     bool
	Settles    bool
	Message    string
}

// OrderStatusMachine classifies status changes. It never rejects a valid
// status: staff may move an order anywhere, and moving backwards is reported
// to the customer with softened wording.
//
// Example:
//
//	machine := services.NewOrderStatusMachine("Pizza Mania")
//	prev := order.StatusReady
//	tr, err := machine.Classify(order.TypePickup, &prev, order.StatusConfirmed)
//	// tr.Kind == TransitionRegression, tr.Message starts with "We've updated..."
type OrderStatusMachine struct {
	restaurantName string
}

func NewOrderStatusMachine(restaurantName string) OrderStatusMachine {
	return OrderStatusMachine{restaurantName: restaurantName}
}

// Classify decides the transition from previous (nil while the order is being
// created) to requested for an order of the given type.
func (m OrderStatusMachine) Classify(orderType order.Type, previous *order.Status, requested order.Status) (Transition, error) {
	if err := orderType.Validate(); err != nil {
		return Transition{}, err
	}
	if err := requested.Validate(); err != nil {
		return Transition{}, err
	}

	lifecycle := orderType.Lifecycle()
	regression := previous != nil && lifecycle.IsRegression(*previous, requested)

	tr := Transition{Previous: previous, Requested: requested, Notify: true}
	switch {
	case requested == order.StatusCancelled:
		tr.Kind = TransitionCancel
	case requested.IsFulfilment():
		tr.Kind = TransitionTerminalSettle
		tr.Settles = true
	case previous != nil && *previous == requested:
		tr.Kind = TransitionUnchanged
		tr.Regression = regression
	case regression:
		tr.Kind = TransitionRegression
		tr.Regression = true
	default:
		tr.Kind = TransitionForward
	}

	if requested == order.StatusNew && !tr.Regression {
		tr.Notify = false
	}
	tr.Message = m.notice(orderType, requested, tr.Regression)
	return tr, nil
}

func (m OrderStatusMachine) notice(orderType order.Type, status order.Status, regression bool) string {
	var body string
	switch status {
	case order.StatusDelivered, order.StatusPickedUp, order.StatusServed:
		return fmt.Sprintf("Enjoy your meal! Thank you for ordering from %s.", m.restaurantName)
	case order.StatusCancelled:
		return "We're sorry, but your order has been cancelled. Please contact us if you need help."
	case order.StatusNew:
		body = "Your order is back at the initial stage and awaiting confirmation."
	case order.StatusConfirmed:
		body = "Your order has been confirmed and is in the queue."
	case order.StatusPreparing:
		body = "The kitchen has started preparing your order! It will be fresh and hot soon."
	case order.StatusReady:
		if orderType == order.TypePickup {
			body = "Your order is ready for pickup! We're waiting for you."
		} else {
			body = "Your order is ready and waiting for the driver."
		}
	case order.StatusOutForDelivery:
		body = "Your order is out for delivery and heading your way!"
	default:
		body = "Your order status is now: " + status.Label()
	}

	if regression {
		return regressionPrefix + body
	}
	return body
}
