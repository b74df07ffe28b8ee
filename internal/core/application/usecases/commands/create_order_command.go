package commands

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a customer's checkout: who, how the order is handed
// over, how it is paid and the priced cart lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    order.Customer{Name: "Ada", Phone: "+353..."},
//	    order.Fulfilment{Type: order.TypePickup},
//	    "online",
//	    lines,
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer      order.Customer
	fulfilment    order.Fulfilment
	paymentMethod order.PaymentMethod
	lines         []order.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. An empty payment method
// means payment at the counter.
func NewCreateOrderCommand(
	customer order.Customer,
	fulfilment order.Fulfilment,
	paymentMethod string,
	lines []order.Line,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setFulfilment(fulfilment),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Fulfilment() order.Fulfilment {
	return c.fulfilment
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) Lines() []order.Line {
	return append([]order.Line(nil), c.lines...)
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	var errList []error
	if strings.TrimSpace(customer.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer_name"))
	}
	if strings.TrimSpace(customer.Phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer_phone"))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setFulfilment(fulfilment order.Fulfilment) error {
	if err := fulfilment.Type.Validate(); err != nil {
		return err
	}
	if fulfilment.Type.RequiresAddress() &&
		(fulfilment.DeliveryAddress == nil || strings.TrimSpace(*fulfilment.DeliveryAddress) == "") {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	c.fulfilment = fulfilment
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	m, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var errList []error
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	c.lines = append([]order.Line(nil), lines...)
	return nil
}
