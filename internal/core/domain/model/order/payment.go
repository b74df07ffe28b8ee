package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentOnline  PaymentMethod = "online"
	PaymentCounter PaymentMethod = "counter"
)

// ParsePaymentMethod accepts an empty value as counter payment.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentCounter, nil
	}
	m := PaymentMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentOnline, PaymentCounter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment_method", fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus tracks settlement independently of the order status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}
