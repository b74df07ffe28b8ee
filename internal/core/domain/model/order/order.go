package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	ErrOrderHasNoLines = errs.NewValueIsRequiredError("items")
)

// Customer is who placed the order.
type Customer struct {
	Name  string
	Phone string
	Email *string
}

// Fulfilment describes how and when the order is handed over.
type Fulfilment struct {
	Type                Type
	DeliveryAddress     *string
	TableID             *string
	SpecialInstructions *string
	ScheduledTime       *time.Time
}

// Order is the aggregate root of a customer order.
//
// Invariants:
//   - total = subtotal + deliveryFee
//   - deliveryFee is zero unless the order type is delivery
//   - at least one line, every line quantity ≥ 1
//   - a delivery order has a non-blank address
type Order struct {
	id            kernel.UUID
	trackingToken TrackingToken
	customer      Customer
	fulfilment    Fulfilment

	status           Status
	estimatedMinutes int

	lines       []Line
	subtotal    decimal.Decimal
	deliveryFee decimal.Decimal
	total       decimal.Decimal

	paymentMethod    PaymentMethod
	paymentStatus    PaymentStatus
	paymentSessionID *string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder validates a placement and computes its totals. flatDeliveryFee is
// charged only for delivery orders. The order starts as new with a pending payment.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), token,
//	    order.Customer{Name: "Ada", Phone: "+100"},
//	    order.Fulfilment{Type: order.TypeDelivery, DeliveryAddress: &addr},
//	    order.PaymentCounter, lines, decimal.RequireFromString("3.99"), time.Now())
func NewOrder(
	id kernel.UUID,
	token TrackingToken,
	customer Customer,
	fulfilment Fulfilment,
	method PaymentMethod,
	lines []Line,
	flatDeliveryFee decimal.Decimal,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusNew,
		paymentStatus: PaymentPending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingToken(token),
		o.setCustomer(customer),
		o.setFulfilment(fulfilment),
		o.setPaymentMethod(method),
		o.setLines(lines),
		validateFlatDeliveryFee(flatDeliveryFee),
	); err != nil {
		return nil, err
	}

	o.estimatedMinutes = o.fulfilment.Type.EstimatedMinutes()
	o.deliveryFee = decimal.Zero
	if o.fulfilment.Type == TypeDelivery {
		o.deliveryFee = kernel.RoundToCurrency(flatDeliveryFee)
	}
	o.subtotal = sumLines(o.lines)
	o.total = o.subtotal.Add(o.deliveryFee)
	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID               kernel.UUID
	TrackingToken    TrackingToken
	Customer         Customer
	Fulfilment       Fulfilment
	Status           Status
	EstimatedMinutes int
	Lines            []Line
	Subtotal         decimal.Decimal
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	PaymentSessionID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an order from storage. Stored totals are trusted; lines
// may be absent when the caller did not load them.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.TrackingToken.Validate(),
		s.Fulfilment.Type.Validate(),
		s.Status.Validate(),
		s.PaymentMethod.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:               s.ID,
		trackingToken:    s.TrackingToken,
		customer:         s.Customer,
		fulfilment:       s.Fulfilment,
		status:           s.Status,
		estimatedMinutes: s.EstimatedMinutes,
		lines:            append([]Line(nil), s.Lines...),
		subtotal:         s.Subtotal,
		deliveryFee:      s.DeliveryFee,
		total:            s.Total,
		paymentMethod:    s.PaymentMethod,
		paymentStatus:    s.PaymentStatus,
		paymentSessionID: s.PaymentSessionID,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) TrackingToken() TrackingToken { return o.trackingToken }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Fulfilment() Fulfilment { return o.fulfilment }
func (o *Order) Type() Type { return o.fulfilment.Type }
func (o *Order) Status() Status { return o.status }
func (o *Order) EstimatedMinutes() int { return o.estimatedMinutes }
func (o *Order) Subtotal() decimal.Decimal { return o.subtotal }
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PaymentSessionID() *string { return o.paymentSessionID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) IsPaid() bool { return o.paymentStatus == PaymentPaid }
func (o *Order) RequiresOnlinePayment() bool { return o.paymentMethod == PaymentOnline }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// ApplyStatus moves the order to next. Any valid status is accepted; reaching a
// fulfilment status also marks the payment as paid.
func (o *Order) ApplyStatus(next Status, at time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	o.status = next
	if next.IsFulfilment() {
		o.paymentStatus = PaymentPaid
	}
	o.updatedAt = at.UTC()
	return nil
}

// MarkPaid settles the payment. It reports whether the order was already paid.
// The status is left untouched.
func (o *Order) MarkPaid(at time.Time) (alreadyPaid bool) {
	alreadyPaid = o.paymentStatus == PaymentPaid
	o.paymentStatus = PaymentPaid
	o.updatedAt = at.UTC()
	return alreadyPaid
}

// MarkPaymentFailed gives up on a pending payment. Settled or already failed
// payments are left as they are and false is returned.
func (o *Order) MarkPaymentFailed(at time.Time) bool {
	if o.paymentStatus != PaymentPending {
		return false
	}
	o.paymentStatus = PaymentFailed
	o.updatedAt = at.UTC()
	return true
}

// AttachPaymentSession records the checkout session opened at the payment processor.
func (o *Order) AttachPaymentSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errs.NewValueIsRequiredError("payment_session_id")
	}
	o.paymentSessionID = &sessionID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingToken(token TrackingToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.trackingToken = token
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	var errList []error
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer_name"))
	}
	if c.Phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer_phone"))
	}
	c.Email = trimmedOrNil(c.Email)
	if c.Email != nil && !strings.Contains(*c.Email, "@") {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("customer_email",
			fmt.Errorf("%q is not an email address", *c.Email)))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	o.customer = c
	return nil
}

func (o *Order) setFulfilment(f Fulfilment) error {
	if err := f.Type.Validate(); err != nil {
		return err
	}
	f.DeliveryAddress = trimmedOrNil(f.DeliveryAddress)
	if f.Type.RequiresAddress() && f.DeliveryAddress == nil {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	f.TableID = trimmedOrNil(f.TableID)
	f.SpecialInstructions = trimmedOrNil(f.SpecialInstructions)
	if f.ScheduledTime != nil {
		utc := f.ScheduledTime.UTC()
		f.ScheduledTime = &utc
	}
	o.fulfilment = f
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.paymentMethod = m
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	var errList []error
	copied := make([]Line, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		if l.ID.Validate() != nil {
			l.ID = kernel.NewUUID()
		}
		l.UnitPrice = kernel.RoundToCurrency(l.UnitPrice)
		copied[i] = l
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	o.lines = copied
	return nil
}

func validateFlatDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery_fee", fmt.Errorf("%s is negative", fee.String()))
	}
	return nil
}

func sumLines(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	return subtotal
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
