// Package smtp sends customer emails over SMTP.
package smtp

import (
	"context"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

const currencySymbol = "€"

// Sender delivers composed messages. *mail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*mail.Message) error
}

type Settings struct {
	FromAddress    string
	RestaurantName string
	// AppURL is the public storefront base URL used for tracking links.
	AppURL string
}

// Notifier implements ports.Notifier. Orders without a customer email are
// skipped silently.
type Notifier struct {
	sender   Sender
	settings Settings
	logger   *zap.Logger
}

func NewNotifier(sender Sender, settings Settings, logger *zap.Logger) *Notifier {
	settings.AppURL = strings.TrimRight(settings.AppURL, "/")
	return &Notifier{sender: sender, settings: settings, logger: logger}
}

// NewDialer builds an SMTP dialer; port 465 uses implicit TLS, other ports STARTTLS.
func NewDialer(host string, port int, username, password string) *mail.Dialer {
	d := mail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return d
}

func (n *Notifier) OrderPlaced(ctx context.Context, o *order.Order) error {
	to := o.Customer().Email
	if to == nil {
		return nil
	}

	subject := fmt.Sprintf("New Order Received #%s - %s", o.TrackingToken(), n.settings.RestaurantName)
	return n.send(ctx, *to, subject, n.orderPlacedBody(o))
}

func (n *Notifier) OrderStatusChanged(ctx context.Context, o *order.Order, message string) error {
	to := o.Customer().Email
	if to == nil {
		return nil
	}

	subject := fmt.Sprintf("Order Update #%s: %s", o.TrackingToken(), o.Status().Label())
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", greetingName(o))
	fmt.Fprintf(&b, "%s\n\n", message)
	fmt.Fprintf(&b, "View order details: %s\n", n.trackingURL(o))
	return n.send(ctx, *to, subject, b.String())
}

func (n *Notifier) Welcome(ctx context.Context, email string) error {
	subject := fmt.Sprintf("Welcome to %s! 🍕 Here is your first treat", n.settings.RestaurantName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi there,\n\n")
	fmt.Fprintf(&b, "You're successfully subscribed to the %s newsletter!\n\n", n.settings.RestaurantName)
	fmt.Fprintf(&b, "Use code WELCOME10 on your next order for 10%% off!\n\n")
	fmt.Fprintf(&b, "Order now: %s/menu\n", n.settings.AppURL)
	return n.send(ctx, email, subject, b.String())
}

func (n *Notifier) orderPlacedBody(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", greetingName(o))
	fmt.Fprintf(&b, "Thank you for choosing %s! We have received your order #%s and will start preparing it soon.\n\n",
		n.settings.RestaurantName, o.TrackingToken())

	f := o.Fulfilment()
	fmt.Fprintf(&b, "Order Type: %s\n", f.Type.Label())
	if f.Type == order.TypeDelivery && f.DeliveryAddress != nil {
		fmt.Fprintf(&b, "Delivery Address: %s\n", *f.DeliveryAddress)
	}
	if f.ScheduledTime != nil {
		fmt.Fprintf(&b, "Scheduled For: %s\n", f.ScheduledTime.Format("Monday 15:04"))
	} else {
		b.WriteString("Requested time: ASAP\n")
	}
	b.WriteString("\n")

	for _, l := range o.Lines() {
		fmt.Fprintf(&b, "%dx %s  %s\n", l.Quantity, l.ItemName, formatPrice(l.Total()))
	}
	if o.DeliveryFee().IsPositive() {
		fmt.Fprintf(&b, "Delivery Fee  %s\n", formatPrice(o.DeliveryFee()))
	}
	fmt.Fprintf(&b, "Total  %s\n\n", formatPrice(o.Total()))
	fmt.Fprintf(&b, "Track your order: %s\n", n.trackingURL(o))
	return b.String()
}

func (n *Notifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", n.settings.FromAddress, n.settings.RestaurantName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send %q: %w", subject, err)
	}
	n.logger.Debug("email sent", zap.String("subject", subject))
	return nil
}

func (n *Notifier) trackingURL(o *order.Order) string {
	return fmt.Sprintf("%s/order/%s", n.settings.AppURL, o.TrackingToken())
}

func greetingName(o *order.Order) string {
	if name := strings.TrimSpace(o.Customer().Name); name != "" {
		return name
	}
	return "there"
}

func formatPrice(amount decimal.Decimal) string {
	return currencySymbol + amount.StringFixed(2)
}
