// Package stripe opens hosted checkout sessions and verifies webhook
// deliveries from the payment processor.
package stripe

import (
	"context"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	MetadataOrderID       = "order_id"
	MetadataTrackingToken = "tracking_token"

	deliveryFeeLabel = "Delivery Fee"
)

// SessionCreator is the checkout sessions endpoint of the API client.
type SessionCreator interface {
	New(params *stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
}

type GatewaySettings struct {
	Currency string
	// AppURL is the storefront base URL the customer returns to.
	AppURL string
}

// Gateway implements ports.PaymentGateway on Stripe Checkout.
type Gateway struct {
	sessions SessionCreator
	settings GatewaySettings
}

// NewClient returns an API client bound to secretKey.
func NewClient(secretKey string) *client.API {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return sc
}

func NewGateway(sessions SessionCreator, settings GatewaySettings) *Gateway {
	settings.AppURL = strings.TrimRight(settings.AppURL, "/")
	if settings.Currency == "" {
		settings.Currency = string(stripeapi.CurrencyEUR)
	}
	return &Gateway{sessions: sessions, settings: settings}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, o *order.Order) (ports.CheckoutSession, error) {
	params := g.checkoutParams(o)
	params.Context = ctx

	session, err := g.sessions.New(params)
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return ports.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// checkoutParams prices every line at its stored unit price in minor units.
// The delivery fee is charged as a fixed shipping rate.
func (g *Gateway) checkoutParams(o *order.Order) *stripeapi.CheckoutSessionParams {
	lines := o.Lines()
	items := make([]*stripeapi.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		items = append(items, &stripeapi.CheckoutSessionLineItemParams{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency: stripeapi.String(g.settings.Currency),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(l.ItemName),
				},
				UnitAmount: stripeapi.Int64(kernel.ToMinorUnits(l.UnitPrice)),
			},
			Quantity: stripeapi.Int64(int64(l.Quantity)),
		})
	}

	token := o.TrackingToken().String()
	params := &stripeapi.CheckoutSessionParams{
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems:          items,
		SuccessURL:         stripeapi.String(fmt.Sprintf("%s/order/%s?payment=success", g.settings.AppURL, token)),
		CancelURL:          stripeapi.String(g.settings.AppURL + "/checkout?payment=cancelled"),
	}

	if fee := o.DeliveryFee(); fee.IsPositive() {
		params.ShippingOptions = []*stripeapi.CheckoutSessionShippingOptionParams{{
			ShippingRateData: &stripeapi.CheckoutSessionShippingOptionShippingRateDataParams{
				Type:        stripeapi.String("fixed_amount"),
				DisplayName: stripeapi.String(deliveryFeeLabel),
				FixedAmount: &stripeapi.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
					Amount:   stripeapi.Int64(kernel.ToMinorUnits(fee)),
					Currency: stripeapi.String(g.settings.Currency),
				},
			},
		}}
	}

	if email := o.Customer().Email; email != nil {
		params.CustomerEmail = stripeapi.String(*email)
	}

	params.AddMetadata(MetadataOrderID, o.ID().String())
	params.AddMetadata(MetadataTrackingToken, token)
	return params
}
