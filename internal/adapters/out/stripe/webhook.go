package stripe

import (
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	jsoniter "github.com/json-iterator/go"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const eventCheckoutSessionCompleted = "checkout.session.completed"

// WebhookVerifier implements ports.PaymentEventVerifier.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Verify checks the Stripe-Signature header against the raw payload. The
// event API version is not enforced; only checkout session fields are read.
func (v *WebhookVerifier) Verify(payload []byte, signature string) (ports.PaymentEvent, error) {
	if signature == "" {
		return ports.PaymentEvent{}, errs.NewValueIsRequiredError("stripe-signature")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ports.PaymentEvent{}, errs.NewValueIsInvalidErrorWithCause("stripe-signature", err)
	}

	result := ports.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if string(event.Type) != eventCheckoutSessionCompleted || event.Data == nil {
		return result, nil
	}

	var session stripeapi.CheckoutSession
	if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(event.Data.Raw, &session); err != nil {
		return ports.PaymentEvent{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	result.CheckoutCompleted = true
	result.SessionID = session.ID
	result.OrderID = session.Metadata[MetadataOrderID]
	return result, nil
}
