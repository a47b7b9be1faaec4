package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pageforge/pageforge-backend/internal/application/consts"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

type StripeProvider struct {
	cfg *PaymentConfig
}

var _ interfaces.PaymentProvider = (*StripeProvider)(nil)
var _ interfaces.WebhookParser = (*StripeProvider)(nil)

func NewStripeProvider(cfg *PaymentConfig) *StripeProvider {
	stripe.Key = cfg.apiKey
	stripe.SetHTTPClient(&http.Client{Timeout: 10 * time.Second})
	return &StripeProvider{
		cfg: cfg,
	}
}

// CreateCheckoutSession opens a hosted checkout with a one-time setup charge
// and a recurring monthly charge, carrying the publish metadata.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, spec dto.CheckoutSpec) (string, error) {
	params := p.buildSessionParams(spec)
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", errs.RetryableError{Err: fmt.Errorf("error creating checkout session, %v", err)}
	}

	return s.URL, nil
}

func (p *StripeProvider) buildSessionParams(spec dto.CheckoutSpec) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		SuccessURL:    stripe.String(p.cfg.returnURL + "/complete?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.cfg.returnURL + "/cancelled"),
		CustomerEmail: stripe.String(spec.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.cfg.setupPriceID),
				Quantity: stripe.Int64(1),
			},
			{
				Price:    stripe.String(p.cfg.monthlyPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
	}
	for key, value := range spec.Metadata {
		params.AddMetadata(key, value)
	}
	return params
}

// ParseWebhookEvent verifies the delivery signature and extracts a publish
// order from a completed checkout. Event types this service does not act on
// yield a nil order.
func (p *StripeProvider) ParseWebhookEvent(payload []byte, sigHeader string) (*dto.PublishOrder, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.cfg.webhookKey)
	if err != nil {
		return nil, errs.ValidationError{Msg: fmt.Sprintf("invalid webhook signature, %v", err)}
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var checkoutSession stripe.CheckoutSession
	if err = json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
		return nil, errs.ValidationError{Msg: fmt.Sprintf("error parsing checkout session, %v", err)}
	}

	return OrderFromMetadata(event.ID, checkoutSession.Metadata), nil
}

// OrderFromMetadata reconstructs the publish order from session metadata
// alone; the webhook runs in a different request context and must not depend
// on anything else.
func OrderFromMetadata(eventID string, metadata map[string]string) *dto.PublishOrder {
	return &dto.PublishOrder{
		EventID:     eventID,
		DraftID:     metadata[consts.MetaDraftID],
		Subdomain:   metadata[consts.MetaSubdomain],
		SiteName:    metadata[consts.MetaSiteName],
		Email:       metadata[consts.MetaEmail],
		ColorTheme:  metadata[consts.MetaColorTheme],
		Catchphrase: metadata[consts.MetaCatchphrase],
		ContactInfo: metadata[consts.MetaContactInfo],
		Description: metadata[consts.MetaDescription],
	}
}
