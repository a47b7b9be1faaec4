package interfaces

import (
	"context"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
)

// ModelClient is the AI model boundary. Moderate constrains the model to a
// JSON object response, Complete returns free-form text.
type ModelClient interface {
	Moderate(ctx context.Context, prompt string) (string, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// DraftStore holds generated HTML between checkout creation and the payment
// webhook. Drafts are write-once and never mutated.
type DraftStore interface {
	PutDraft(ctx context.Context, draftID string, html string) error
	GetDraft(ctx context.Context, draftID string) (string, error)
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, spec dto.CheckoutSpec) (string, error)
}

// WebhookParser verifies a provider webhook delivery and extracts a publish
// order. A nil order with nil error means the event type is not acted on.
type WebhookParser interface {
	ParseWebhookEvent(payload []byte, sigHeader string) (*dto.PublishOrder, error)
}

// CredentialAuthority owns the credential store. Verify returns nil when the
// subdomain/password pair is accepted.
type CredentialAuthority interface {
	Verify(ctx context.Context, subdomain, password string) error
}
