package commands

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pageforge/pageforge-backend/internal/application/consts"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
)

// CreateCheckout turns a validated, moderated submission plus its generated
// document into a payment session. The draft is persisted before the session
// is created, so the webhook handler is guaranteed to find it.
type CreateCheckout struct {
	drafts   interfaces.DraftStore
	payments interfaces.PaymentProvider
	moderate *Moderate
}

func NewCreateCheckout(drafts interfaces.DraftStore, payments interfaces.PaymentProvider, moderate *Moderate) *CreateCheckout {
	return &CreateCheckout{
		drafts:   drafts,
		payments: payments,
		moderate: moderate,
	}
}

func (c *CreateCheckout) Execute(ctx context.Context, req dto.CreateCheckoutRequest) (string, error) {
	form, err := normalizeFormData(req.FormData)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.HTML) == "" {
		return "", errs.ValidationError{Msg: "html must not be empty"}
	}

	// checkout is hit directly by clients, so the gate runs here too; an
	// unsafe verdict means no draft ever exists
	result, err := c.moderate.Execute(ctx, form)
	if err != nil {
		return "", err
	}
	if !result.IsSafe {
		slog.Info("checkout rejected by moderation", "subdomain", form.Subdomain, "reason", result.Reason)
		return "", errs.ModerationError{Reason: result.Reason}
	}

	draftID := uuid.NewString()
	if err = c.drafts.PutDraft(ctx, draftID, req.HTML); err != nil {
		return "", err
	}
	slog.Info("draft stored", "draftID", draftID, "subdomain", form.Subdomain)

	url, err := c.payments.CreateCheckoutSession(ctx, dto.CheckoutSpec{
		CustomerEmail: form.Email,
		Metadata:      buildSessionMetadata(draftID, form, req.Attribution),
	})
	if err != nil {
		return "", err
	}
	slog.Info("checkout session created", "draftID", draftID, "subdomain", form.Subdomain)

	return url, nil
}

// buildSessionMetadata packs everything the webhook needs to reconstruct the
// site row without the original request.
func buildSessionMetadata(draftID string, form dto.SiteFormData, attribution dto.Attribution) map[string]string {
	metadata := map[string]string{
		consts.MetaDraftID:     draftID,
		consts.MetaSubdomain:   form.Subdomain,
		consts.MetaSiteName:    form.SiteName,
		consts.MetaEmail:       form.Email,
		consts.MetaColorTheme:  form.ColorTheme,
		consts.MetaCatchphrase: form.Catchphrase,
		consts.MetaContactInfo: form.ContactInfo,
		consts.MetaDescription: truncateOnRuneBoundary(form.Description, consts.MetaDescriptionLimit),
	}

	optional := map[string]string{
		consts.MetaUtmSource:   attribution.UtmSource,
		consts.MetaUtmMedium:   attribution.UtmMedium,
		consts.MetaUtmCampaign: attribution.UtmCampaign,
		consts.MetaUtmContent:  attribution.UtmContent,
		consts.MetaUtmTerm:     attribution.UtmTerm,
		consts.MetaSessionID:   attribution.SessionID,
	}
	for key, value := range optional {
		if value != "" {
			metadata[key] = value
		}
	}

	return metadata
}

// truncateOnRuneBoundary cuts s to at most limit bytes without splitting a
// multi-byte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
