package commands

import (
	"context"
	"log/slog"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/internal/application/prompt"
)

// GenerateSite drafts the one-page document from a validated, moderated
// submission. The result goes back to the client for preview and is only
// persisted at checkout.
type GenerateSite struct {
	aiClient interfaces.ModelClient
	moderate *Moderate
}

func NewGenerateSite(aiClient interfaces.ModelClient, moderate *Moderate) *GenerateSite {
	return &GenerateSite{
		aiClient: aiClient,
		moderate: moderate,
	}
}

func (c *GenerateSite) Execute(ctx context.Context, req dto.GenerateSiteRequest) (string, error) {
	form, err := normalizeFormData(req.FormData)
	if err != nil {
		return "", err
	}

	result, err := c.moderate.Execute(ctx, form)
	if err != nil {
		return "", err
	}
	if !result.IsSafe {
		slog.Info("submission rejected by moderation", "subdomain", form.Subdomain, "reason", result.Reason)
		return "", errs.ModerationError{Reason: result.Reason}
	}

	raw, err := c.aiClient.Complete(ctx, prompt.BuildGeneratorPrompt(form))
	if err != nil {
		return "", err
	}

	html, err := prompt.ParseDocumentResponse(raw)
	if err != nil {
		slog.Error("generated document violated contract", "subdomain", form.Subdomain, "err", err)
		return "", err
	}

	return html, nil
}
