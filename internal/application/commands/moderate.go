package commands

import (
	"context"
	"log/slog"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/internal/application/prompt"
)

// Moderate is the safety gate in front of generation. An unsafe verdict
// short-circuits the pipeline before any generation cost is incurred.
type Moderate struct {
	aiClient interfaces.ModelClient
}

func NewModerate(aiClient interfaces.ModelClient) *Moderate {
	return &Moderate{
		aiClient,
	}
}

func (c *Moderate) Execute(ctx context.Context, form dto.SiteFormData) (dto.ModerationResult, error) {
	raw, err := c.aiClient.Moderate(ctx, prompt.BuildModerationPrompt(form))
	if err != nil {
		return dto.ModerationResult{}, err
	}

	result, err := prompt.ParseModerationResponse(raw)
	if err != nil {
		// contract failure, not a safety verdict; logged for prompt drift inspection
		slog.Error("moderation response violated contract", "err", err)
		return dto.ModerationResult{}, err
	}

	return result, nil
}
