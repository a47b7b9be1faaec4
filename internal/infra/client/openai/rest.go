package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
)

type OpenAIClient struct {
	cfg    OpenAIConfig
	client openai.Client
}

var _ interfaces.ModelClient = (*OpenAIClient)(nil)

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config,
		openai.NewClient(option.WithAPIKey(config.apiKey)),
	}
}

// Moderate runs a low-temperature completion constrained to a JSON object
// response.
func (c *OpenAIClient) Moderate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, 0.1, true)
}

// Complete runs a free-form completion for generation and refinement.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, 0.7, false)
}

// complete retries transport failures a bounded number of times. Content
// contract failures are deterministic and never retried here.
func (c *OpenAIClient) complete(ctx context.Context, prompt string, temperature float64, jsonObject bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.cfg.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: param.Opt[int64]{Value: c.cfg.maxTokens},
		N:                   param.Opt[int64]{Value: 1},
		Temperature:         param.Opt[float64]{Value: temperature},
	}
	if jsonObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying model call", "attempt", attempt, "err", lastErr)
			if err := waitBackoff(ctx, time.Duration(attempt)*time.Second); err != nil {
				return "", err
			}
		}
		chatCompletion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			lastErr = err
			continue
		}
		if len(chatCompletion.Choices) == 0 {
			return "", errs.ContractError{Err: fmt.Errorf("model returned no choices")}
		}
		return chatCompletion.Choices[0].Message.Content, nil
	}

	return "", errs.RetryableError{Err: fmt.Errorf("model call failed after retries, %v", lastErr)}
}

// waitBackoff sleeps for d unless the request context is cancelled first.
func waitBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("model call cancelled, %v", ctx.Err())
	case <-timer.C:
		return nil
	}
}
