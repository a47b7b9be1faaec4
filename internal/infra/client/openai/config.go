package ai

import (
	"strconv"

	"github.com/pageforge/pageforge-backend/pkg/env"
)

type OpenAIConfig struct {
	apiKey     string
	model      string
	maxTokens  int64
	maxRetries int
}

func NewOpenAIConfig() OpenAIConfig {
	maxTokens, err := strconv.Atoi(env.GetEnv("OPENAI_TOKENS", "4000"))
	if err != nil {
		maxTokens = 4000
	}
	maxRetries, err := strconv.Atoi(env.GetEnv("OPENAI_RETRIES", "2"))
	if err != nil {
		maxRetries = 2
	}
	return OpenAIConfig{
		apiKey:     env.MustGetEnv("OPENAI_KEY"),
		model:      env.GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		maxTokens:  int64(maxTokens),
		maxRetries: maxRetries,
	}
}
