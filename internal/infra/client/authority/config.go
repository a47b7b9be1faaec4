package authority

import "github.com/pageforge/pageforge-backend/pkg/env"

type AuthorityConfig struct {
	baseURL string
}

func NewAuthorityConfig() *AuthorityConfig {
	return &AuthorityConfig{
		baseURL: env.MustGetEnv("AUTH_AUTHORITY_URL"),
	}
}
