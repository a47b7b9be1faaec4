// Package authority talks to the remote service that owns edit credentials.
// This service never compares passwords itself.
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
)

type AuthorityClient struct {
	cfg    *AuthorityConfig
	client *http.Client
}

var _ interfaces.CredentialAuthority = (*AuthorityClient)(nil)

func NewAuthorityClient(config *AuthorityConfig) *AuthorityClient {
	return &AuthorityClient{
		config,
		&http.Client{Timeout: 4 * time.Second},
	}
}

// Verify delegates the credential check. A non-200 answer is propagated with
// the authority's status and message verbatim.
func (c *AuthorityClient) Verify(ctx context.Context, subdomain, password string) error {
	body, err := json.Marshal(dto.VerifyRequest{Subdomain: subdomain, Password: password})
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, "POST", c.cfg.baseURL+"/verify", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(request)
	if err != nil {
		return errs.RetryableError{Err: fmt.Errorf("authority unreachable, %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var result dto.ErrorResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Error == "" {
		result.Error = http.StatusText(resp.StatusCode)
	}
	return errs.RemoteAuthError{Status: resp.StatusCode, Message: result.Error}
}
