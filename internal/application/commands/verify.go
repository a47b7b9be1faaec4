package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
	"github.com/pageforge/pageforge-backend/pkg/env"
)

type EditTokenConfig struct {
	Secret       []byte
	LifetimeMins int
}

func NewEditTokenConfig() *EditTokenConfig {
	lifetime, err := strconv.Atoi(env.GetEnv("EDIT_TOKEN_TTL_MINS", "30"))
	if err != nil {
		lifetime = 30
	}
	return &EditTokenConfig{
		Secret:       []byte(env.MustGetEnv("EDIT_TOKEN_SECRET")),
		LifetimeMins: lifetime,
	}
}

// VerifyAccess opens an edit session. The credential check itself belongs to
// the remote authority; this command only rejects malformed requests up
// front and mints a short-lived edit token on success.
type VerifyAccess struct {
	uowFactory *dbs.UOWFactory
	authority  interfaces.CredentialAuthority
	cfg        *EditTokenConfig
}

func NewVerifyAccess(uowFactory *dbs.UOWFactory, authority interfaces.CredentialAuthority, cfg *EditTokenConfig) *VerifyAccess {
	return &VerifyAccess{
		uowFactory: uowFactory,
		authority:  authority,
		cfg:        cfg,
	}
}

func (c *VerifyAccess) Execute(ctx context.Context, req dto.VerifyRequest) (*dto.VerifySiteResponse, error) {
	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if subdomain == "" {
		return nil, errs.ValidationError{Msg: "subdomain must not be empty"}
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, errs.ValidationError{Msg: "password must not be empty"}
	}

	if err := c.authority.Verify(ctx, subdomain, req.Password); err != nil {
		return nil, err
	}

	site, err := c.getSite(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	token, err := c.mintEditToken(subdomain)
	if err != nil {
		return nil, err
	}

	return &dto.VerifySiteResponse{
		Subdomain: site.Subdomain,
		Email:     site.Email,
		FormData:  db.MapSiteToFormData(site),
		HTML:      site.HTML,
		EditToken: token,
	}, nil
}

// Authenticate guards refinement. A valid edit token for the subdomain is
// accepted without a round trip to the authority; otherwise the password is
// delegated as usual.
func (c *VerifyAccess) Authenticate(ctx context.Context, subdomain, password, editToken string) error {
	if subdomain == "" {
		return errs.ValidationError{Msg: "subdomain must not be empty"}
	}

	if editToken != "" {
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(editToken, claims, func(t *jwt.Token) (interface{}, error) {
			return c.cfg.Secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			return errs.RemoteAuthError{Status: http.StatusUnauthorized, Message: fmt.Sprintf("invalid edit token, %v", err)}
		}
		if claims.Subject != subdomain {
			return errs.RemoteAuthError{Status: http.StatusUnauthorized, Message: "edit token is for a different site"}
		}
		return nil
	}

	if strings.TrimSpace(password) == "" {
		return errs.ValidationError{Msg: "password must not be empty"}
	}
	return c.authority.Verify(ctx, subdomain, password)
}

func (c *VerifyAccess) getSite(ctx context.Context, subdomain string) (site *db.Site, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	return repo.NewSiteRepo(tx).GetSiteBySubdomain(ctx, subdomain)
}

func (c *VerifyAccess) mintEditToken(subdomain string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subdomain,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(c.cfg.LifetimeMins) * time.Minute)),
	})
	signed, err := token.SignedString(c.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("error signing edit token, %v", err)
	}
	return signed, nil
}
