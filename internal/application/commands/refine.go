package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/internal/application/prompt"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
)

const maxInstructionLength = 200

// RefineSite applies a bounded natural-language instruction to a published
// document. All or nothing: unless the model returns a document that
// survives recovery, the stored html stays untouched.
type RefineSite struct {
	uowFactory *dbs.UOWFactory
	aiClient   interfaces.ModelClient
	verify     *VerifyAccess
}

func NewRefineSite(uowFactory *dbs.UOWFactory, aiClient interfaces.ModelClient, verify *VerifyAccess) *RefineSite {
	return &RefineSite{
		uowFactory: uowFactory,
		aiClient:   aiClient,
		verify:     verify,
	}
}

func (c *RefineSite) Execute(ctx context.Context, req dto.RefineSiteRequest) (string, error) {
	instruction := strings.TrimSpace(req.Instruction)
	length := utf8.RuneCountInString(instruction)
	if length < 1 || length > maxInstructionLength {
		return "", errs.ValidationError{Msg: fmt.Sprintf("instruction must be 1-%d characters, got %d", maxInstructionLength, length)}
	}

	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if err := c.verify.Authenticate(ctx, subdomain, req.Password, req.EditToken); err != nil {
		return "", err
	}

	site, err := c.loadSite(ctx, subdomain)
	if err != nil {
		return "", err
	}

	raw, err := c.aiClient.Complete(ctx, prompt.BuildRefinerPrompt(site.HTML, instruction))
	if err != nil {
		return "", err
	}

	newHTML, err := prompt.ParseDocumentResponse(raw)
	if err != nil {
		slog.Error("refined document violated contract, keeping current html", "subdomain", subdomain, "err", err)
		return "", err
	}

	if err = c.storeSite(ctx, subdomain, newHTML); err != nil {
		return "", err
	}
	slog.Info("site refined", "subdomain", subdomain, "instructionLength", length)

	return newHTML, nil
}

func (c *RefineSite) loadSite(ctx context.Context, subdomain string) (site *db.Site, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	return repo.NewSiteRepo(tx).GetSiteBySubdomain(ctx, subdomain)
}

func (c *RefineSite) storeSite(ctx context.Context, subdomain, html string) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	return repo.NewSiteRepo(tx).UpdateSiteHTML(ctx, subdomain, html)
}
