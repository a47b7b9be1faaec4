package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
)

// PublishSite is the PaymentPending -> Published transition, driven by
// payment webhook deliveries. Exactly-once effect under at-least-once
// delivery: the subdomain primary key is the idempotency key.
type PublishSite struct {
	uowFactory *dbs.UOWFactory
	drafts     interfaces.DraftStore
}

func NewPublishSite(uowFactory *dbs.UOWFactory, drafts interfaces.DraftStore) *PublishSite {
	return &PublishSite{
		uowFactory: uowFactory,
		drafts:     drafts,
	}
}

func (c *PublishSite) Execute(ctx context.Context, order dto.PublishOrder) (err error) {
	if order.DraftID == "" || order.Subdomain == "" {
		return errs.ValidationError{Msg: "webhook metadata is missing draftId or subdomain"}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	siteRepo := repo.NewSiteRepo(tx)

	// Replay of an already-published subdomain is a no-op success even when
	// the draft has since been evicted.
	existing, err := siteRepo.GetSiteBySubdomain(ctx, order.Subdomain)
	if err != nil {
		var notFound errs.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		err = nil
	}
	if existing != nil {
		slog.Info("webhook replay for published site, ignoring", "subdomain", order.Subdomain, "eventID", order.EventID)
		return nil
	}

	html, err := c.drafts.GetDraft(ctx, order.DraftID)
	if err != nil {
		var notFound errs.NotFoundError
		if errors.As(err, &notFound) {
			// recoverable: surface non-success so the provider redelivers
			return errs.RetryableError{Err: fmt.Errorf("draft %v not available at publish time", order.DraftID)}
		}
		return err
	}

	inserted, err := siteRepo.InsertSite(ctx, db.MapOrderToSite(order, html))
	if err != nil {
		return err
	}
	if !inserted {
		// lost the race to a concurrent delivery; first writer wins
		slog.Info("site already published concurrently", "subdomain", order.Subdomain, "eventID", order.EventID)
		return nil
	}

	slog.Info("site published", "subdomain", order.Subdomain, "draftID", order.DraftID, "eventID", order.EventID)
	return nil
}
