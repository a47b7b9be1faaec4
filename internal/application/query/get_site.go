package query

import (
	"context"
	"strings"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
)

type GetSite struct {
	uowFactory *dbs.UOWFactory
}

func NewGetSite(uowFactory *dbs.UOWFactory) *GetSite {
	return &GetSite{
		uowFactory: uowFactory,
	}
}

func (q *GetSite) Query(ctx context.Context, subdomain string) (resp *dto.GetSiteResponse, err error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return nil, errs.ValidationError{Msg: "subdomain must not be empty"}
	}

	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := repo.NewSiteRepo(tx).GetSiteBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	return &dto.GetSiteResponse{
		Subdomain: site.Subdomain,
		FormData:  db.MapSiteToFormData(site),
		HTML:      site.HTML,
	}, nil
}
