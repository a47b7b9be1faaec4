package query_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/query"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	"github.com/pageforge/pageforge-backend/internal/testinfra"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
	"github.com/stretchr/testify/require"
)

var uowFactory *dbs.UOWFactory

func TestMain(m *testing.M) {
	uowFactory = dbs.NewUoWFactory(testinfra.Pool)

	code := m.Run()

	if _, err := testinfra.Pool.Exec(context.Background(), "DELETE FROM pageforge.sites WHERE subdomain LIKE 'query-%'"); err != nil {
		log.Printf("cleanup sites: %v", err)
	}
	testinfra.Pool.Close()
	os.Exit(code)
}

func seedSite(t *testing.T, subdomain string) {
	t.Helper()
	now := time.Now()
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)

	inserted, err := repo.NewSiteRepo(tx).InsertSite(context.Background(), db.Site{
		Subdomain:   subdomain,
		Email:       "owner@example.com",
		SiteName:    "Query Site",
		Catchphrase: "catchy",
		Description: "a description",
		ContactInfo: "contact@example.com",
		ColorTheme:  "colorful",
		HTML:        "<!DOCTYPE html><html></html>",
		DraftID:     "draft-" + subdomain,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, uow.Commit())
}

func TestGetSite_ReturnsFormDataAndHTML(t *testing.T) {
	seedSite(t, "query-get-ok")

	resp, err := query.NewGetSite(uowFactory).Query(context.Background(), " Query-GET-OK ")
	require.NoError(t, err)
	require.Equal(t, "query-get-ok", resp.Subdomain)
	require.Equal(t, "Query Site", resp.FormData.SiteName)
	require.Equal(t, "colorful", resp.FormData.ColorTheme)
	require.Equal(t, "<!DOCTYPE html><html></html>", resp.HTML)
}

func TestGetSite_EmptySubdomain(t *testing.T) {
	_, err := query.NewGetSite(uowFactory).Query(context.Background(), "   ")

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestGetSite_UnknownSubdomain(t *testing.T) {
	_, err := query.NewGetSite(uowFactory).Query(context.Background(), "query-get-missing")

	var notFoundErr errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
