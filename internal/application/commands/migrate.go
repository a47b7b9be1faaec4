package commands

import (
	"context"

	"github.com/pageforge/pageforge-backend/internal/infra/db"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
)

type Migrate struct {
	uowFactory *dbs.UOWFactory
}

func NewMigrate(uowFactory *dbs.UOWFactory) *Migrate {
	return &Migrate{
		uowFactory: uowFactory,
	}
}

func (c *Migrate) Execute(ctx context.Context) error {
	return db.Migrate(ctx, c.uowFactory.Pool)
}
