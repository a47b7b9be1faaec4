package application

import (
	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/query"
)

type Handlers struct {
	GenerateSite   *commands.GenerateSite
	CreateCheckout *commands.CreateCheckout
	PublishSite    *commands.PublishSite
	RefineSite     *commands.RefineSite
	VerifyAccess   *commands.VerifyAccess
	TrackEvent     *commands.TrackEvent
	Migrate        *commands.Migrate
	GetSite        *query.GetSite
}
