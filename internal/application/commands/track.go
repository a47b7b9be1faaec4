package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageforge/pageforge-backend/internal/application/consts"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
	"github.com/pageforge/pageforge-backend/internal/infra/db/repo"
	dbs "github.com/pageforge/pageforge-backend/pkg/db"
)

// TrackEvent records marketing events best-effort. A failed write is logged
// and swallowed; tracking never surfaces as a user-facing error.
type TrackEvent struct {
	uowFactory *dbs.UOWFactory
}

func NewTrackEvent(uowFactory *dbs.UOWFactory) *TrackEvent {
	return &TrackEvent{
		uowFactory: uowFactory,
	}
}

func (c *TrackEvent) Execute(ctx context.Context, req dto.TrackEventRequest) error {
	if !consts.ValidAdEventType(req.EventType) {
		return errs.ValidationError{Msg: fmt.Sprintf("unknown event type %q", req.EventType)}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		slog.Error("ad event write skipped", "eventType", req.EventType, "err", err)
		return nil
	}

	event := db.AdEvent{
		EventType:   req.EventType,
		SessionID:   req.SessionID,
		PageURL:     req.PageURL,
		Referrer:    req.Referrer,
		UserAgent:   req.UserAgent,
		UtmSource:   req.UtmSource,
		UtmMedium:   req.UtmMedium,
		UtmCampaign: req.UtmCampaign,
		UtmContent:  req.UtmContent,
		UtmTerm:     req.UtmTerm,
		CreatedAt:   time.Now(),
	}
	if err = repo.NewAdEventRepo(tx).InsertEvent(ctx, event); err != nil {
		slog.Error("ad event write failed", "eventType", req.EventType, "err", err)
		_ = uow.Rollback()
		return nil
	}
	if err = uow.Commit(); err != nil {
		slog.Error("ad event commit failed", "eventType", req.EventType, "err", err)
	}

	return nil
}
