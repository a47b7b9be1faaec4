package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/infra/db"
)

type SiteRepo struct {
	tx pgx.Tx
}

func NewSiteRepo(tx pgx.Tx) *SiteRepo {
	return &SiteRepo{tx: tx}
}

// InsertSite creates the site row exactly once per subdomain. A conflicting
// insert reports inserted=false so webhook replays stay a no-op.
func (r *SiteRepo) InsertSite(ctx context.Context, site db.Site) (bool, error) {
	tag, err := r.tx.Exec(ctx, `INSERT INTO pageforge.sites(subdomain, email, site_name, catchphrase, description, contact_info, color_theme, html, draft_id, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) ON CONFLICT (subdomain) DO NOTHING`,
		site.Subdomain, site.Email, site.SiteName, site.Catchphrase, site.Description,
		site.ContactInfo, site.ColorTheme, site.HTML, site.DraftID, site.CreatedAt, site.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error inserting site, %v", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *SiteRepo) GetSiteBySubdomain(ctx context.Context, subdomain string) (*db.Site, error) {
	var site db.Site
	query := `SELECT subdomain, email, site_name, catchphrase, description, contact_info, color_theme, html, COALESCE(password_hash, ''), draft_id, created_at, updated_at
			FROM pageforge.sites WHERE subdomain = $1`
	err := r.tx.QueryRow(ctx, query, subdomain).Scan(&site.Subdomain, &site.Email, &site.SiteName,
		&site.Catchphrase, &site.Description, &site.ContactInfo, &site.ColorTheme, &site.HTML,
		&site.PasswordHash, &site.DraftID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFoundError{Msg: fmt.Sprintf("site %v", subdomain)}
		}
		return nil, fmt.Errorf("error getting site, %v", err)
	}

	return &site, nil
}

// UpdateSiteHTML replaces the published document after a successful
// refinement.
func (r *SiteRepo) UpdateSiteHTML(ctx context.Context, subdomain, html string) error {
	tag, err := r.tx.Exec(ctx, "UPDATE pageforge.sites SET html = $2, updated_at = now() WHERE subdomain = $1",
		subdomain, html)
	if err != nil {
		return fmt.Errorf("error updating site html, %v", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Msg: fmt.Sprintf("site %v", subdomain)}
	}

	return nil
}

type AdEventRepo struct {
	tx pgx.Tx
}

func NewAdEventRepo(tx pgx.Tx) *AdEventRepo {
	return &AdEventRepo{tx: tx}
}

func (r *AdEventRepo) InsertEvent(ctx context.Context, event db.AdEvent) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO pageforge.ad_events(event_type, session_id, page_url, referrer, user_agent, utm_source, utm_medium, utm_campaign, utm_content, utm_term, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		event.EventType, event.SessionID, event.PageURL, event.Referrer, event.UserAgent,
		event.UtmSource, event.UtmMedium, event.UtmCampaign, event.UtmContent, event.UtmTerm, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting ad event, %v", err)
	}

	return nil
}
