package db

import (
	"time"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
)

func MapOrderToSite(order dto.PublishOrder, html string) Site {
	now := time.Now()
	return Site{
		Subdomain:   order.Subdomain,
		Email:       order.Email,
		SiteName:    order.SiteName,
		Catchphrase: order.Catchphrase,
		Description: order.Description,
		ContactInfo: order.ContactInfo,
		ColorTheme:  order.ColorTheme,
		HTML:        html,
		DraftID:     order.DraftID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func MapSiteToFormData(site *Site) dto.SiteFormData {
	return dto.SiteFormData{
		SiteName:    site.SiteName,
		Catchphrase: site.Catchphrase,
		Description: site.Description,
		ContactInfo: site.ContactInfo,
		Email:       site.Email,
		Subdomain:   site.Subdomain,
		ColorTheme:  site.ColorTheme,
	}
}
