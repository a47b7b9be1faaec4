package db

import "time"

type Site struct {
	Subdomain    string    `db:"subdomain"`
	Email        string    `db:"email"`
	SiteName     string    `db:"site_name"`
	Catchphrase  string    `db:"catchphrase"`
	Description  string    `db:"description"`
	ContactInfo  string    `db:"contact_info"`
	ColorTheme   string    `db:"color_theme"`
	HTML         string    `db:"html"`
	PasswordHash string    `db:"password_hash"`
	DraftID      string    `db:"draft_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type AdEvent struct {
	ID          uint64    `db:"id"`
	EventType   string    `db:"event_type"`
	SessionID   string    `db:"session_id"`
	PageURL     string    `db:"page_url"`
	Referrer    string    `db:"referrer"`
	UserAgent   string    `db:"user_agent"`
	UtmSource   string    `db:"utm_source"`
	UtmMedium   string    `db:"utm_medium"`
	UtmCampaign string    `db:"utm_campaign"`
	UtmContent  string    `db:"utm_content"`
	UtmTerm     string    `db:"utm_term"`
	CreatedAt   time.Time `db:"created_at"`
}
