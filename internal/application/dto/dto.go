package dto

type SiteFormData struct {
	SiteName    string `json:"siteName"`
	Catchphrase string `json:"catchphrase"`
	Description string `json:"description"`
	ContactInfo string `json:"contactInfo"`
	Email       string `json:"email"`
	Subdomain   string `json:"subdomain"`
	ColorTheme  string `json:"colorTheme"`
}

type ModerationResult struct {
	IsSafe bool
	Reason string
}

// Attribution is optional marketing context forwarded into checkout session
// metadata and ad events.
type Attribution struct {
	UtmSource   string `json:"utm_source"`
	UtmMedium   string `json:"utm_medium"`
	UtmCampaign string `json:"utm_campaign"`
	UtmContent  string `json:"utm_content"`
	UtmTerm     string `json:"utm_term"`
	SessionID   string `json:"sessionId"`
}

type GenerateSiteRequest struct {
	FormData SiteFormData `json:"formData"`
}

type GenerateSiteResponse struct {
	HTML string `json:"html"`
}

type CreateCheckoutRequest struct {
	FormData SiteFormData `json:"formData"`
	HTML     string       `json:"html"`
	Attribution
}

type CreateCheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutSpec is what the payment provider needs to open a session. Line
// items and prices are the provider's own configuration.
type CheckoutSpec struct {
	CustomerEmail string
	Metadata      map[string]string
}

// PublishOrder is the publish transition input, reconstructed entirely from
// webhook event metadata.
type PublishOrder struct {
	EventID     string
	DraftID     string
	Subdomain   string
	SiteName    string
	Email       string
	ColorTheme  string
	Catchphrase string
	ContactInfo string
	Description string
}

type VerifyRequest struct {
	Subdomain string `json:"subdomain"`
	Password  string `json:"password"`
}

type VerifySiteResponse struct {
	Subdomain string       `json:"subdomain"`
	Email     string       `json:"email"`
	FormData  SiteFormData `json:"formData"`
	HTML      string       `json:"html"`
	EditToken string       `json:"editToken"`
}

type RefineSiteRequest struct {
	Subdomain   string `json:"subdomain"`
	Password    string `json:"password"`
	EditToken   string `json:"editToken"`
	Instruction string `json:"instruction"`
}

type RefineSiteResponse struct {
	HTML string `json:"html"`
}

type GetSiteResponse struct {
	Subdomain string       `json:"subdomain"`
	FormData  SiteFormData `json:"formData"`
	HTML      string       `json:"html"`
}

type TrackEventRequest struct {
	EventType string `json:"eventType"`
	PageURL   string `json:"pageUrl"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
	Attribution
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
