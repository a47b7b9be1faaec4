package consts

type ColorTheme string

const ThemeSimple ColorTheme = "simple"
const ThemeColorful ColorTheme = "colorful"
const ThemeBusiness ColorTheme = "business"

func ValidColorTheme(theme string) bool {
	switch ColorTheme(theme) {
	case ThemeSimple, ThemeColorful, ThemeBusiness:
		return true
	}
	return false
}

type AdEventType string

const (
	EventPageView      AdEventType = "page_view"
	EventFormStart     AdEventType = "form_start"
	EventCheckoutStart AdEventType = "checkout_start"
	EventSubscribed    AdEventType = "subscribed"
)

func ValidAdEventType(eventType string) bool {
	switch AdEventType(eventType) {
	case EventPageView, EventFormStart, EventCheckoutStart, EventSubscribed:
		return true
	}
	return false
}

// Checkout session metadata keys. The webhook handler reconstructs the whole
// site row from these, it never sees the original request.
const (
	MetaDraftID     = "draftId"
	MetaSubdomain   = "subdomain"
	MetaSiteName    = "siteName"
	MetaEmail       = "email"
	MetaColorTheme  = "colorTheme"
	MetaCatchphrase = "catchphrase"
	MetaContactInfo = "contactInfo"
	MetaDescription = "description"
	MetaUtmSource   = "utm_source"
	MetaUtmMedium   = "utm_medium"
	MetaUtmCampaign = "utm_campaign"
	MetaUtmContent  = "utm_content"
	MetaUtmTerm     = "utm_term"
	MetaSessionID   = "sessionId"
)

// MetaDescriptionLimit bounds the truncated description carried in session
// metadata.
const MetaDescriptionLimit = 500
