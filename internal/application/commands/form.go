package commands

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pageforge/pageforge-backend/internal/application/consts"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
)

// Free-text fields get markup stripped before they reach any prompt.
var sanitizer = bluemonday.StrictPolicy()

// normalizeFormData trims, sanitizes and validates a submission. Runs before
// any external call; a failure here never costs a model or payment request.
func normalizeFormData(form dto.SiteFormData) (dto.SiteFormData, error) {
	normalized := dto.SiteFormData{
		SiteName:    sanitizer.Sanitize(strings.TrimSpace(form.SiteName)),
		Catchphrase: sanitizer.Sanitize(strings.TrimSpace(form.Catchphrase)),
		Description: sanitizer.Sanitize(strings.TrimSpace(form.Description)),
		ContactInfo: sanitizer.Sanitize(strings.TrimSpace(form.ContactInfo)),
		Email:       strings.TrimSpace(form.Email),
		Subdomain:   strings.ToLower(strings.TrimSpace(form.Subdomain)),
		ColorTheme:  strings.TrimSpace(form.ColorTheme),
	}

	required := []struct {
		name  string
		value string
	}{
		{"siteName", normalized.SiteName},
		{"catchphrase", normalized.Catchphrase},
		{"description", normalized.Description},
		{"contactInfo", normalized.ContactInfo},
		{"email", normalized.Email},
		{"subdomain", normalized.Subdomain},
	}
	for _, field := range required {
		if field.value == "" {
			return dto.SiteFormData{}, errs.ValidationError{Msg: fmt.Sprintf("%v must not be empty", field.name)}
		}
	}
	if !consts.ValidColorTheme(normalized.ColorTheme) {
		return dto.SiteFormData{}, errs.ValidationError{Msg: fmt.Sprintf("colorTheme %q is not one of simple, colorful, business", form.ColorTheme)}
	}

	return normalized, nil
}
