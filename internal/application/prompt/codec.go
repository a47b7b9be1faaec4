// Package prompt builds the prompts sent to the model and recovers
// structured payloads from its responses. The model is treated as a noisy
// channel: prompts define the contract, the parsers tolerate the known noise
// patterns (markdown fences, preamble and postamble commentary) and fail on
// anything else. All of the fragile text scanning lives here.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
)

const doctypeMarker = "<!doctype"
const closingRootTag = "</html>"

const moderationTemplate = `You are a content safety reviewer for a website builder.
Review the text fields a customer submitted for a public one-page website.
Content is unsafe if it promotes violence, hate, illegal activity, adult
content, scams, or harassment. Ordinary commercial content is safe.

Respond with a single JSON object with exactly two keys:
"isSafe" (boolean) and "reason" (string, at most 50 characters).
Do not wrap the JSON in markdown fences. Do not add any other text.

Example, safe submission:
  siteName: "Main Street Bakery"
  catchphrase: "Fresh bread every morning"
  description: "Family bakery selling bread and pastries"
  contactInfo: "555-0134"
Output: {"isSafe": true, "reason": "ok"}

Example, unsafe submission:
  siteName: "Quick Cash"
  catchphrase: "Guaranteed returns"
  description: "Send us money and double it in a week"
  contactInfo: "anonymous"
Output: {"isSafe": false, "reason": "advance-fee scam"}

Fields to review:
siteName: %q
catchphrase: %q
description: %q
contactInfo: %q`

// BuildModerationPrompt embeds the four free-text form fields into the fixed
// moderation instruction template. Deterministic for a given form.
func BuildModerationPrompt(form dto.SiteFormData) string {
	return fmt.Sprintf(moderationTemplate,
		form.SiteName, form.Catchphrase, form.Description, form.ContactInfo)
}

// ParseModerationResponse strips optional code fences and decodes the strict
// two-key moderation object. A missing key or a wrong primitive type is a
// contract error, never a silent "safe" default.
func ParseModerationResponse(raw string) (dto.ModerationResult, error) {
	cleaned := StripFences(raw)

	var payload struct {
		IsSafe *bool   `json:"isSafe"`
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return dto.ModerationResult{}, errs.ContractError{Err: fmt.Errorf("moderation response is not a valid JSON object, %v", err)}
	}
	if payload.IsSafe == nil {
		return dto.ModerationResult{}, errs.ContractError{Err: fmt.Errorf("moderation response is missing boolean key isSafe")}
	}
	if payload.Reason == nil {
		return dto.ModerationResult{}, errs.ContractError{Err: fmt.Errorf("moderation response is missing string key reason")}
	}

	return dto.ModerationResult{
		IsSafe: *payload.IsSafe,
		Reason: *payload.Reason,
	}, nil
}

const generatorTemplate = `You are generating a one-page website for a customer.
Produce a complete HTML document and nothing else: start at <!DOCTYPE html>
and end at </html>. No markdown fences, no commentary.

Requirements:
- Single page, responsive, styled with Tailwind via the CDN script tag
  <script src="https://cdn.tailwindcss.com"></script> in <head>.
- Visual style: %v. "simple" is minimal monochrome, "colorful" uses bold
  accent colors and gradients, "business" is restrained corporate blue/gray.
- Use only inline SVG or CSS for decoration, no external images.
- No script sources other than the Tailwind CDN.
- Sections: hero with the site name and catchphrase, an about section from
  the description, and a contact section.

Site name: %v
Catchphrase: %v
Description: %v
Contact: %v
Email: %v`

// BuildGeneratorPrompt builds the initial draft-generation prompt from the
// validated form.
func BuildGeneratorPrompt(form dto.SiteFormData) string {
	return fmt.Sprintf(generatorTemplate,
		form.ColorTheme, form.SiteName, form.Catchphrase, form.Description, form.ContactInfo, form.Email)
}

const refinerTemplate = `You are editing an existing one-page website.
Apply the customer's instruction to the document below. Constraints:
1. Do not change the structure of the document: keep the same sections and
   element hierarchy unless the instruction explicitly asks otherwise.
2. Do not add references to external images.
3. Do not remove the Tailwind CDN script reference from <head>.
4. Do not add any new script sources.
5. Do not output a fragment or a diff: return the full document, starting at
   <!DOCTYPE html> and ending at </html>.
6. Do not include commentary, markdown fences, or explanations of any kind.

Instruction: %v

Current document:
%v`

// BuildRefinerPrompt embeds the negative constraints ahead of the
// instruction and the current document.
func BuildRefinerPrompt(currentHTML, instruction string) string {
	return fmt.Sprintf(refinerTemplate, instruction, currentHTML)
}

// ParseDocumentResponse recovers a full HTML document from a model response.
// Fences are stripped, then the document is located by a case-insensitive
// doctype marker: absent anywhere means a contract error, present at a
// non-zero offset means preamble commentary that gets truncated. The closing
// root tag is handled symmetrically for trailing commentary. Parsing an
// already-clean document returns it unchanged.
func ParseDocumentResponse(raw string) (string, error) {
	cleaned := StripFences(raw)
	lower := strings.ToLower(cleaned)

	start := strings.Index(lower, doctypeMarker)
	if start < 0 {
		return "", errs.ContractError{Err: fmt.Errorf("no doctype marker in model response")}
	}
	cleaned = cleaned[start:]
	lower = lower[start:]

	end := strings.LastIndex(lower, closingRootTag)
	if end < 0 {
		return "", errs.ContractError{Err: fmt.Errorf("no closing root tag in model response")}
	}

	return cleaned[:end+len(closingRootTag)], nil
}

// StripFences removes a leading/trailing markdown code fence pair the model
// may emit despite instructions. The opening fence's language tag is dropped
// with it.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
