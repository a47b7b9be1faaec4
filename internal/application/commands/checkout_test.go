package commands_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/consts"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

func validForm() dto.SiteFormData {
	return dto.SiteFormData{
		SiteName:    "Acme Bakery",
		Catchphrase: "Fresh bread daily",
		Description: "We bake sourdough every morning.",
		ContactInfo: "hello@acme-bakery.test",
		Email:       "owner@acme-bakery.test",
		Subdomain:   "acme-bakery",
		ColorTheme:  string(consts.ThemeSimple),
	}
}

func newCheckout(drafts *fakeDrafts, payments *fakePayments, model *fakeModel) *commands.CreateCheckout {
	return commands.NewCreateCheckout(drafts, payments, commands.NewModerate(model))
}

func safeModel() *fakeModel {
	return &fakeModel{moderateResponse: `{"isSafe": true, "reason": "ok"}`}
}

func TestCreateCheckout_RejectsInvalidForm(t *testing.T) {
	mutations := map[string]func(*dto.SiteFormData){
		"empty site name":    func(f *dto.SiteFormData) { f.SiteName = "  " },
		"empty catchphrase":  func(f *dto.SiteFormData) { f.Catchphrase = "" },
		"empty description":  func(f *dto.SiteFormData) { f.Description = "" },
		"empty contact info": func(f *dto.SiteFormData) { f.ContactInfo = "" },
		"empty email":        func(f *dto.SiteFormData) { f.Email = "" },
		"empty subdomain":    func(f *dto.SiteFormData) { f.Subdomain = "" },
		"unknown theme":      func(f *dto.SiteFormData) { f.ColorTheme = "neon" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			drafts := newFakeDrafts(nil)
			payments := &fakePayments{url: "https://pay.test/s"}
			model := safeModel()
			cmd := newCheckout(drafts, payments, model)

			form := validForm()
			mutate(&form)

			_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: form, HTML: "<!DOCTYPE html><html></html>"})

			var validationErr errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, 0, model.moderateCalls, "no model call for an invalid form")
			require.Empty(t, drafts.objects, "no draft may be stored for an invalid form")
			require.Empty(t, payments.specs, "no session may be created for an invalid form")
		})
	}
}

func TestCreateCheckout_RejectsEmptyHTML(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	model := safeModel()
	cmd := newCheckout(drafts, payments, model)

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: validForm(), HTML: "   "})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, 0, model.moderateCalls)
	require.Empty(t, drafts.objects)
}

func TestCreateCheckout_UnsafeContentNeverStored(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	model := &fakeModel{moderateResponse: `{"isSafe": false, "reason": "advance-fee scam"}`}
	cmd := newCheckout(drafts, payments, model)

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{
		FormData: validForm(),
		HTML:     "<!DOCTYPE html><html><body>send us money</body></html>",
	})

	var moderationErr errs.ModerationError
	require.ErrorAs(t, err, &moderationErr)
	require.Equal(t, "advance-fee scam", moderationErr.Reason)
	require.Equal(t, 1, model.moderateCalls)
	require.Empty(t, drafts.objects, "rejected content must never become a draft")
	require.Empty(t, payments.specs, "rejected content must never open a session")
}

func TestCreateCheckout_MalformedModerationBlocksDraft(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	model := &fakeModel{moderateResponse: `{"verdict": "fine"}`}
	cmd := newCheckout(drafts, payments, model)

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: validForm(), HTML: "<!DOCTYPE html><html></html>"})

	var contractErr errs.ContractError
	require.ErrorAs(t, err, &contractErr)
	require.Empty(t, drafts.objects)
}

func TestCreateCheckout_StoresDraftBeforeSession(t *testing.T) {
	var log []string
	drafts := newFakeDrafts(&log)
	payments := &fakePayments{url: "https://pay.test/s", log: &log}
	cmd := newCheckout(drafts, payments, safeModel())

	html := "<!DOCTYPE html><html><body>preview</body></html>"
	url, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: validForm(), HTML: html})
	require.NoError(t, err)
	require.Equal(t, "https://pay.test/s", url)

	require.Equal(t, []string{"put", "session"}, log)
	require.Len(t, drafts.objects, 1)
	require.Len(t, payments.specs, 1)

	spec := payments.specs[0]
	require.Equal(t, "owner@acme-bakery.test", spec.CustomerEmail)

	draftID := spec.Metadata[consts.MetaDraftID]
	require.NotEmpty(t, draftID)
	require.Equal(t, html, drafts.objects[draftID], "metadata draftId must point at the stored draft")
	require.Equal(t, "acme-bakery", spec.Metadata[consts.MetaSubdomain])
	require.Equal(t, "Acme Bakery", spec.Metadata[consts.MetaSiteName])
	require.Equal(t, string(consts.ThemeSimple), spec.Metadata[consts.MetaColorTheme])
}

func TestCreateCheckout_FailedPutPreventsSession(t *testing.T) {
	var log []string
	drafts := newFakeDrafts(&log)
	drafts.putErr = errs.RetryableError{Err: context.DeadlineExceeded}
	payments := &fakePayments{url: "https://pay.test/s", log: &log}
	cmd := newCheckout(drafts, payments, safeModel())

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: validForm(), HTML: "<!DOCTYPE html><html></html>"})

	var retryableErr errs.RetryableError
	require.ErrorAs(t, err, &retryableErr)
	require.Equal(t, []string{"put"}, log, "session must not be created when the draft was not stored")
}

func TestCreateCheckout_TruncatesDescriptionMetadata(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	cmd := newCheckout(drafts, payments, safeModel())

	form := validForm()
	form.Description = strings.Repeat("d", consts.MetaDescriptionLimit+100)

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: form, HTML: "<!DOCTYPE html><html></html>"})
	require.NoError(t, err)

	require.Len(t, payments.specs[0].Metadata[consts.MetaDescription], consts.MetaDescriptionLimit)
}

func TestCreateCheckout_TruncationKeepsValidUTF8(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	cmd := newCheckout(drafts, payments, safeModel())

	// the two-byte é straddles the byte limit; the cut must back off to the
	// previous rune boundary instead of emitting a lone continuation byte
	form := validForm()
	form.Description = strings.Repeat("d", consts.MetaDescriptionLimit-1) + "é and more"

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{FormData: form, HTML: "<!DOCTYPE html><html></html>"})
	require.NoError(t, err)

	description := payments.specs[0].Metadata[consts.MetaDescription]
	require.True(t, utf8.ValidString(description))
	require.LessOrEqual(t, len(description), consts.MetaDescriptionLimit)
	require.Equal(t, strings.Repeat("d", consts.MetaDescriptionLimit-1), description)
}

func TestCreateCheckout_OptionalAttributionMetadata(t *testing.T) {
	drafts := newFakeDrafts(nil)
	payments := &fakePayments{url: "https://pay.test/s"}
	cmd := newCheckout(drafts, payments, safeModel())

	_, err := cmd.Execute(context.Background(), dto.CreateCheckoutRequest{
		FormData: validForm(),
		HTML:     "<!DOCTYPE html><html></html>",
		Attribution: dto.Attribution{
			UtmSource: "newsletter",
			SessionID: "sess-42",
		},
	})
	require.NoError(t, err)

	metadata := payments.specs[0].Metadata
	require.Equal(t, "newsletter", metadata[consts.MetaUtmSource])
	require.Equal(t, "sess-42", metadata[consts.MetaSessionID])
	require.NotContains(t, metadata, consts.MetaUtmMedium, "empty attribution fields stay out of metadata")
	require.NotContains(t, metadata, consts.MetaUtmTerm)
}
