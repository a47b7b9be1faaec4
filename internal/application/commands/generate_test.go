package commands_test

import (
	"context"
	"testing"

	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

func newGenerate(model *fakeModel) *commands.GenerateSite {
	return commands.NewGenerateSite(model, commands.NewModerate(model))
}

func TestGenerateSite_Success(t *testing.T) {
	model := &fakeModel{
		moderateResponse: `{"isSafe": true, "reason": ""}`,
		completeResponse: "Here is your page:\n```html\n<!DOCTYPE html><html><body>hi</body></html>\n```",
	}

	html, err := newGenerate(model).Execute(context.Background(), dto.GenerateSiteRequest{FormData: validForm()})
	require.NoError(t, err)
	require.Equal(t, "<!DOCTYPE html><html><body>hi</body></html>", html)
	require.Equal(t, 1, model.moderateCalls)
	require.Equal(t, 1, model.completeCalls)
}

func TestGenerateSite_UnsafeSubmissionSkipsGeneration(t *testing.T) {
	model := &fakeModel{
		moderateResponse: `{"isSafe": false, "reason": "promotes illegal activity"}`,
	}

	_, err := newGenerate(model).Execute(context.Background(), dto.GenerateSiteRequest{FormData: validForm()})

	var moderationErr errs.ModerationError
	require.ErrorAs(t, err, &moderationErr)
	require.Equal(t, "promotes illegal activity", moderationErr.Reason)
	require.Equal(t, 0, model.completeCalls, "generation must not run for a rejected submission")
}

func TestGenerateSite_InvalidFormSkipsModeration(t *testing.T) {
	model := &fakeModel{}

	form := validForm()
	form.Subdomain = ""
	_, err := newGenerate(model).Execute(context.Background(), dto.GenerateSiteRequest{FormData: form})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, 0, model.moderateCalls)
}

func TestGenerateSite_MalformedModerationIsContractFailure(t *testing.T) {
	model := &fakeModel{
		moderateResponse: `{"verdict": "fine"}`,
	}

	_, err := newGenerate(model).Execute(context.Background(), dto.GenerateSiteRequest{FormData: validForm()})

	var contractErr errs.ContractError
	require.ErrorAs(t, err, &contractErr)
	require.Equal(t, 0, model.completeCalls)
}

func TestGenerateSite_UnrecoverableDocumentIsContractFailure(t *testing.T) {
	model := &fakeModel{
		moderateResponse: `{"isSafe": true, "reason": ""}`,
		completeResponse: "I'm sorry, I can't produce that page.",
	}

	_, err := newGenerate(model).Execute(context.Background(), dto.GenerateSiteRequest{FormData: validForm()})

	var contractErr errs.ContractError
	require.ErrorAs(t, err, &contractErr)
}
