package commands_test

import (
	"context"
	"fmt"

	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
)

// fakeModel serves scripted responses and counts calls, so tests can assert
// that validation failures never reach the model.
type fakeModel struct {
	moderateResponse string
	moderateErr      error
	moderateCalls    int

	completeResponse string
	completeErr      error
	completeCalls    int
}

func (f *fakeModel) Moderate(_ context.Context, _ string) (string, error) {
	f.moderateCalls++
	return f.moderateResponse, f.moderateErr
}

func (f *fakeModel) Complete(_ context.Context, _ string) (string, error) {
	f.completeCalls++
	return f.completeResponse, f.completeErr
}

// fakeDrafts is an in-memory draft store recording operation order into log.
type fakeDrafts struct {
	objects map[string]string
	putErr  error
	log     *[]string
}

func newFakeDrafts(log *[]string) *fakeDrafts {
	return &fakeDrafts{objects: map[string]string{}, log: log}
}

func (f *fakeDrafts) PutDraft(_ context.Context, draftID string, html string) error {
	if f.log != nil {
		*f.log = append(*f.log, "put")
	}
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[draftID] = html
	return nil
}

func (f *fakeDrafts) GetDraft(_ context.Context, draftID string) (string, error) {
	html, ok := f.objects[draftID]
	if !ok {
		return "", errs.NotFoundError{Msg: fmt.Sprintf("draft %v", draftID)}
	}
	return html, nil
}

type fakePayments struct {
	specs []dto.CheckoutSpec
	url   string
	err   error
	log   *[]string
}

func (f *fakePayments) CreateCheckoutSession(_ context.Context, spec dto.CheckoutSpec) (string, error) {
	if f.log != nil {
		*f.log = append(*f.log, "session")
	}
	if f.err != nil {
		return "", f.err
	}
	f.specs = append(f.specs, spec)
	return f.url, nil
}

type fakeAuthority struct {
	err   error
	calls int
}

func (f *fakeAuthority) Verify(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}
