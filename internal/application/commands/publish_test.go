package commands_test

import (
	"context"
	"testing"

	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

func publishOrder(subdomain, draftID string) dto.PublishOrder {
	return dto.PublishOrder{
		EventID:     "evt_" + subdomain,
		DraftID:     draftID,
		Subdomain:   subdomain,
		SiteName:    "Published Site",
		Email:       "owner@example.com",
		ColorTheme:  "business",
		Catchphrase: "catchy",
		ContactInfo: "contact@example.com",
		Description: "desc",
	}
}

func TestPublishSite_RejectsIncompleteMetadata(t *testing.T) {
	cmd := commands.NewPublishSite(uowFactory, newFakeDrafts(nil))

	for _, order := range []dto.PublishOrder{
		{Subdomain: "cmd-pub-nometa"},
		{DraftID: "draft-1"},
	} {
		err := cmd.Execute(context.Background(), order)
		var validationErr errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
	}
}

func TestPublishSite_PublishesOnce(t *testing.T) {
	drafts := newFakeDrafts(nil)
	drafts.objects["draft-pub-1"] = "<!DOCTYPE html><html><body>v1</body></html>"
	cmd := commands.NewPublishSite(uowFactory, drafts)

	order := publishOrder("cmd-pub-once", "draft-pub-1")
	require.NoError(t, cmd.Execute(context.Background(), order))
	require.Equal(t, 1, countSites(t, "cmd-pub-once"))
	require.Equal(t, "<!DOCTYPE html><html><body>v1</body></html>", getSiteHTML(t, "cmd-pub-once"))

	// at-least-once delivery: the replay is acknowledged without a second row
	require.NoError(t, cmd.Execute(context.Background(), order))
	require.Equal(t, 1, countSites(t, "cmd-pub-once"))
}

func TestPublishSite_ReplayAfterDraftEviction(t *testing.T) {
	drafts := newFakeDrafts(nil)
	drafts.objects["draft-pub-2"] = "<!DOCTYPE html><html></html>"
	cmd := commands.NewPublishSite(uowFactory, drafts)

	order := publishOrder("cmd-pub-evicted", "draft-pub-2")
	require.NoError(t, cmd.Execute(context.Background(), order))

	// draft disappears, e.g. lifecycle cleanup, and the provider redelivers
	delete(drafts.objects, "draft-pub-2")
	require.NoError(t, cmd.Execute(context.Background(), order))
	require.Equal(t, 1, countSites(t, "cmd-pub-evicted"))
}

func TestPublishSite_MissingDraftIsRetryable(t *testing.T) {
	cmd := commands.NewPublishSite(uowFactory, newFakeDrafts(nil))

	err := cmd.Execute(context.Background(), publishOrder("cmd-pub-nodraft", "draft-gone"))

	var retryableErr errs.RetryableError
	require.ErrorAs(t, err, &retryableErr)
	require.Equal(t, 0, countSites(t, "cmd-pub-nodraft"))
}
