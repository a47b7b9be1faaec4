package commands_test

import (
	"context"
	"testing"

	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
)

func TestTrackEvent_RejectsUnknownType(t *testing.T) {
	cmd := commands.NewTrackEvent(uowFactory)

	err := cmd.Execute(context.Background(), dto.TrackEventRequest{EventType: "clicked_everything"})

	var validationErr errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestTrackEvent_RecordsPageView(t *testing.T) {
	cmd := commands.NewTrackEvent(uowFactory)

	err := cmd.Execute(context.Background(), dto.TrackEventRequest{
		EventType: "page_view",
		PageURL:   "https://pageforge.test/",
		Referrer:  "https://search.test/",
		UserAgent: "test-agent",
		Attribution: dto.Attribution{
			SessionID: "cmd-track-1",
			UtmSource: "ads",
		},
	})
	require.NoError(t, err)

	var count int
	err = testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM pageforge.ad_events WHERE session_id = $1 AND event_type = 'page_view' AND utm_source = 'ads'",
		"cmd-track-1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
