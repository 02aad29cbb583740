package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/agrichain-lab/backend/internal/event"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_eventIndexerDomain_Index(t *testing.T) {
	ctx := testutil.MockContext()
	eventLogRepo := repository.NewEventLogRepository()
	indexer := NewEventIndexerDomain(eventLogRepo)

	msg, err := json.Marshal(event.New(event.CropScannedEvent{
		TokenID:    7,
		ScannerID:  "user2",
		TotalScans: 3,
	}))
	require.NoError(t, err)

	emittedAt := time.Now()
	indexer.Index(ctx, &pubsub.Pack{Key: []byte("user2"), Msg: msg}, emittedAt)

	logs, err := eventLogRepo.GetList(ctx, repository.GetListEventLogFilter{Op: "cropScanned"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "user2", logs[0].Actor)
	require.Equal(t, float64(7), logs[0].Payload["token_id"])

	// Malformed messages are dropped without failing.
	indexer.Index(ctx, &pubsub.Pack{Msg: []byte("not json")}, emittedAt)
	logs, err = eventLogRepo.GetList(ctx, repository.GetListEventLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
}
