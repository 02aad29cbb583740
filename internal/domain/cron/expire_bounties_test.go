package cron

import (
	"testing"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/testutil"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_ExpireBountiesCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	bountyRepo := repository.NewBountyRepository()

	reward, err := entity.NewBigInt("100000000000000000000")
	require.NoError(t, err)

	overdue := &entity.Bounty{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		CreatorID:     testutil.User1.ID,
		Title:         "Overdue",
		Reward:        reward,
		Status:        entity.BountyActive,
		Deadline:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, bountyRepo.Create(ctx, overdue, &entity.BountySettings{}))

	current := &entity.Bounty{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		CreatorID:     testutil.User1.ID,
		Title:         "Current",
		Reward:        reward,
		Status:        entity.BountyActive,
		Deadline:      time.Now().Add(time.Hour),
	}
	require.NoError(t, bountyRepo.Create(ctx, current, &entity.BountySettings{}))

	publisher := &testutil.MockPublisher{}
	NewExpireBountiesCronJob(bountyRepo, publisher).Do(ctx)

	swept, err := bountyRepo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BountyExpired, swept.Status)

	kept, err := bountyRepo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BountyActive, kept.Status)

	topic := xcontext.Configs(ctx).Kafka.EventTopic
	require.Len(t, publisher.Published(topic), 1)
}
