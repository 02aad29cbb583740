package cron

import (
	"context"
	"errors"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/event"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

// ExpireBountiesCronJob sweeps active bounties whose deadline has passed into
// the expired status.
type ExpireBountiesCronJob struct {
	bountyRepo repository.BountyRepository
	publisher  pubsub.Publisher
}

func NewExpireBountiesCronJob(
	bountyRepo repository.BountyRepository,
	publisher pubsub.Publisher,
) *ExpireBountiesCronJob {
	return &ExpireBountiesCronJob{bountyRepo: bountyRepo, publisher: publisher}
}

func (job *ExpireBountiesCronJob) Do(ctx context.Context) {
	bounties, err := job.bountyRepo.GetActiveBefore(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get overdue bounties: %v", err)
		return
	}

	for _, b := range bounties {
		err := job.bountyRepo.TransitionStatus(ctx, b.ID, entity.BountyActive, entity.BountyExpired)
		if err != nil {
			// Completed or cancelled between the query and the update.
			if errors.Is(err, repository.ErrNoEffect) {
				continue
			}

			xcontext.Logger(ctx).Warnf("Cannot expire bounty %d: %v", b.ID, err)
			continue
		}

		event.Publish(ctx, job.publisher, event.BountyExpiredEvent{
			BountyID:  b.ID,
			CreatorID: b.CreatorID,
		})
	}
}

func (job *ExpireBountiesCronJob) RunNow() bool {
	return true
}

func (job *ExpireBountiesCronJob) Next() time.Time {
	return time.Now().Add(time.Minute)
}
