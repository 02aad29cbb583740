package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/event"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

type EventIndexerDomain interface {
	Index(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type eventIndexerDomain struct {
	eventLogRepo repository.EventLogRepository
}

func NewEventIndexerDomain(eventLogRepo repository.EventLogRepository) *eventIndexerDomain {
	return &eventIndexerDomain{eventLogRepo: eventLogRepo}
}

// Index persists a consumed domain event. Malformed messages are dropped
// after logging, the consumer group must keep making progress.
func (d *eventIndexerDomain) Index(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var req event.Request
	if err := json.Unmarshal(pack.Msg, &req); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event message: %v", err)
		return
	}

	payload := entity.Map{}
	if data, err := json.Marshal(req.Data); err == nil {
		if err := json.Unmarshal(data, &payload); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode %s event payload: %v", req.Op, err)
		}
	}

	err := d.eventLogRepo.Create(ctx, &entity.EventLog{
		Op:        req.Op,
		Actor:     req.Actor,
		Payload:   payload,
		EmittedAt: t,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist %s event: %v", req.Op, err)
	}
}
