package event

import (
	"context"
	"encoding/json"

	"github.com/agrichain-lab/backend/internal/common"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

// Event is a domain event consumed by external indexers and UIs.
type Event interface {
	Op() string
	Actor() string
}

type Request struct {
	Op    string `json:"o"`
	Actor string `json:"a"`
	Data  any    `json:"d"`
}

func New(ev Event) *Request {
	return &Request{
		Op:    ev.Op(),
		Actor: ev.Actor(),
		Data:  ev,
	}
}

// Publish sends the event to the configured event topic. A publish failure is
// logged and swallowed, it must not fail the state transition that emitted it.
func Publish(ctx context.Context, publisher pubsub.Publisher, ev Event) {
	if publisher == nil {
		return
	}

	b, err := json.Marshal(New(ev))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", ev.Op(), err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.EventTopic
	err = publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(ev.Actor()), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", ev.Op(), err)
		common.PromCounters[common.EventPublishFailureTotal].WithLabelValues(ev.Op()).Inc()
	}
}
