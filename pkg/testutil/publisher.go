package testutil

import (
	"context"
	"sync"

	"github.com/agrichain-lab/backend/pkg/pubsub"
)

// MockPublisher records published packs per topic.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex  sync.Mutex
	Packs  map[string][]*pubsub.Pack
	closed bool
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Packs == nil {
		m.Packs = make(map[string][]*pubsub.Pack)
	}

	m.Packs[topic] = append(m.Packs[topic], pack)
	return nil
}

func (m *MockPublisher) Close(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	return nil
}

func (m *MockPublisher) Published(topic string) []*pubsub.Pack {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.Packs[topic]
}
