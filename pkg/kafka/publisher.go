package kafka

import (
	"context"
	"fmt"

	"github.com/agrichain-lab/backend/pkg/pubsub"

	"github.com/Shopify/sarama"
)

type publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher connects a synchronous producer. Domain events are few enough
// that waiting for the broker ack on every publish is acceptable.
func NewPublisher(clientID string, brokerAddrs []string) pubsub.Publisher {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		panic(err)
	}

	return &publisher{producer: producer}
}

func (p *publisher) Publish(ctx context.Context, topic string, msg *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg.Msg),
		Key:   sarama.ByteEncoder(msg.Key),
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("send to %s: %w", topic, err)
	}

	return nil
}
