package distribution

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

type kafkaClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type KafkaPublisher struct {
	client kafkaClient
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, envelope *EventEnvelope) error {
	data, err := envelope.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(envelope.Product),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(envelope.EventType)},
		},
	}

	return p.client.ProduceSync(ctx, record).FirstErr()
}

func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
