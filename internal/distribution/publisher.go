package distribution

import (
	"context"
	"errors"
	"fmt"

	"github.com/metdatasystem/cwa/internal/config"
	"github.com/metdatasystem/cwa/internal/textdb"
)

var ErrNoDistribution = errors.New("no distribution configured")

// Publisher sends stored products on to the wider network.
type Publisher interface {
	Publish(ctx context.Context, envelope *EventEnvelope) error
	Close() error
}

// Nop drops every product. Used when no distribution is configured.
type Nop struct{}

func (Nop) Publish(context.Context, *EventEnvelope) error { return nil }
func (Nop) Close() error                                  { return nil }

// New connects the publisher chosen by the configuration.
func New(ctx context.Context, cfg *config.Config) (Publisher, error) {
	switch cfg.Distribution {
	case config.DistributionNone, "":
		return Nop{}, nil
	case config.DistributionRabbit:
		return NewRabbitPublisher(cfg.RabbitURL)
	case config.DistributionKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case config.DistributionSQS:
		return NewSQSPublisher(ctx, cfg.SQSQueueURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrNoDistribution, cfg.Distribution)
}

// Envelope is a convenience for publishing a stored product straight away.
func Envelope(product *textdb.Product) *EventEnvelope {
	created := product.Issued
	if product.CreatedAt != nil {
		created = *product.CreatedAt
	}
	return NewEnvelope(product, created)
}
