package distribution

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeProductsName = "cwa.products"
	ExchangeProductsType = "topic"
)

// DeclareProductsExchange declares the exchange products are published to,
// routed by their transmission identifier.
func DeclareProductsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		ExchangeProductsName, // name
		ExchangeProductsType, // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
}

type rabbitChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel rabbitChannel
}

func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbit: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbit channel: %w", err)
	}

	err = DeclareProductsExchange(ch)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", ExchangeProductsName, err)
	}

	return &RabbitPublisher{conn: conn, channel: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, envelope *EventEnvelope) error {
	data, err := envelope.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		ExchangeProductsName, // exchange
		envelope.Product,     // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    envelope.Timestamp,
			AppId:        "us.cwa.generator",
			Type:         envelope.EventType,
			Body:         data,
		})
}

func (p *RabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
