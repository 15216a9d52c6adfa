package distribution

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSPublisher struct {
	client   sqsClient
	queueURL string
}

// NewSQSPublisher uses the default AWS credential chain.
func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SQSPublisher{client: sqs.NewFromConfig(cfg), queueURL: queueURL}, nil
}

func (p *SQSPublisher) Publish(ctx context.Context, envelope *EventEnvelope) error {
	data, err := envelope.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(data)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"product": {
				DataType:    aws.String("String"),
				StringValue: aws.String(envelope.Product),
			},
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(envelope.EventType),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s to SQS: %w", envelope.Product, err)
	}
	return nil
}

func (p *SQSPublisher) Close() error {
	return nil
}
