// Package queue sends fire-and-forget job notifications to SQS.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Notifier publishes JSON messages to a single queue. Sends are
// best-effort: the export pipeline logs failures and carries on, so the
// queue being down never fails a request.
type Notifier struct {
	sqs      *sqs.Client
	queueURL string
	logger   *slog.Logger
}

// New constructs a Notifier from the default AWS credential chain.
func New(ctx context.Context, queueURL, region string, logger *slog.Logger) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Notifier{
		sqs:      sqs.NewFromConfig(cfg),
		queueURL: queueURL,
		logger:   logger.With("component", "queue"),
	}, nil
}

// Notify marshals payload and sends it as one message.
func (n *Notifier) Notify(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling queue payload: %w", err)
	}
	_, err = n.sqs.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("sending message to %s: %w", n.queueURL, err)
	}
	n.logger.InfoContext(ctx, "queue message sent", "queue_url", n.queueURL)
	return nil
}
