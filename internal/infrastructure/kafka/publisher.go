package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/crestline/financing-service/internal/domain"
)

// ApplicationEventPublisher broadcasts credit-application lifecycle events.
// Messages are keyed by application ID so per-application ordering survives
// partitioning.
type ApplicationEventPublisher struct {
	writer        *kafka.Writer
	approvedTopic string
}

func NewApplicationEventPublisher(brokers []string, approvedTopic string) *ApplicationEventPublisher {
	return &ApplicationEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		approvedTopic: approvedTopic,
	}
}

func (p *ApplicationEventPublisher) PublishApplicationApproved(event domain.ApplicationApprovedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ApplicationID),
		Value: value,
		Time:  time.Now(),
		Topic: p.approvedTopic,
	})
}

func (p *ApplicationEventPublisher) Close() error {
	return p.writer.Close()
}
