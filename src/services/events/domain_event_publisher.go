package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"familygraph/src/domain"
	"familygraph/src/infra/kafka"

	"github.com/google/uuid"
)

type DomainEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewDomainEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// Publish envia um evento de domínio. A chave de partição é o id do
// membro: eventos do mesmo membro preservam ordem.
func (p *DomainEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("DomainEventPublisher.Publish - failed to marshal event: %w", err)
	}

	eventID := uuid.NewString()

	message := kafka.Message{
		Key:   strconv.FormatInt(event.MemberID, 10),
		Value: eventBytes,
		Headers: map[string]string{
			"event_id":       eventID,
			"event_type":     event.EventType,
			"source_service": "family-graph-api",
			"schema_version": "v1",
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{message}, p.topic); err != nil {
		return fmt.Errorf("DomainEventPublisher.Publish - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published domain event",
		"event_id", eventID,
		"event_type", event.EventType,
		"member_id", event.MemberID,
		"topic", p.topic)

	return nil
}
