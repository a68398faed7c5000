package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/infra/kafka"
	"familygraph/src/repositories"

	"github.com/google/uuid"
)

// AuditConsumer materializa os eventos de domínio em audit_log. É um
// consumidor idempotente o suficiente para reprocesso: event_id repetido
// gera linha repetida, e a análise deduplica depois.
type AuditConsumer struct {
	logger          *slog.Logger
	kafkaClient     *kafka.KafkaClient
	auditRepository *repositories.AuditRepository
	topic           string
}

func NewAuditConsumer(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	auditRepository *repositories.AuditRepository,
	topic string,
) *AuditConsumer {
	return &AuditConsumer{
		logger:          logger,
		kafkaClient:     kafkaClient,
		auditRepository: auditRepository,
		topic:           topic,
	}
}

func (c *AuditConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting audit consumer", "topic", c.topic)

	return c.kafkaClient.Consumer(ctx, c.handleBatch, c.topic)
}

func (c *AuditConsumer) handleBatch(messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Debug("Processing audit batch", "count", len(messages))

	entries := make([]entities.AuditEntry, 0, len(messages))

	for _, message := range messages {
		var event domain.DomainEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			// Mensagem podre não trava a partição; loga e segue.
			c.logger.Error("Failed to unmarshal domain event", "error", err, "key", message.Key)
			continue
		}

		eventID := message.Headers["event_id"]
		if eventID == "" {
			eventID = uuid.NewString()
		}

		memberID, err := strconv.ParseInt(message.Key, 10, 64)
		if err != nil {
			memberID = event.MemberID
		}

		occurredAt, err := time.Parse(time.RFC3339, event.OccurredAt)
		if err != nil {
			occurredAt = time.Now().UTC()
		}

		entries = append(entries, entities.AuditEntry{
			EventID:    eventID,
			EventType:  event.EventType,
			MemberID:   memberID,
			Payload:    json.RawMessage(message.Value),
			OccurredAt: occurredAt,
		})
	}

	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.auditRepository.InsertEntries(ctx, entries); err != nil {
		return fmt.Errorf("AuditConsumer.handleBatch - failed to persist audit entries: %w", err)
	}

	c.logger.Info("Persisted audit entries", "count", len(entries))

	return nil
}
