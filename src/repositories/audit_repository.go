package repositories

import (
	"context"
	"fmt"

	"familygraph/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	writePool *pgxpool.Pool
}

func NewAuditRepository(writePool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{writePool: writePool}
}

// InsertEntries grava o lote via COPY; o consumer processa em batch e
// volumes grandes chegam juntos.
func (r *AuditRepository) InsertEntries(ctx context.Context, entries []entities.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []interface{}{
			entry.EventID,
			entry.EventType,
			entry.MemberID,
			entry.Payload,
			entry.OccurredAt,
		})
	}

	_, err := r.writePool.CopyFrom(
		ctx,
		pgx.Identifier{"audit_log"},
		[]string{"event_id", "event_type", "member_id", "payload", "occurred_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("AuditRepository.InsertEntries - copy failed: %w", err)
	}

	return nil
}
