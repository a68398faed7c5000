package repositories

import (
	"context"
	"fmt"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TimelineRepository struct {
	writePool *pgxpool.Pool
	readPool  *pgxpool.Pool
}

func NewTimelineRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *TimelineRepository {
	return &TimelineRepository{readPool: readPool, writePool: writePool}
}

func (r *TimelineRepository) InsertEvent(ctx context.Context, event *entities.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (member_id, title, description, event_date, event_type, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	err := r.writePool.QueryRow(ctx, query,
		event.MemberID,
		event.Title,
		postgres.NewNullString(event.Description),
		event.EventDate,
		event.EventType,
		postgres.NewNullString(event.Location),
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return &domain.ReferenceError{MemberID: event.MemberID}
		}
		return &domain.StorageError{Err: fmt.Errorf("TimelineRepository.InsertEvent - insert failed: %w", err)}
	}

	return nil
}

// ListEventsByMember devolve a linha do tempo em ordem cronológica.
func (r *TimelineRepository) ListEventsByMember(ctx context.Context, memberID int64) ([]entities.TimelineEvent, error) {
	query := `
		SELECT id, member_id, title, description, event_date, event_type, location, created_at
		FROM timeline_events
		WHERE member_id = $1
		ORDER BY event_date, id;
	`

	rows, err := r.readPool.Query(ctx, query, memberID)
	if err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("TimelineRepository.ListEventsByMember - query failed: %w", err)}
	}
	defer rows.Close()

	events := make([]entities.TimelineEvent, 0)
	for rows.Next() {
		var event entities.TimelineEvent
		if err := rows.Scan(&event.ID, &event.MemberID, &event.Title, &event.Description, &event.EventDate, &event.EventType, &event.Location, &event.CreatedAt); err != nil {
			return nil, &domain.StorageError{Err: fmt.Errorf("TimelineRepository.ListEventsByMember - failed to scan event: %w", err)}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("TimelineRepository.ListEventsByMember - error iterating rows: %w", err)}
	}

	return events, nil
}

func (r *TimelineRepository) DeleteEvent(ctx context.Context, eventID int64) error {
	tag, err := r.writePool.Exec(ctx, `DELETE FROM timeline_events WHERE id = $1`, eventID)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("TimelineRepository.DeleteEvent - delete failed: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("TimelineRepository.DeleteEvent - event %d: %w", eventID, domain.ErrEventNotFound)
	}

	return nil
}
