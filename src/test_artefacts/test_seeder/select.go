package test_seeder

import (
	"context"

	"familygraph/src/domain/entities"
)

func (ts TestSeeder) SelectMemberByID(ctx context.Context, memberID int64) (*entities.Member, error) {
	query := `SELECT id, first_name, last_name, gender, birth_date, death_date, birth_place, current_location, biography, created_at, updated_at
			  FROM family_members WHERE id = $1`

	var member entities.Member
	err := ts.pool.QueryRow(ctx, query, memberID).Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Gender,
		&member.BirthDate,
		&member.DeathDate,
		&member.BirthPlace,
		&member.CurrentLocation,
		&member.Biography,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// SelectRelationshipsByMemberIDs retrieves all edges touching the given members, in both directions
func (ts TestSeeder) SelectRelationshipsByMemberIDs(ctx context.Context, memberIDs []int64) ([]entities.Relationship, error) {
	query := `SELECT id, from_member_id, to_member_id, relation_type, created_at
			  FROM relationships
			  WHERE from_member_id = ANY($1) OR to_member_id = ANY($1)
			  ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relationships []entities.Relationship
	for rows.Next() {
		var relationship entities.Relationship
		err := rows.Scan(
			&relationship.ID,
			&relationship.FromMemberID,
			&relationship.ToMemberID,
			&relationship.RelationType,
			&relationship.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, relationship)
	}

	return relationships, rows.Err()
}

func (ts TestSeeder) SelectTimelineEventsByMemberID(ctx context.Context, memberID int64) ([]entities.TimelineEvent, error) {
	query := `SELECT id, member_id, title, description, event_date, event_type, location, created_at
			  FROM timeline_events WHERE member_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []entities.TimelineEvent
	for rows.Next() {
		var event entities.TimelineEvent
		err := rows.Scan(
			&event.ID,
			&event.MemberID,
			&event.Title,
			&event.Description,
			&event.EventDate,
			&event.EventType,
			&event.Location,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (ts TestSeeder) SelectDocumentsByMemberID(ctx context.Context, memberID int64) ([]entities.Document, error) {
	query := `SELECT id, member_id, title, doc_type, storage_key, file_name, content_type, created_at
			  FROM documents WHERE member_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []entities.Document
	for rows.Next() {
		var document entities.Document
		err := rows.Scan(
			&document.ID,
			&document.MemberID,
			&document.Title,
			&document.DocType,
			&document.StorageKey,
			&document.FileName,
			&document.ContentType,
			&document.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

func (ts TestSeeder) SelectAuditEntriesByMemberID(ctx context.Context, memberID int64) ([]entities.AuditEntry, error) {
	query := `SELECT id, event_id, event_type, member_id, payload, occurred_at
			  FROM audit_log WHERE member_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auditEntries []entities.AuditEntry
	for rows.Next() {
		var auditEntry entities.AuditEntry
		err := rows.Scan(
			&auditEntry.ID,
			&auditEntry.EventID,
			&auditEntry.EventType,
			&auditEntry.MemberID,
			&auditEntry.Payload,
			&auditEntry.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		auditEntries = append(auditEntries, auditEntry)
	}

	return auditEntries, rows.Err()
}
