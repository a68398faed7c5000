package test_seeder

import (
	"context"
	"fmt"

	"familygraph/src/domain/entities"
)

// InsertMember inserts a family member into the database for testing
func (ts TestSeeder) InsertMember(ctx context.Context, member *entities.Member) {
	query := `
		INSERT INTO family_members (first_name, last_name, gender, birth_date, death_date, birth_place, current_location, biography, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		member.FirstName,
		member.LastName,
		member.Gender,
		member.BirthDate,
		member.DeathDate,
		member.BirthPlace,
		member.CurrentLocation,
		member.Biography,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertMember failed: %v", err))
	}
}

// InsertRelationship inserts a directed relationship edge into the database for testing
func (ts TestSeeder) InsertRelationship(ctx context.Context, relationship *entities.Relationship) {
	query := `
		INSERT INTO relationships (from_member_id, to_member_id, relation_type, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		relationship.FromMemberID,
		relationship.ToMemberID,
		relationship.RelationType,
		relationship.CreatedAt,
	).Scan(&relationship.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertRelationship failed: %v", err))
	}
}

// InsertTimelineEvent inserts a timeline event into the database for testing
func (ts TestSeeder) InsertTimelineEvent(ctx context.Context, event *entities.TimelineEvent) {
	query := `
		INSERT INTO timeline_events (member_id, title, description, event_date, event_type, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		event.MemberID,
		event.Title,
		event.Description,
		event.EventDate,
		event.EventType,
		event.Location,
		event.CreatedAt,
	).Scan(&event.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertTimelineEvent failed: %v", err))
	}
}

// InsertDocument inserts a document record into the database for testing
func (ts TestSeeder) InsertDocument(ctx context.Context, document *entities.Document) {
	query := `
		INSERT INTO documents (member_id, title, doc_type, storage_key, file_name, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		document.MemberID,
		document.Title,
		document.DocType,
		document.StorageKey,
		document.FileName,
		document.ContentType,
		document.CreatedAt,
	).Scan(&document.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertDocument failed: %v", err))
	}
}
