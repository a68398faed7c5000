package repositories

import (
	"context"
	"fmt"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository struct {
	writePool *pgxpool.Pool
	readPool  *pgxpool.Pool
}

func NewDocumentRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{readPool: readPool, writePool: writePool}
}

func (r *DocumentRepository) InsertDocument(ctx context.Context, document *entities.Document) error {
	query := `
		INSERT INTO documents (member_id, title, doc_type, storage_key, file_name, content_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	err := r.writePool.QueryRow(ctx, query,
		document.MemberID,
		document.Title,
		document.DocType,
		document.StorageKey,
		document.FileName,
		document.ContentType,
	).Scan(&document.ID, &document.CreatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return &domain.ReferenceError{MemberID: document.MemberID}
		}
		return &domain.StorageError{Err: fmt.Errorf("DocumentRepository.InsertDocument - insert failed: %w", err)}
	}

	return nil
}

func (r *DocumentRepository) ListDocumentsByMember(ctx context.Context, memberID int64) ([]entities.Document, error) {
	query := `
		SELECT id, member_id, title, doc_type, storage_key, file_name, content_type, created_at
		FROM documents
		WHERE member_id = $1
		ORDER BY id;
	`

	rows, err := r.readPool.Query(ctx, query, memberID)
	if err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("DocumentRepository.ListDocumentsByMember - query failed: %w", err)}
	}
	defer rows.Close()

	documents := make([]entities.Document, 0)
	for rows.Next() {
		var document entities.Document
		if err := rows.Scan(&document.ID, &document.MemberID, &document.Title, &document.DocType, &document.StorageKey, &document.FileName, &document.ContentType, &document.CreatedAt); err != nil {
			return nil, &domain.StorageError{Err: fmt.Errorf("DocumentRepository.ListDocumentsByMember - failed to scan document: %w", err)}
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("DocumentRepository.ListDocumentsByMember - error iterating rows: %w", err)}
	}

	return documents, nil
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, documentID int64) error {
	tag, err := r.writePool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("DocumentRepository.DeleteDocument - delete failed: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DocumentRepository.DeleteDocument - document %d: %w", documentID, domain.ErrDocumentNotFound)
	}

	return nil
}
