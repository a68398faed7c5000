package documents

import (
	"context"
	"fmt"
	"path"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/repositories"

	"github.com/google/uuid"
)

// DocumentService registra metadados de anexos; o binário em si mora no
// object storage, fora do escopo do serviço.
type DocumentService struct {
	documentRepository *repositories.DocumentRepository
}

func NewDocumentService(documentRepository *repositories.DocumentRepository) *DocumentService {
	return &DocumentService{documentRepository: documentRepository}
}

func (s *DocumentService) AttachDocument(ctx context.Context, memberID int64, title string, docType entities.DocumentType, fileName string, contentType string) (*entities.Document, error) {
	if memberID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "is required"}
	}
	if !docType.IsValid() {
		return nil, &domain.ValidationError{Field: "docType", Message: "must be one of photo, certificate, record"}
	}
	if fileName == "" {
		return nil, &domain.ValidationError{Field: "fileName", Message: "is required"}
	}

	// Chave opaca; a extensão original é preservada para o storage.
	storageKey := fmt.Sprintf("members/%d/%s%s", memberID, uuid.NewString(), path.Ext(fileName))

	document := &entities.Document{
		MemberID:    memberID,
		Title:       title,
		DocType:     docType,
		StorageKey:  storageKey,
		FileName:    fileName,
		ContentType: contentType,
	}

	if err := s.documentRepository.InsertDocument(ctx, document); err != nil {
		return nil, err
	}

	return document, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, memberID int64) ([]entities.Document, error) {
	if memberID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}

	return s.documentRepository.ListDocumentsByMember(ctx, memberID)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, documentID int64) error {
	if documentID <= 0 {
		return &domain.ValidationError{Field: "documentId", Message: "must be a positive integer"}
	}

	return s.documentRepository.DeleteDocument(ctx, documentID)
}
