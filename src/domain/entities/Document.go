package entities

import (
	"time"
)

type DocumentType string

const (
	DocumentPhoto       DocumentType = "photo"
	DocumentCertificate DocumentType = "certificate"
	DocumentRecord      DocumentType = "record"
)

func (dt DocumentType) IsValid() bool {
	switch dt {
	case DocumentPhoto, DocumentCertificate, DocumentRecord:
		return true
	}
	return false
}

// Referência de arquivo anexado a um membro. Guardamos apenas os
// metadados e a chave de storage; a mecânica de upload fica fora daqui.
type Document struct {
	ID          int64        `json:"id"`
	MemberID    int64        `json:"member_id"`
	Title       string       `json:"title"`
	DocType     DocumentType `json:"doc_type"`
	StorageKey  string       `json:"storage_key"`
	FileName    string       `json:"file_name"`
	ContentType string       `json:"content_type"`
	CreatedAt   time.Time    `json:"created_at"`
}
