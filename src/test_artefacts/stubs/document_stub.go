package stubs

import (
	"fmt"
	"time"

	"familygraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type DocumentStub struct {
	document entities.Document
}

func NewDocumentStub() DocumentStub {
	fileName := fmt.Sprintf("%s.jpg", gofakeit.Word())

	document := entities.Document{
		ID:          gofakeit.Int64(),
		MemberID:    gofakeit.Int64(),
		Title:       gofakeit.Sentence(3),
		DocType:     entities.DocumentPhoto,
		StorageKey:  fmt.Sprintf("members/%d/%s", gofakeit.Int64(), gofakeit.UUID()),
		FileName:    fileName,
		ContentType: "image/jpeg",
		CreatedAt:   time.Now().UTC(),
	}

	return DocumentStub{document: document}
}

func (ds DocumentStub) WithMemberID(memberID int64) DocumentStub {
	ds.document.MemberID = memberID
	return ds
}

func (ds DocumentStub) WithDocType(docType entities.DocumentType) DocumentStub {
	ds.document.DocType = docType
	return ds
}

func (ds DocumentStub) Get() entities.Document {
	return ds.document
}
