package stubs

import (
	"time"

	"familygraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type RelationshipStub struct {
	relationship entities.Relationship
}

func NewRelationshipStub() RelationshipStub {
	relationship := entities.Relationship{
		ID:           gofakeit.Int64(),
		FromMemberID: gofakeit.Int64(),
		ToMemberID:   gofakeit.Int64(),
		RelationType: entities.RelationSpouse,
		CreatedAt:    time.Now().UTC(),
	}

	return RelationshipStub{relationship: relationship}
}

func (rs RelationshipStub) WithFromMemberID(fromMemberID int64) RelationshipStub {
	rs.relationship.FromMemberID = fromMemberID
	return rs
}

func (rs RelationshipStub) WithToMemberID(toMemberID int64) RelationshipStub {
	rs.relationship.ToMemberID = toMemberID
	return rs
}

func (rs RelationshipStub) WithRelationType(relationType entities.RelationType) RelationshipStub {
	rs.relationship.RelationType = relationType
	return rs
}

func (rs RelationshipStub) Get() entities.Relationship {
	return rs.relationship
}
