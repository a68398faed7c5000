package entities

import (
	"time"
)

// RelationType é o conjunto fechado de tipos de parentesco suportados.
type RelationType string

const (
	RelationParent RelationType = "parent"
	RelationChild  RelationType = "child"
	RelationSpouse RelationType = "spouse"
)

// IsValid reporta se o tipo pertence ao conjunto fechado.
func (rt RelationType) IsValid() bool {
	switch rt {
	case RelationParent, RelationChild, RelationSpouse:
		return true
	}
	return false
}

// Reciprocal é uma função total sobre os tipos válidos:
// parent<->child, spouse<->spouse.
func (rt RelationType) Reciprocal() RelationType {
	switch rt {
	case RelationParent:
		return RelationChild
	case RelationChild:
		return RelationParent
	default:
		return RelationSpouse
	}
}

// É a "aresta" direcionada do grafo: FromMemberID declara RelationType
// em direção a ToMemberID. A recíproca é sempre uma linha independente.
type Relationship struct {
	ID           int64        `json:"id"`
	FromMemberID int64        `json:"from_member_id"`
	ToMemberID   int64        `json:"to_member_id"`
	RelationType RelationType `json:"relation_type"`
	CreatedAt    time.Time    `json:"created_at"`
}
