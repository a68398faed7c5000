package domain

import (
	"fmt"

	"familygraph/src/domain/entities"
)

// EdgeSpec é uma aresta pronta para insert, ainda sem ID.
type EdgeSpec struct {
	FromMemberID int64
	ToMemberID   int64
	RelationType entities.RelationType
}

// Reciprocal devolve a aresta espelhada: (A,B,T) -> (B,A,reciprocal(T)).
func (e EdgeSpec) Reciprocal() EdgeSpec {
	return EdgeSpec{
		FromMemberID: e.ToMemberID,
		ToMemberID:   e.FromMemberID,
		RelationType: e.RelationType.Reciprocal(),
	}
}

// ValidateDeclarations roda o passo de validação do motor sobre a lista
// inteira antes de qualquer escrita: a rejeição é atômica, nada parcial.
// A primeira ocorrência de um par (relatedPersonId, relationType) vence;
// a repetição derruba o pedido todo. memberID zero significa "membro
// ainda sendo criado" e pula só a checagem de auto-relação.
func ValidateDeclarations(memberID int64, declarations []RelationshipDeclaration) error {
	if memberID < 0 {
		return &ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}

	seen := make(map[string]struct{}, len(declarations))

	for i, decl := range declarations {
		field := fmt.Sprintf("relationships[%d]", i)

		if decl.RelatedPersonID <= 0 {
			return &ValidationError{Field: field + ".relatedPersonId", Message: "must be a positive integer"}
		}

		if !decl.RelationType.IsValid() {
			return &ValidationError{
				Field:   field + ".relationType",
				Message: fmt.Sprintf("must be one of parent, child, spouse (got %q)", decl.RelationType),
			}
		}

		if memberID > 0 && decl.RelatedPersonID == memberID {
			return &ValidationError{Field: field + ".relatedPersonId", Message: "a member cannot relate to itself"}
		}

		key := fmt.Sprintf("%d:%s", decl.RelatedPersonID, decl.RelationType)
		if _, dup := seen[key]; dup {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate declaration (%d, %s) in request", decl.RelatedPersonID, decl.RelationType),
			}
		}
		seen[key] = struct{}{}
	}

	return nil
}

// SynthesizeEdges expande as declarações aceitas no conjunto completo de
// arestas a gravar: para cada (memberId, X, T) também a recíproca
// (X, memberId, reciprocal(T)). Spouse é simétrico por construção, o
// mesmo tipo nos dois sentidos.
func SynthesizeEdges(memberID int64, declarations []RelationshipDeclaration) []EdgeSpec {
	edges := make([]EdgeSpec, 0, len(declarations)*2)

	for _, decl := range declarations {
		forward := EdgeSpec{
			FromMemberID: memberID,
			ToMemberID:   decl.RelatedPersonID,
			RelationType: decl.RelationType,
		}

		edges = append(edges, forward, forward.Reciprocal())
	}

	return edges
}

// RelatedMemberIDs extrai os IDs referenciados, deduplicados, para o
// check de existência que antecede o insert.
func RelatedMemberIDs(declarations []RelationshipDeclaration) []int64 {
	seen := make(map[int64]struct{}, len(declarations))
	ids := make([]int64, 0, len(declarations))

	for _, decl := range declarations {
		if _, ok := seen[decl.RelatedPersonID]; ok {
			continue
		}
		seen[decl.RelatedPersonID] = struct{}{}
		ids = append(ids, decl.RelatedPersonID)
	}

	return ids
}
