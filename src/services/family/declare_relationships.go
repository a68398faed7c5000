package family

import (
	"context"
	"fmt"
	"time"

	"familygraph/src/domain"
)

// DeclareRelationships adiciona declarações a um membro existente.
// Contrato completo do motor: validação atômica da lista, checagem de
// existência dos relacionados, cruzamento contra o grafo atual (a aresta
// ou sua recíproca já presente rejeita o pedido) e síntese das
// recíprocas, tudo aplicado como um único lote transacional.
func (s *FamilyService) DeclareRelationships(ctx context.Context, memberID int64, declarations []domain.RelationshipDeclaration) (*domain.MemberWithRelationships, error) {
	if len(declarations) == 0 {
		return nil, &domain.ValidationError{Field: "relationships", Message: "must contain at least one declaration"}
	}

	if err := domain.ValidateDeclarations(memberID, declarations); err != nil {
		return nil, err
	}

	if err := s.memberWriteRepository.AddRelationships(ctx, memberID, declarations); err != nil {
		return nil, err
	}

	member, err := s.memberQueryRepository.GetMemberWithRelationships(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("FamilyService.DeclareRelationships - failed to reload member %d: %w", memberID, err)
	}

	s.publishEvent(ctx, domain.DomainEvent{
		EventType:  domain.EventRelationshipCreated,
		MemberID:   memberID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Member:     &member.Member,
	})

	return member, nil
}
