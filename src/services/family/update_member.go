package family

import (
	"context"
	"fmt"
	"time"

	"familygraph/src/domain"
)

// UpdateMember faz replace integral dos escalares e do conjunto de
// relacionamentos do membro (spec de replace: apaga as duas direções
// antes de aplicar o novo conjunto). Chamar duas vezes com as mesmas
// declarações produz o mesmo grafo final.
func (s *FamilyService) UpdateMember(ctx context.Context, memberID int64, fields domain.MemberFields, declarations []domain.RelationshipDeclaration) (*domain.MemberWithRelationships, error) {
	if err := s.validateMemberFields(fields); err != nil {
		return nil, err
	}

	if err := domain.ValidateDeclarations(memberID, declarations); err != nil {
		return nil, err
	}

	if err := s.memberWriteRepository.UpdateMember(ctx, memberID, fields, declarations); err != nil {
		return nil, err
	}

	member, err := s.memberQueryRepository.GetMemberWithRelationships(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("FamilyService.UpdateMember - failed to reload member %d: %w", memberID, err)
	}

	s.publishEvent(ctx, domain.DomainEvent{
		EventType:  domain.EventMemberUpdated,
		MemberID:   memberID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Member:     &member.Member,
	})

	return member, nil
}
