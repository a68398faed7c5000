package family

import (
	"context"
	"fmt"
	"time"

	"familygraph/src/domain"
)

// CreateMember insere o membro e materializa as declarações de
// parentesco (com as recíprocas sintetizadas) em uma única transação.
func (s *FamilyService) CreateMember(ctx context.Context, fields domain.MemberFields, declarations []domain.RelationshipDeclaration) (*domain.MemberWithRelationships, error) {
	if err := s.validateMemberFields(fields); err != nil {
		return nil, err
	}

	// O id ainda não existe; auto-relação é impossível neste caminho e o
	// CHECK do banco cobre o resto.
	if err := domain.ValidateDeclarations(0, declarations); err != nil {
		return nil, err
	}

	memberID, err := s.memberWriteRepository.CreateMember(ctx, fields, declarations)
	if err != nil {
		return nil, err
	}

	member, err := s.memberQueryRepository.GetMemberWithRelationships(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("FamilyService.CreateMember - failed to reload member %d: %w", memberID, err)
	}

	s.publishEvent(ctx, domain.DomainEvent{
		EventType:  domain.EventMemberCreated,
		MemberID:   memberID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Member:     &member.Member,
	})

	return member, nil
}
