package family

import (
	"context"
	"time"

	"familygraph/src/domain"
)

// DeleteMember remove o membro com cascata completa: arestas nas duas
// direções, timeline e documentos, tudo na mesma transação.
func (s *FamilyService) DeleteMember(ctx context.Context, memberID int64) error {
	if memberID <= 0 {
		return &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}

	if err := s.memberWriteRepository.DeleteMember(ctx, memberID); err != nil {
		return err
	}

	s.publishEvent(ctx, domain.DomainEvent{
		EventType:  domain.EventMemberDeleted,
		MemberID:   memberID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return nil
}
