package family

import (
	"context"
	"time"

	"familygraph/src/domain"
)

// DeleteRelationship apaga uma aresta pelo id dela e também a recíproca.
// O invariante de simetria vale em repouso: uma direção sozinha nunca
// sobrevive a esta operação.
func (s *FamilyService) DeleteRelationship(ctx context.Context, relationshipID int64) error {
	if relationshipID <= 0 {
		return &domain.ValidationError{Field: "relationshipId", Message: "must be a positive integer"}
	}

	edge, err := s.memberWriteRepository.DeleteRelationship(ctx, relationshipID)
	if err != nil {
		return err
	}

	s.publishEvent(ctx, domain.DomainEvent{
		EventType:  domain.EventRelationshipRemoved,
		MemberID:   edge.FromMemberID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return nil
}
