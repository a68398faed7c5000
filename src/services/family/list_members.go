package family

import (
	"context"

	"familygraph/src/domain"
)

// ListMembers devolve todos os membros com seus relacionamentos; a
// listagem alimenta a grade da UI e não passa pelo cache.
func (s *FamilyService) ListMembers(ctx context.Context) ([]*domain.MemberWithRelationships, error) {
	return s.memberQueryRepository.ListMembersWithRelationships(ctx)
}
