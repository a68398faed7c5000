package family

import (
	"context"

	"familygraph/src/domain"
)

// GetMemberWithRelationships lê pelo cache read-through; a lista de
// arestas sai em ordem de inserção, estável dentro de um fetch.
func (s *FamilyService) GetMemberWithRelationships(ctx context.Context, memberID int64) (*domain.MemberWithRelationships, error) {
	if memberID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}

	return s.cachedMemberRepository.GetMemberWithRelationships(ctx, memberID)
}
