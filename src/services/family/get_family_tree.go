package family

import (
	"context"
	"fmt"

	"familygraph/src/domain"
)

// GetFamilyTree devolve a árvore enraizada no membro, limitada por
// profundidade, pronta para o renderizador.
func (s *FamilyService) GetFamilyTree(ctx context.Context, rootID int64, depthLimit int) (*domain.FamilyTreeNode, error) {
	if rootID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}
	if depthLimit < 1 {
		return nil, &domain.ValidationError{Field: "depthLimit", Message: "must be at least 1"}
	}

	treeRows, err := s.cachedMemberRepository.QueryFamilyTree(ctx, rootID, depthLimit)
	if err != nil {
		return nil, fmt.Errorf("FamilyService.GetFamilyTree - failed to query tree: %w", err)
	}

	root := s.buildFamilyTree(treeRows, rootID)
	if root == nil {
		return nil, fmt.Errorf("FamilyService.GetFamilyTree - root node (%d) could not be found after assembly: %w", rootID, domain.ErrMemberNotFound)
	}

	return root, nil
}
