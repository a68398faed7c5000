package family

import (
	"context"
	"log/slog"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/repositories"
	"familygraph/src/services/events"
)

// FamilyService é o motor de consistência de relacionamentos: toda
// mutação do grafo de membros passa por aqui.
type FamilyService struct {
	logger                 *slog.Logger
	cachedMemberRepository *repositories.CachedMemberRepository
	memberQueryRepository  *repositories.MemberQueryRepository
	memberWriteRepository  *repositories.MemberWriteRepository
	eventPublisher         *events.DomainEventPublisher
}

func NewFamilyService(
	logger *slog.Logger,
	cachedMemberRepository *repositories.CachedMemberRepository,
	memberQueryRepository *repositories.MemberQueryRepository,
	memberWriteRepository *repositories.MemberWriteRepository,
	eventPublisher *events.DomainEventPublisher,
) *FamilyService {
	return &FamilyService{
		logger:                 logger,
		cachedMemberRepository: cachedMemberRepository,
		memberQueryRepository:  memberQueryRepository,
		memberWriteRepository:  memberWriteRepository,
		eventPublisher:         eventPublisher,
	}
}

func (s *FamilyService) validateMemberFields(fields domain.MemberFields) error {
	if fields.FirstName == "" {
		return &domain.ValidationError{Field: "firstName", Message: "is required"}
	}
	if fields.LastName == "" {
		return &domain.ValidationError{Field: "lastName", Message: "is required"}
	}
	if fields.Gender == "" {
		return &domain.ValidationError{Field: "gender", Message: "is required"}
	}
	if fields.BirthDate != nil && fields.DeathDate != nil && fields.DeathDate.Before(*fields.BirthDate) {
		return &domain.ValidationError{Field: "deathDate", Message: "cannot precede birthDate"}
	}
	return nil
}

// publishEvent é fire-and-forget: falha de publicação nunca derruba a
// requisição que já commitou.
func (s *FamilyService) publishEvent(ctx context.Context, event domain.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish domain event",
			"error", err,
			"event_type", event.EventType,
			"member_id", event.MemberID)
	}
}

// buildFamilyTree remonta a árvore em memória a partir das linhas do
// walk recursivo: todos os nós primeiro, arestas depois. Como toda
// aresta tem recíproca, o grafo cru é cíclico; o BFS a partir da raiz
// materializa uma spanning tree — cada membro aparece uma única vez e a
// serialização recursiva termina.
func (s *FamilyService) buildFamilyTree(treeRows []domain.TreeRow, rootID int64) *domain.FamilyTreeNode {
	if len(treeRows) == 0 {
		return nil
	}

	allNodes := make(map[int64]*domain.FamilyTreeNode, len(treeRows))
	for _, row := range treeRows {
		allNodes[row.ID] = &domain.FamilyTreeNode{
			Member: row.Member,
			Edges:  make([]*domain.FamilyTreeEdge, 0),
		}
	}

	type adjacency struct {
		targetID int64
		relType  entities.RelationType
	}

	neighbors := make(map[int64][]adjacency, len(treeRows))
	for _, row := range treeRows {
		for _, origin := range row.OriginsInfo {
			neighbors[origin.OriginID] = append(neighbors[origin.OriginID], adjacency{
				targetID: row.ID,
				relType:  origin.Type,
			})
		}
	}

	root, ok := allNodes[rootID]
	if !ok {
		return nil
	}

	visited := map[int64]bool{rootID: true}
	queue := []int64{rootID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]
		currentNode := allNodes[currentID]

		for _, adj := range neighbors[currentID] {
			if visited[adj.targetID] {
				continue
			}
			targetNode, ok := allNodes[adj.targetID]
			if !ok {
				continue
			}

			visited[adj.targetID] = true
			currentNode.Edges = append(currentNode.Edges, &domain.FamilyTreeEdge{
				Type:   adj.relType,
				Member: targetNode,
			})
			queue = append(queue, adj.targetID)
		}
	}

	return root
}
