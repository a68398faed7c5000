package repositories

import (
	"context"
	"fmt"
	"log"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MemberWriteRepository concentra toda mutação do grafo. Cada operação
// pública roda em uma única transação: ou o conjunto inteiro de arestas
// (declaradas + recíprocas) entra, ou nada entra.
type MemberWriteRepository struct {
	writePool              *pgxpool.Pool
	cachedMemberRepository *CachedMemberRepository
}

func NewMemberWriteRepository(writePool *pgxpool.Pool, cachedMemberRepository *CachedMemberRepository) *MemberWriteRepository {
	return &MemberWriteRepository{writePool: writePool, cachedMemberRepository: cachedMemberRepository}
}

// CreateMember insere o membro e o conjunto completo de arestas na mesma
// transação. As declarações já chegam validadas; a existência dos
// relacionados é checada aqui, dentro da transação.
func (r *MemberWriteRepository) CreateMember(ctx context.Context, fields domain.MemberFields, declarations []domain.RelationshipDeclaration) (int64, error) {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return 0, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.CreateMember - failed to begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO family_members
			(first_name, last_name, gender, birth_date, death_date, birth_place, current_location, biography)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`

	var memberID int64
	err = tx.QueryRow(ctx, insertQuery,
		fields.FirstName,
		fields.LastName,
		fields.Gender,
		postgres.NewNullDate(fields.BirthDate),
		postgres.NewNullDate(fields.DeathDate),
		postgres.NewNullString(fields.BirthPlace),
		postgres.NewNullString(fields.CurrentLocation),
		postgres.NewNullString(fields.Biography),
	).Scan(&memberID)
	if err != nil {
		return 0, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.CreateMember - member insert failed: %w", err)}
	}

	if err := r.ensureMembersExist(ctx, tx, domain.RelatedMemberIDs(declarations)); err != nil {
		return 0, err
	}

	if err := r.insertEdges(ctx, tx, domain.SynthesizeEdges(memberID, declarations)); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.CreateMember - commit failed: %w", err)}
	}

	r.invalidateInBackground(append(domain.RelatedMemberIDs(declarations), memberID))

	return memberID, nil
}

// UpdateMember faz replace integral dos escalares e substitui o conjunto
// de relacionamentos do membro: toda aresta que o toca, em qualquer
// direção, é apagada antes do novo conjunto entrar. Uma recíproca velha
// apontando para o membro a partir de alguém agora não relacionado não
// pode sobreviver.
func (r *MemberWriteRepository) UpdateMember(ctx context.Context, memberID int64, fields domain.MemberFields, declarations []domain.RelationshipDeclaration) error {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.UpdateMember - failed to begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE family_members SET
			first_name = $2,
			last_name = $3,
			gender = $4,
			birth_date = $5,
			death_date = $6,
			birth_place = $7,
			current_location = $8,
			biography = $9,
			updated_at = NOW()
		WHERE id = $1;
	`

	tag, err := tx.Exec(ctx, updateQuery,
		memberID,
		fields.FirstName,
		fields.LastName,
		fields.Gender,
		postgres.NewNullDate(fields.BirthDate),
		postgres.NewNullDate(fields.DeathDate),
		postgres.NewNullString(fields.BirthPlace),
		postgres.NewNullString(fields.CurrentLocation),
		postgres.NewNullString(fields.Biography),
	)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.UpdateMember - member update failed: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("MemberWriteRepository.UpdateMember - member %d: %w", memberID, domain.ErrMemberNotFound)
	}

	formerCounterparts, err := r.deleteEdgesTouching(ctx, tx, memberID)
	if err != nil {
		return err
	}

	if err := r.ensureMembersExist(ctx, tx, domain.RelatedMemberIDs(declarations)); err != nil {
		return err
	}

	if err := r.insertEdges(ctx, tx, domain.SynthesizeEdges(memberID, declarations)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.UpdateMember - commit failed: %w", err)}
	}

	affected := append(domain.RelatedMemberIDs(declarations), formerCounterparts...)
	r.invalidateInBackground(append(affected, memberID))

	return nil
}

// AddRelationships é o caminho "declarar sobre membro existente": além
// da checagem de existência, cruza o pedido contra o grafo atual — a
// aresta ou sua recíproca já presente derruba o pedido inteiro.
func (r *MemberWriteRepository) AddRelationships(ctx context.Context, memberID int64, declarations []domain.RelationshipDeclaration) error {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.AddRelationships - failed to begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	if err := r.ensureMemberExists(ctx, tx, memberID); err != nil {
		return err
	}

	if err := r.ensureMembersExist(ctx, tx, domain.RelatedMemberIDs(declarations)); err != nil {
		return err
	}

	edges := domain.SynthesizeEdges(memberID, declarations)

	if err := r.ensureNoExistingEdges(ctx, tx, edges); err != nil {
		return err
	}

	if err := r.insertEdges(ctx, tx, edges); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.AddRelationships - commit failed: %w", err)}
	}

	r.invalidateInBackground(append(domain.RelatedMemberIDs(declarations), memberID))

	return nil
}

// DeleteMember remove o membro e, em cascata na mesma transação, toda
// aresta que o toca em qualquer direção, eventos de timeline e
// documentos. Tudo ou nada: nenhuma referência órfã sobrevive.
func (r *MemberWriteRepository) DeleteMember(ctx context.Context, memberID int64) error {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteMember - failed to begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	counterparts, err := r.deleteEdgesTouching(ctx, tx, memberID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM timeline_events WHERE member_id = $1`, memberID); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteMember - timeline cascade failed: %w", err)}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE member_id = $1`, memberID); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteMember - documents cascade failed: %w", err)}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM family_members WHERE id = $1`, memberID)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteMember - member delete failed: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("MemberWriteRepository.DeleteMember - member %d: %w", memberID, domain.ErrMemberNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteMember - commit failed: %w", err)}
	}

	r.invalidateInBackground(append(counterparts, memberID))

	return nil
}

// DeleteRelationship apaga uma aresta pelo próprio id E sua recíproca,
// preservando o invariante de simetria.
func (r *MemberWriteRepository) DeleteRelationship(ctx context.Context, relationshipID int64) (*entities.Relationship, error) {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteRelationship - failed to begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	var edge entities.Relationship
	err = tx.QueryRow(ctx, `
		DELETE FROM relationships WHERE id = $1
		RETURNING id, from_member_id, to_member_id, relation_type, created_at`, relationshipID,
	).Scan(&edge.ID, &edge.FromMemberID, &edge.ToMemberID, &edge.RelationType, &edge.CreatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("MemberWriteRepository.DeleteRelationship - relationship %d: %w", relationshipID, domain.ErrRelationshipNotFound)
		}
		return nil, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteRelationship - delete failed: %w", err)}
	}

	reciprocal := domain.EdgeSpec{
		FromMemberID: edge.FromMemberID,
		ToMemberID:   edge.ToMemberID,
		RelationType: edge.RelationType,
	}.Reciprocal()

	_, err = tx.Exec(ctx, `
		DELETE FROM relationships
		WHERE from_member_id = $1 AND to_member_id = $2 AND relation_type = $3`,
		reciprocal.FromMemberID, reciprocal.ToMemberID, reciprocal.RelationType,
	)
	if err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteRelationship - reciprocal delete failed: %w", err)}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("MemberWriteRepository.DeleteRelationship - commit failed: %w", err)}
	}

	r.invalidateInBackground([]int64{edge.FromMemberID, edge.ToMemberID})

	return &edge, nil
}

func (r *MemberWriteRepository) ensureMemberExists(ctx context.Context, tx pgx.Tx, memberID int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM family_members WHERE id = $1)`, memberID).Scan(&exists); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("member existence check failed: %w", err)}
	}
	if !exists {
		return fmt.Errorf("member %d: %w", memberID, domain.ErrMemberNotFound)
	}
	return nil
}

// ensureMembersExist valida os relacionados antes do insert. A falha de
// FK não serve como substituto: o chamador precisa de um ReferenceError
// claro apontando o id ausente.
func (r *MemberWriteRepository) ensureMembersExist(ctx context.Context, tx pgx.Tx, memberIDs []int64) error {
	if len(memberIDs) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `SELECT id FROM family_members WHERE id = ANY($1)`, memberIDs)
	if err != nil {
		return &domain.StorageError{Err: fmt.Errorf("related members existence check failed: %w", err)}
	}
	defer rows.Close()

	found := make(map[int64]struct{}, len(memberIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return &domain.StorageError{Err: fmt.Errorf("failed to scan member id: %w", err)}
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return &domain.StorageError{Err: fmt.Errorf("error iterating member ids: %w", err)}
	}

	for _, id := range memberIDs {
		if _, ok := found[id]; !ok {
			return &domain.ReferenceError{MemberID: id}
		}
	}

	return nil
}

func (r *MemberWriteRepository) ensureNoExistingEdges(ctx context.Context, tx pgx.Tx, edges []domain.EdgeSpec) error {
	if len(edges) == 0 {
		return nil
	}

	fromIDs := make([]int64, len(edges))
	toIDs := make([]int64, len(edges))
	types := make([]string, len(edges))
	for i, edge := range edges {
		fromIDs[i] = edge.FromMemberID
		toIDs[i] = edge.ToMemberID
		types[i] = string(edge.RelationType)
	}

	query := `
		SELECT r.from_member_id, r.to_member_id, r.relation_type
		FROM relationships r
		JOIN UNNEST($1::BIGINT[], $2::BIGINT[], $3::TEXT[]) AS req(from_id, to_id, rel_type)
			ON r.from_member_id = req.from_id
			AND r.to_member_id = req.to_id
			AND r.relation_type = req.rel_type
		LIMIT 1;
	`

	var conflict domain.DuplicateRelationshipError
	err := tx.QueryRow(ctx, query, fromIDs, toIDs, types).Scan(&conflict.FromMemberID, &conflict.ToMemberID, &conflict.RelationType)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil
		}
		return &domain.StorageError{Err: fmt.Errorf("duplicate edge check failed: %w", err)}
	}

	return &conflict
}

// insertEdges grava o lote completo em um único statement. A constraint
// única (from, to, type) é a última linha de defesa contra uma corrida
// que passe pelo check em memória; a violação vira
// DuplicateRelationshipError, nunca vaza crua.
func (r *MemberWriteRepository) insertEdges(ctx context.Context, tx pgx.Tx, edges []domain.EdgeSpec) error {
	if len(edges) == 0 {
		return nil
	}

	fromIDs := make([]int64, len(edges))
	toIDs := make([]int64, len(edges))
	types := make([]string, len(edges))
	for i, edge := range edges {
		fromIDs[i] = edge.FromMemberID
		toIDs[i] = edge.ToMemberID
		types[i] = string(edge.RelationType)
	}

	query := `
		INSERT INTO relationships (from_member_id, to_member_id, relation_type)
		SELECT from_id, to_id, rel_type
		FROM UNNEST($1::BIGINT[], $2::BIGINT[], $3::TEXT[]) AS req(from_id, to_id, rel_type);
	`

	if _, err := tx.Exec(ctx, query, fromIDs, toIDs, types); err != nil {
		if postgres.IsUniqueViolation(err) {
			return &domain.DuplicateRelationshipError{}
		}
		return &domain.StorageError{Err: fmt.Errorf("edge batch insert failed: %w", err)}
	}

	return nil
}

// deleteEdgesTouching apaga as duas direções e devolve os ids do outro
// lado de cada aresta removida, para invalidação de cache.
func (r *MemberWriteRepository) deleteEdgesTouching(ctx context.Context, tx pgx.Tx, memberID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, `
		DELETE FROM relationships
		WHERE from_member_id = $1 OR to_member_id = $1
		RETURNING from_member_id, to_member_id`, memberID)
	if err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("edge cascade delete failed: %w", err)}
	}
	defer rows.Close()

	counterpartSet := make(map[int64]struct{})
	for rows.Next() {
		var fromID, toID int64
		if err := rows.Scan(&fromID, &toID); err != nil {
			return nil, &domain.StorageError{Err: fmt.Errorf("failed to scan deleted edge: %w", err)}
		}
		if fromID != memberID {
			counterpartSet[fromID] = struct{}{}
		}
		if toID != memberID {
			counterpartSet[toID] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Err: fmt.Errorf("error iterating deleted edges: %w", err)}
	}

	counterparts := make([]int64, 0, len(counterpartSet))
	for id := range counterpartSet {
		counterparts = append(counterparts, id)
	}

	return counterparts, nil
}

// Invalidar cache em background, fora da transação.
func (r *MemberWriteRepository) invalidateInBackground(memberIDs []int64) {
	if r.cachedMemberRepository == nil || len(memberIDs) == 0 {
		return
	}

	go func() {
		if err := r.cachedMemberRepository.InvalidateByMemberIDs(context.Background(), memberIDs); err != nil {
			log.Printf("Failed to invalidate cache: %v", err)
		}
	}()
}
