package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberQueryRepository struct {
	pool *pgxpool.Pool
}

func NewMemberQueryRepository(pool *pgxpool.Pool) *MemberQueryRepository {
	return &MemberQueryRepository{pool: pool}
}

const memberColumns = `
	m.id, m.first_name, m.last_name, m.gender, m.birth_date, m.death_date,
	m.birth_place, m.current_location, m.biography, m.created_at, m.updated_at`

func scanMember(row interface{ Scan(...any) error }, member *entities.Member) error {
	return row.Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Gender,
		&member.BirthDate,
		&member.DeathDate,
		&member.BirthPlace,
		&member.CurrentLocation,
		&member.Biography,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
}

// GetMemberWithRelationships devolve o membro e suas arestas de saída em
// ordem de inserção, cada uma anotada com o nome do membro relacionado.
func (mqr *MemberQueryRepository) GetMemberWithRelationships(ctx context.Context, memberID int64) (*domain.MemberWithRelationships, error) {
	memberQuery := fmt.Sprintf(`SELECT %s FROM family_members m WHERE m.id = $1`, memberColumns)

	var member entities.Member
	if err := scanMember(mqr.pool.QueryRow(ctx, memberQuery, memberID), &member); err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("MemberQueryRepository.GetMemberWithRelationships - member %d: %w", memberID, domain.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("MemberQueryRepository.GetMemberWithRelationships - member query failed: %w", err)
	}

	entries, err := mqr.relationshipEntries(ctx, []int64{memberID})
	if err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.GetMemberWithRelationships - %w", err)
	}

	result := &domain.MemberWithRelationships{
		Member:        member,
		Relationships: entries[memberID],
	}
	if result.Relationships == nil {
		result.Relationships = []domain.RelationshipEntry{}
	}

	return result, nil
}

// ListMembersWithRelationships monta a lista completa em duas queries,
// nunca N+1.
func (mqr *MemberQueryRepository) ListMembersWithRelationships(ctx context.Context) ([]*domain.MemberWithRelationships, error) {
	membersQuery := fmt.Sprintf(`SELECT %s FROM family_members m ORDER BY m.id`, memberColumns)

	rows, err := mqr.pool.Query(ctx, membersQuery)
	if err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.ListMembersWithRelationships - members query failed: %w", err)
	}
	defer rows.Close()

	var members []*domain.MemberWithRelationships
	memberIDs := make([]int64, 0)

	for rows.Next() {
		var member entities.Member
		if err := scanMember(rows, &member); err != nil {
			return nil, fmt.Errorf("MemberQueryRepository.ListMembersWithRelationships - failed to scan member: %w", err)
		}

		members = append(members, &domain.MemberWithRelationships{
			Member:        member,
			Relationships: []domain.RelationshipEntry{},
		})
		memberIDs = append(memberIDs, member.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.ListMembersWithRelationships - error iterating member rows: %w", err)
	}

	if len(members) == 0 {
		return []*domain.MemberWithRelationships{}, nil
	}

	entries, err := mqr.relationshipEntries(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.ListMembersWithRelationships - %w", err)
	}

	for _, member := range members {
		if list, ok := entries[member.ID]; ok {
			member.Relationships = list
		}
	}

	return members, nil
}

func (mqr *MemberQueryRepository) relationshipEntries(ctx context.Context, memberIDs []int64) (map[int64][]domain.RelationshipEntry, error) {
	// ORDER BY r.id garante ordem de inserção estável dentro de um fetch.
	query := `
		SELECT
			r.id,
			r.from_member_id,
			r.to_member_id,
			r.relation_type,
			related.first_name,
			related.last_name
		FROM
			relationships r
		JOIN
			family_members related ON related.id = r.to_member_id
		WHERE
			r.from_member_id = ANY($1)
		ORDER BY
			r.id;
	`

	rows, err := mqr.pool.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("relationships query failed: %w", err)
	}
	defer rows.Close()

	entries := make(map[int64][]domain.RelationshipEntry)

	for rows.Next() {
		var entry domain.RelationshipEntry
		var fromMemberID int64

		if err := rows.Scan(&entry.ID, &fromMemberID, &entry.RelatedPersonID, &entry.RelationType, &entry.RelatedFirstName, &entry.RelatedLastName); err != nil {
			return nil, fmt.Errorf("failed to scan relationship entry: %w", err)
		}

		entries[fromMemberID] = append(entries[fromMemberID], entry)
	}

	return entries, rows.Err()
}

// QueryFamilyTree faz o walk recursivo a partir da raiz, limitado por
// profundidade. Como toda aresta tem recíproca gravada, seguir apenas
// from -> to alcança o componente inteiro dentro do recorte.
func (mqr *MemberQueryRepository) QueryFamilyTree(ctx context.Context, rootID int64, depthLimit int) ([]domain.TreeRow, error) {
	query := `
		WITH RECURSIVE member_graph (member_id, origin_id, relation_type, depth) AS (
			SELECT
				id,
				NULL::BIGINT,
				NULL::TEXT,
				0
			FROM
				family_members
			WHERE
				id = $1

			UNION ALL

			SELECT
				r.to_member_id,
				r.from_member_id,
				r.relation_type,
				mg.depth + 1
			FROM
				relationships r
			JOIN
				member_graph mg ON r.from_member_id = mg.member_id
			WHERE
				mg.depth < $2
		),
		member_relations AS (
			SELECT
				member_id,
				JSONB_AGG(DISTINCT jsonb_build_object('origin_id', origin_id, 'type', relation_type)) FILTER (WHERE origin_id IS NOT NULL) AS origins_info
			FROM
				member_graph
			GROUP
				BY member_id
		)
		SELECT
			m.id, m.first_name, m.last_name, m.gender, m.birth_date, m.death_date,
			m.birth_place, m.current_location, m.biography, m.created_at, m.updated_at,
			mr.origins_info
		FROM
			family_members m
		JOIN
			member_relations mr ON m.id = mr.member_id;
	`

	rows, err := mqr.pool.Query(ctx, query, rootID, depthLimit)
	if err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.QueryFamilyTree - tree query failed: %w", err)
	}
	defer rows.Close()

	var treeRows []domain.TreeRow

	for rows.Next() {
		var row domain.TreeRow
		var originsInfoRaw json.RawMessage

		if err := rows.Scan(
			&row.ID, &row.FirstName, &row.LastName, &row.Gender, &row.BirthDate, &row.DeathDate,
			&row.BirthPlace, &row.CurrentLocation, &row.Biography, &row.CreatedAt, &row.UpdatedAt,
			&originsInfoRaw,
		); err != nil {
			return nil, fmt.Errorf("MemberQueryRepository.QueryFamilyTree - failed to scan tree row: %w", err)
		}

		if len(originsInfoRaw) > 0 && string(originsInfoRaw) != "null" {
			if err := json.Unmarshal(originsInfoRaw, &row.OriginsInfo); err != nil {
				log.Printf("MemberQueryRepository.QueryFamilyTree - [WARN] could not unmarshal origins_info for member %d: %v", row.ID, err)
			}
		}

		treeRows = append(treeRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MemberQueryRepository.QueryFamilyTree - error iterating tree rows: %w", err)
	}

	if len(treeRows) == 0 {
		return nil, fmt.Errorf("MemberQueryRepository.QueryFamilyTree - member not found: %w", domain.ErrMemberNotFound)
	}

	return treeRows, nil
}
