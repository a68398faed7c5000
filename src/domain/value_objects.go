package domain

import (
	"errors"
	"fmt"
	"time"

	"familygraph/src/domain/entities"
)

var (
	ErrMemberNotFound = errors.New("family member not found")

	ErrRelationshipNotFound = errors.New("relationship not found")

	ErrEventNotFound = errors.New("timeline event not found")

	ErrDocumentNotFound = errors.New("document not found")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############# TAXONOMIA DE ERROS DO MOTOR ##################
// ############################################################

// Entrada malformada, corrigível pelo chamador (4xx).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Declaração aponta para um membro que não existe. A falha de FK do
// banco não substitui este erro: checamos existência antes do insert.
type ReferenceError struct {
	MemberID int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced member %d does not exist", e.MemberID)
}

// Pedido conflita com uma aresta já presente no grafo (ou sua recíproca).
type DuplicateRelationshipError struct {
	FromMemberID int64
	ToMemberID   int64
	RelationType entities.RelationType
}

func (e *DuplicateRelationshipError) Error() string {
	// A tradução da violação de constraint não sabe qual tripla colidiu.
	if e.FromMemberID == 0 && e.ToMemberID == 0 {
		return "relationship already exists"
	}
	return fmt.Sprintf("relationship (%d, %d, %s) already exists", e.FromMemberID, e.ToMemberID, e.RelationType)
}

// Falha de transação/conexão. A mensagem exposta é genérica; o erro
// original fica encadeado só para log.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return ErrUnavailableServer.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ############################################################
// ########## PROCESSO DE LEITURA (PRESENTATION) ##############
// ############################################################

// MemberWithRelationships é o shape que a camada de apresentação consome:
// o membro e sua lista de arestas de saída, em ordem de inserção, cada
// uma já anotada com o nome do membro relacionado (evita segunda viagem).
type MemberWithRelationships struct {
	entities.Member

	Relationships []RelationshipEntry
}

type RelationshipEntry struct {
	ID               int64                 `json:"id"`
	RelatedPersonID  int64                 `json:"related_person_id"`
	RelationType     entities.RelationType `json:"relation_type"`
	RelatedFirstName string                `json:"related_first_name"`
	RelatedLastName  string                `json:"related_last_name"`
}

// TreeRow é a linha crua do walk recursivo no banco: o membro e as
// arestas pelas quais ele foi alcançado dentro do recorte de profundidade.
type TreeRow struct {
	entities.Member

	OriginsInfo []OriginInfo
}

// OriginInfo descreve uma aresta de chegada no walk.
type OriginInfo struct {
	OriginID int64                 `json:"origin_id"`
	Type     entities.RelationType `json:"type"`
}

// FamilyTreeNode é o nó recursivo entregue ao renderizador de árvore.
type FamilyTreeNode struct {
	entities.Member

	Edges []*FamilyTreeEdge
}

type FamilyTreeEdge struct {
	Type   entities.RelationType
	Member *FamilyTreeNode
}

// ############################################################
// ########## PROCESSO DE ESCRITA (DECLARAÇÕES) ###############
// ############################################################

// RelationshipDeclaration é a entrada do motor de consistência: "o membro
// alvo tem RelationType em direção a RelatedPersonID".
type RelationshipDeclaration struct {
	RelatedPersonID int64
	RelationType    entities.RelationType
}

// MemberFields carrega os campos escalares de um create/update de membro
// (replace integral no update). Datas já parseadas pelo adapter HTTP.
type MemberFields struct {
	FirstName       string
	LastName        string
	Gender          string
	BirthDate       *time.Time
	DeathDate       *time.Time
	BirthPlace      *string
	CurrentLocation *string
	Biography       *string
}

// ############################################################
// ############### EVENTOS DE DOMÍNIO #########################
// ############################################################

const (
	EventMemberCreated       = "member.created"
	EventMemberUpdated       = "member.updated"
	EventMemberDeleted       = "member.deleted"
	EventRelationshipCreated = "relationship.declared"
	EventRelationshipRemoved = "relationship.removed"
)

type DomainEvent struct {
	EventType  string `json:"event_type"`
	MemberID   int64  `json:"member_id"`
	OccurredAt string `json:"occurred_at"`
	// Snapshot do agregado no momento do evento, quando aplicável.
	Member        *entities.Member        `json:"member,omitempty"`
	Relationships []entities.Relationship `json:"relationships,omitempty"`
}
