package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
)

const dateLayout = "2006-01-02"

// ############################################################
// ######################## REQUESTS ##########################
// ############################################################

type RelationshipDeclarationDTO struct {
	RelatedPersonID int64  `json:"related_person_id"`
	RelationType    string `json:"relation_type"`
}

// MemberRequest é o corpo de POST/PUT de membro. Datas são strings
// ISO-8601 ou null; string vazia é rejeitada, nunca tratada como null.
type MemberRequest struct {
	FirstName       string                       `json:"first_name"`
	LastName        string                       `json:"last_name"`
	Gender          string                       `json:"gender"`
	BirthDate       *string                      `json:"birth_date"`
	DeathDate       *string                      `json:"death_date"`
	BirthPlace      *string                      `json:"birth_place"`
	CurrentLocation *string                      `json:"current_location"`
	Biography       *string                      `json:"biography"`
	Relationships   []RelationshipDeclarationDTO `json:"relationships"`
}

type DeclareRelationshipRequest struct {
	MemberID        int64  `json:"member_id"`
	RelatedPersonID int64  `json:"related_person_id"`
	RelationType    string `json:"relation_type"`
}

type TimelineEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date"`
	EventType   string  `json:"event_type"`
	Location    *string `json:"location"`
}

type DocumentRequest struct {
	Title       string `json:"title"`
	DocType     string `json:"doc_type"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "must be an ISO-8601 date (YYYY-MM-DD) or null"}
	}
	return &parsed, nil
}

func (req MemberRequest) toMemberFields() (domain.MemberFields, error) {
	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return domain.MemberFields{}, err
	}

	deathDate, err := parseDate("death_date", req.DeathDate)
	if err != nil {
		return domain.MemberFields{}, err
	}

	return domain.MemberFields{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		BirthDate:       birthDate,
		DeathDate:       deathDate,
		BirthPlace:      req.BirthPlace,
		CurrentLocation: req.CurrentLocation,
		Biography:       req.Biography,
	}, nil
}

func toDeclarations(dtos []RelationshipDeclarationDTO) []domain.RelationshipDeclaration {
	declarations := make([]domain.RelationshipDeclaration, 0, len(dtos))
	for _, dto := range dtos {
		declarations = append(declarations, domain.RelationshipDeclaration{
			RelatedPersonID: dto.RelatedPersonID,
			RelationType:    entities.RelationType(dto.RelationType),
		})
	}
	return declarations
}

// ############################################################
// ######################## RESPONSES #########################
// ############################################################

type MemberDTO struct {
	ID              int64                      `json:"id"`
	FirstName       string                     `json:"first_name"`
	LastName        string                     `json:"last_name"`
	Gender          string                     `json:"gender"`
	BirthDate       *string                    `json:"birth_date"`
	DeathDate       *string                    `json:"death_date"`
	BirthPlace      *string                    `json:"birth_place"`
	CurrentLocation *string                    `json:"current_location"`
	Biography       *string                    `json:"biography"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	Relationships   []domain.RelationshipEntry `json:"relationships"`
}

type FamilyTreeNodeDTO struct {
	ID        int64                `json:"id"`
	FirstName string               `json:"first_name"`
	LastName  string               `json:"last_name"`
	Gender    string               `json:"gender"`
	BirthDate *string              `json:"birth_date"`
	DeathDate *string              `json:"death_date"`
	Edges     []*FamilyTreeEdgeDTO `json:"edges"`
}

type FamilyTreeEdgeDTO struct {
	Type   entities.RelationType `json:"type"`
	Member *FamilyTreeNodeDTO    `json:"member"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}

func MapMemberToResponse(member *domain.MemberWithRelationships) *MemberDTO {
	if member == nil {
		return nil
	}

	relationships := member.Relationships
	if relationships == nil {
		relationships = []domain.RelationshipEntry{}
	}

	return &MemberDTO{
		ID:              member.ID,
		FirstName:       member.FirstName,
		LastName:        member.LastName,
		Gender:          member.Gender,
		BirthDate:       formatDate(member.BirthDate),
		DeathDate:       formatDate(member.DeathDate),
		BirthPlace:      member.BirthPlace,
		CurrentLocation: member.CurrentLocation,
		Biography:       member.Biography,
		CreatedAt:       member.CreatedAt,
		UpdatedAt:       member.UpdatedAt,
		Relationships:   relationships,
	}
}

func MapTreeToResponse(node *domain.FamilyTreeNode) *FamilyTreeNodeDTO {
	if node == nil {
		return nil
	}

	dto := &FamilyTreeNodeDTO{
		ID:        node.ID,
		FirstName: node.FirstName,
		LastName:  node.LastName,
		Gender:    node.Gender,
		BirthDate: formatDate(node.BirthDate),
		DeathDate: formatDate(node.DeathDate),
		Edges:     make([]*FamilyTreeEdgeDTO, 0, len(node.Edges)),
	}

	for _, edge := range node.Edges {
		dto.Edges = append(dto.Edges, &FamilyTreeEdgeDTO{
			Type:   edge.Type,
			Member: MapTreeToResponse(edge.Member),
		})
	}

	return dto
}

// ############################################################
// #################### ERROS / ESCRITA #######################
// ############################################################

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeDomainError traduz a taxonomia de erros do motor em status HTTP.
// StorageError e qualquer coisa desconhecida viram 500 com mensagem
// genérica; o detalhe fica só no log.
func writeDomainError(w http.ResponseWriter, logger interface{ Error(string, ...any) }, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Field: validationErr.Field})
		return
	}

	var referenceErr *domain.ReferenceError
	if errors.As(err, &referenceErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: referenceErr.Error()})
		return
	}

	var duplicateErr *domain.DuplicateRelationshipError
	if errors.As(err, &duplicateErr) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: duplicateErr.Error()})
		return
	}

	if errors.Is(err, domain.ErrMemberNotFound) ||
		errors.Is(err, domain.ErrRelationshipNotFound) ||
		errors.Is(err, domain.ErrEventNotFound) ||
		errors.Is(err, domain.ErrDocumentNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	logger.Error("Request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: domain.ErrUnavailableServer.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}
