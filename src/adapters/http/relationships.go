package http

import (
	"encoding/json"
	"net/http"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
)

// DeclareRelationship é o caminho "aresta avulsa" da UI; por baixo roda
// o mesmo motor de declaração em lote, com a recíproca sintetizada.
func (s *Server) DeclareRelationship(w http.ResponseWriter, r *http.Request) {
	var request DeclareRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if request.MemberID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "member_id is required", Field: "member_id"})
		return
	}

	declarations := []domain.RelationshipDeclaration{{
		RelatedPersonID: request.RelatedPersonID,
		RelationType:    entities.RelationType(request.RelationType),
	}}

	member, err := s.familyService.DeclareRelationships(r.Context(), request.MemberID, declarations)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, MapMemberToResponse(member))
}

func (s *Server) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid relationship ID format"})
		return
	}

	if err := s.familyService.DeleteRelationship(r.Context(), relationshipID); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
