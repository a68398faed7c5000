package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func parseIDParam(r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.familyService.ListMembers(r.Context())
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	response := make([]*MemberDTO, 0, len(members))
	for _, member := range members {
		response = append(response, MapMemberToResponse(member))
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	member, err := s.familyService.GetMemberWithRelationships(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MapMemberToResponse(member))
}

func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	var request MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	fields, err := request.toMemberFields()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	member, err := s.familyService.CreateMember(r.Context(), fields, toDeclarations(request.Relationships))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, MapMemberToResponse(member))
}

func (s *Server) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	var request MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	fields, err := request.toMemberFields()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	member, err := s.familyService.UpdateMember(r.Context(), memberID, fields, toDeclarations(request.Relationships))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MapMemberToResponse(member))
}

func (s *Server) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	if err := s.familyService.DeleteMember(r.Context(), memberID); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
