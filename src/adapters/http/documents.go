package http

import (
	"encoding/json"
	"net/http"

	"familygraph/src/domain/entities"
)

func (s *Server) AttachDocument(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	var request DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	document, err := s.documentService.AttachDocument(
		r.Context(),
		memberID,
		request.Title,
		entities.DocumentType(request.DocType),
		request.FileName,
		request.ContentType,
	)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, document)
}

func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	documents, err := s.documentService.ListDocuments(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, documents)
}

func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid document ID format"})
		return
	}

	if err := s.documentService.DeleteDocument(r.Context(), documentID); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
