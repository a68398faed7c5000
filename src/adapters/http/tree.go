package http

import (
	"net/http"
	"strconv"
)

func (s *Server) GetFamilyTree(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	depthLimit := 5 // Default value
	if depthLimitStr := r.URL.Query().Get("depthLimit"); depthLimitStr != "" {
		var err error
		depthLimit, err = strconv.Atoi(depthLimitStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid depthLimit format"})
			return
		}
	}

	tree, err := s.familyService.GetFamilyTree(r.Context(), memberID, depthLimit)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MapTreeToResponse(tree))
}
