package http

import (
	"encoding/json"
	"net/http"
	"time"

	"familygraph/src/domain/entities"
)

func (s *Server) AddTimelineEvent(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	var request TimelineEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	eventDate, err := time.Parse(dateLayout, request.EventDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "event_date must be an ISO-8601 date (YYYY-MM-DD)", Field: "event_date"})
		return
	}

	event, err := s.timelineService.AddEvent(
		r.Context(),
		memberID,
		request.Title,
		request.Description,
		eventDate,
		entities.EventType(request.EventType),
		request.Location,
	)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) ListTimelineEvents(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member ID format"})
		return
	}

	events, err := s.timelineService.ListEvents(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) DeleteTimelineEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event ID format"})
		return
	}

	if err := s.timelineService.DeleteEvent(r.Context(), eventID); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
