package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"familygraph/src/services/documents"
	"familygraph/src/services/family"
	"familygraph/src/services/timeline"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger          *slog.Logger
	server          *http.Server
	mux             *http.ServeMux
	port            int
	adminToken      string
	familyService   *family.FamilyService
	timelineService *timeline.TimelineService
	documentService *documents.DocumentService
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	adminToken string,
	familyService *family.FamilyService,
	timelineService *timeline.TimelineService,
	documentService *documents.DocumentService,
) *Server {
	server := &Server{
		mux:             http.NewServeMux(),
		port:            port,
		logger:          logger,
		adminToken:      adminToken,
		familyService:   familyService,
		timelineService: timelineService,
		documentService: documentService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /api/family-members", server.ListMembers)
	server.mux.HandleFunc("GET /api/family-members/{id}", server.GetMember)
	server.mux.HandleFunc("GET /api/family-members/{id}/tree", server.GetFamilyTree)
	server.mux.HandleFunc("GET /api/family-members/{id}/timeline", server.ListTimelineEvents)
	server.mux.HandleFunc("GET /api/family-members/{id}/documents", server.ListDocuments)

	// Rotas de Escrita (protegidas pelo token de admin)
	server.mux.HandleFunc("POST /api/family-members", server.requireAdmin(server.CreateMember))
	server.mux.HandleFunc("PUT /api/family-members/{id}", server.requireAdmin(server.UpdateMember))
	server.mux.HandleFunc("DELETE /api/family-members/{id}", server.requireAdmin(server.DeleteMember))
	server.mux.HandleFunc("POST /api/relationships", server.requireAdmin(server.DeclareRelationship))
	server.mux.HandleFunc("DELETE /api/relationships/{id}", server.requireAdmin(server.DeleteRelationship))
	server.mux.HandleFunc("POST /api/family-members/{id}/timeline", server.requireAdmin(server.AddTimelineEvent))
	server.mux.HandleFunc("DELETE /api/timeline-events/{id}", server.requireAdmin(server.DeleteTimelineEvent))
	server.mux.HandleFunc("POST /api/family-members/{id}/documents", server.requireAdmin(server.AttachDocument))
	server.mux.HandleFunc("DELETE /api/documents/{id}", server.requireAdmin(server.DeleteDocument))

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
