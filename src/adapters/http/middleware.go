package http

import (
	"crypto/subtle"
	"net/http"
)

// requireAdmin guarda as rotas de escrita atrás de um token de servidor
// (header Authorization: Bearer <token>). Substitui a senha client-side
// da versão antiga; sessão de verdade fica fora deste serviço.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			// Sem token configurado o serviço roda aberto (dev/local).
			next(w, r)
			return
		}

		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		token := header[len(prefix):]
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "invalid token"})
			return
		}

		next(w, r)
	}
}
