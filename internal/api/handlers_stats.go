package api

import (
	"net/http"
)

func (s *Server) handleOperationStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":   s.store.Len(),
		"operations": s.store.Stats(),
	})
}
