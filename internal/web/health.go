package web

import (
	"net/http"
	"time"
)

// handleHealth отдает снимок счетчиков для мониторинга.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orders.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"total_orders": stats.TotalOrders,
		"total_users":  stats.TotalUsers,
		"total_bots":   stats.TotalBots,
	})
}
