package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

const sessionCookie = "amele_session"

type adminLoginRequest struct {
	Password string `json:"password"`
}

// handleAdminLogin выдает сессионную cookie по статическому паролю из конфига.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AdminPassword == "" {
		s.writeError(w, http.StatusForbidden, "admin access disabled")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) != 1 {
		s.writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	token := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
	})

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin пускает по сессионной cookie или по ?secret= из конфига.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookie); err == nil && s.sessions.Valid(cookie.Value) {
			next.ServeHTTP(w, r)
			return
		}

		secret := r.URL.Query().Get("secret")
		if s.cfg.AdminSecret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.AdminSecret)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		s.writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orders.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.orders.ListAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "orders unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"orders": list,
		"count":  len(list),
	})
}
