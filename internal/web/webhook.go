package web

import (
	"encoding/json"
	"mime"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleWebhook принимает update от Telegram. Только application/json.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		s.writeError(w, http.StatusBadRequest, "content-type must be application/json")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	// Telegram повторяет доставку при не-2xx, поэтому ошибки роутера
	// логируются внутри, а вебхук всегда отвечает 200.
	_ = s.updates.Route(&update)

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
