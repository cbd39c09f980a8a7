package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/services"
)

// ChatHandler exposes the conversational core over plain HTTP so the
// assistant works without a paired WhatsApp device. Callers keep their
// session by echoing back the session_id from the first response.
type ChatHandler struct {
	router   *services.Router
	sessions *services.SessionStore
}

func NewChatHandler(router *services.Router, sessions *services.SessionStore) *ChatHandler {
	return &ChatHandler{
		router:   router,
		sessions: sessions,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = newSessionID()
	}

	sess := h.sessions.Get(sessionID)
	reply := h.router.Route(r.Context(), sess, message)

	writeJSON(w, http.StatusOK, &domain.ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
	})
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
