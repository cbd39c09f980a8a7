package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
)

// MessageHandler lets support agents push a WhatsApp message to a user,
// e.g. to follow up on a filed complaint. API-key gated.
type MessageHandler struct {
	whatsappService domain.WhatsAppService
	config          domain.ConfigService
}

func NewMessageHandler(whatsappService domain.WhatsAppService, config domain.ConfigService) *MessageHandler {
	return &MessageHandler{
		whatsappService: whatsappService,
		config:          config,
	}
}

// SendMessage handles POST /api/send-message
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Validate API key
	key := r.Header.Get("X-API-Key")
	if key == "" {
		key = r.URL.Query().Get("api_key")
	}

	apiKey := h.config.GetAPIKey()
	if apiKey == "" || key != apiKey {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if req.Phone == "" {
		writeError(w, http.StatusBadRequest, "phone is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := h.whatsappService.SendMessage(r.Context(), req.Phone, req.Message); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, &domain.SendMessageResponse{
		Status: "sent",
		Phone:  req.Phone,
	})
}
