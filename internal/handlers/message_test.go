package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/config"
	"github.com/stretchr/testify/require"
)

func TestSendMessageRequiresAPIKey(t *testing.T) {
	mw := &mockWhatsApp{}
	h := NewMessageHandler(mw, &config.Config{APIKey: "secret"})

	body := `{"phone":"628123","message":"hello"}`

	req := httptest.NewRequest(http.MethodPost, "/api/send-message", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.SendMessage(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/send-message", bytes.NewBufferString(body))
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	h.SendMessage(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "628123", mw.lastPhone)
	require.Equal(t, "hello", mw.lastMsg)
}

func TestSendMessageValidatesBody(t *testing.T) {
	h := NewMessageHandler(&mockWhatsApp{}, &config.Config{APIKey: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/send-message", bytes.NewBufferString(`{"phone":"","message":"hi"}`))
	req.Header.Set("X-API-Key", "secret")
	w := httptest.NewRecorder()
	h.SendMessage(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
