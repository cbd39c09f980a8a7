package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/services"
	"github.com/stretchr/testify/require"
)

type stubAnswerService struct {
	answer string
}

func (s *stubAnswerService) Answer(ctx context.Context, question string) (string, error) {
	return s.answer, nil
}

func newTestChatHandler(t *testing.T) *ChatHandler {
	t.Helper()
	store, err := services.NewComplaintStore(filepath.Join(t.TempDir(), "complaints.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := services.NewComplaintService(store)
	router := services.NewRouter(services.NewIntakeController(svc), svc, &stubAnswerService{answer: "see our FAQ"})
	return NewChatHandler(router, services.NewSessionStore(30*time.Minute))
}

func chatTurn(t *testing.T, h *ChatHandler, sessionID, message string) domain.ChatResponse {
	t.Helper()
	body, err := json.Marshal(domain.ChatRequest{SessionID: sessionID, Message: message})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.Chat(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestChatAssignsSessionID(t *testing.T) {
	h := newTestChatHandler(t)

	resp := chatTurn(t, h, "", "hello there")
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "see our FAQ", resp.Reply)
}

func TestChatIntakeAcrossTurns(t *testing.T) {
	h := newTestChatHandler(t)

	first := chatTurn(t, h, "", "file a complaint")
	require.Contains(t, first.Reply, "Please provide your name")

	sid := first.SessionID
	chatTurn(t, h, sid, "Alice")
	chatTurn(t, h, sid, "1234567890")
	chatTurn(t, h, sid, "a@b.com")
	last := chatTurn(t, h, sid, "package broken")
	require.Contains(t, last.Reply, "registered successfully")
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := newTestChatHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"  "}`))
	w := httptest.NewRecorder()
	h.Chat(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
