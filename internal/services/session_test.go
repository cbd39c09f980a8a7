package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreGetCreatesOnce(t *testing.T) {
	store := &SessionStore{sessions: map[string]*Session{}, ttl: time.Minute}

	first := store.Get("628123")
	second := store.Get("628123")
	require.Same(t, first, second)
	require.Equal(t, "628123", first.ChatID)
	require.Equal(t, 1, store.ActiveSessions())
}

func TestSessionStoreCleanupExpired(t *testing.T) {
	store := &SessionStore{sessions: map[string]*Session{}, ttl: time.Minute}

	stale := store.Get("stale")
	stale.UpdatedAt = time.Now().Add(-2 * time.Minute)
	store.Get("fresh")

	store.CleanupExpiredSessions()

	require.Equal(t, 1, store.ActiveSessions())
	require.NotSame(t, stale, store.Get("stale"))
}

func TestSessionReset(t *testing.T) {
	sess := &Session{
		ChatID:          "628123",
		InComplaintFlow: true,
		Awaiting:        FieldEmail,
		Name:            "Alice",
		Phone:           "1234567890",
		Email:           "a@b.com",
		Details:         "package broken",
	}

	sess.Reset()

	require.False(t, sess.InComplaintFlow)
	require.Equal(t, FieldNone, sess.Awaiting)
	require.Empty(t, sess.Name)
	require.Empty(t, sess.Phone)
	require.Empty(t, sess.Email)
	require.Empty(t, sess.Details)
	require.Equal(t, "628123", sess.ChatID)
}
