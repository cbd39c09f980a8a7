package services

import (
	"sync"
	"time"
)

// IntakeField tracks which complaint field the intake flow expects next
type IntakeField int

const (
	FieldNone IntakeField = iota
	FieldName
	FieldPhone
	FieldEmail
	FieldDetails
)

// Session holds the intake state for one chat. A session is only ever
// touched by messages from its own chat, so fields need no extra locking.
type Session struct {
	ChatID          string
	InComplaintFlow bool
	Awaiting        IntakeField
	Name            string
	Phone           string
	Email           string
	Details         string
	UpdatedAt       time.Time
}

// Reset clears all intake progress and returns the session to idle
func (s *Session) Reset() {
	s.InComplaintFlow = false
	s.Awaiting = FieldNone
	s.Name = ""
	s.Phone = ""
	s.Email = ""
	s.Details = ""
}

// SessionStore keeps intake sessions in memory, keyed by chat ID.
// Sessions idle longer than ttl are discarded so an abandoned flow does
// not keep swallowing every later message from the same chat.
type SessionStore struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// Start cleanup goroutine
	go store.startCleanupRoutine()

	return store
}

// Get returns the session for the given chat, creating it when absent,
// and marks it as recently used.
func (s *SessionStore) Get(chatID string) *Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{ChatID: chatID}
		s.sessions[chatID] = sess
	}
	sess.UpdatedAt = time.Now()

	return sess
}

// CleanupExpiredSessions removes sessions idle for longer than the TTL
func (s *SessionStore) CleanupExpiredSessions() {
	cutoff := time.Now().Add(-s.ttl)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for chatID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, chatID)
		}
	}
}

// ActiveSessions returns the count of live sessions - for debugging
func (s *SessionStore) ActiveSessions() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) startCleanupRoutine() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.CleanupExpiredSessions()
	}
}
