package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

// MemorySessionStore keeps sessions in process memory. Sessions never expire.
// States are stored serialised so callers never share a pointer with the store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string][]byte{}}
}

func (m *MemorySessionStore) GetOrCreate(_ context.Context, sessionID string) (*model.SessionState, error) {
	m.mu.RLock()
	b, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return model.NewSessionState(sessionID), nil
	}
	state, err := decodeSession(b)
	if err != nil {
		return nil, errx.Internal(fmt.Errorf("unmarshal session %s: %w", sessionID, err))
	}
	return state, nil
}

func (m *MemorySessionStore) Save(_ context.Context, sessionID string, state *model.SessionState) error {
	state.SessionID = sessionID
	state.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(state)
	if err != nil {
		return errx.Internal(fmt.Errorf("marshal session: %w", err))
	}
	m.mu.Lock()
	m.sessions[sessionID] = b
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ model.SessionStore = (*MemorySessionStore)(nil)
