package state

import (
	"sync"
	"time"
)

// State represents the interaction mode of a chat
type State string

const (
	// StateNormal is the normal state
	StateNormal State = "normal"
	// StateAwaitingIngredients is set after a bare /add, the next text message is the list
	StateAwaitingIngredients State = "awaiting_ingredients"
)

// DefaultTTL is how long a non-normal state survives without activity
const DefaultTTL = 10 * time.Minute

// ChatState represents the state of a chat
type ChatState struct {
	State     State
	Timestamp time.Time
}

// Manager manages chat states
type Manager struct {
	states map[int64]ChatState
	ttl    time.Duration
	now    func() time.Time
	mu     sync.Mutex
}

// New creates a new state manager
func New() *Manager {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a state manager with a custom expiry
func NewWithTTL(ttl time.Duration) *Manager {
	return &Manager{
		states: make(map[int64]ChatState),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetState sets the state for a chat
func (m *Manager) SetState(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == StateNormal {
		delete(m.states, chatID)
		return
	}
	m.states[chatID] = ChatState{
		State:     state,
		Timestamp: m.now(),
	}
}

// GetState gets the state for a chat, expiring it when it is older than the TTL
func (m *Manager) GetState(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[chatID]
	if !ok {
		return StateNormal
	}
	if m.now().Sub(st.Timestamp) > m.ttl {
		delete(m.states, chatID)
		return StateNormal
	}
	return st.State
}

// ClearState clears the state for a chat
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
