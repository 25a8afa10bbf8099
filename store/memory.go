package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hreis1/openai-cs-agents-demo/agent"
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// ErrStoreClosed is returned by Ping after Close.
var ErrStoreClosed = types.NewError(types.ErrInternalError, "conversation store is closed")

// MemoryConversationStore is the in-memory ConversationStore. Suitable for
// this demo's single-process deployment; data is lost on restart.
type MemoryConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*ConversationState
	locks         map[string]*sync.Mutex
	closed        bool
}

// NewMemoryConversationStore creates an empty store.
func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{
		conversations: make(map[string]*ConversationState),
		locks:         make(map[string]*sync.Mutex),
	}
}

// Get returns the state for a conversation id.
func (s *MemoryConversationStore) Get(id string) (*ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.conversations[id]
	return state, ok
}

// Create allocates a fresh conversation: generated id, new context with its
// account number assigned, empty history, triage agent active. The state is
// not persisted until Save.
func (s *MemoryConversationStore) Create() *ConversationState {
	return &ConversationState{
		ID:           uuid.NewString(),
		InputItems:   []types.InputItem{},
		Context:      types.NewContext(),
		CurrentAgent: agent.TriageAgentName,
	}
}

// Save persists the state under its conversation id.
func (s *MemoryConversationStore) Save(state *ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[state.ID] = state
}

// Acquire takes the per-conversation mutex, creating it on first use, and
// returns the unlock function. Turns for the same conversation id execute
// one at a time; turns for different ids do not contend.
func (s *MemoryConversationStore) Acquire(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Len reports the number of live conversations.
func (s *MemoryConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Ping reports whether the store is usable.
func (s *MemoryConversationStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Close marks the store closed.
func (s *MemoryConversationStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
