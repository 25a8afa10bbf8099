// Package store holds per-conversation state between turns. The only
// implementation is an in-memory map: persistence across restarts is out of
// scope for this demo, and conversations are never evicted, so the map grows
// for the lifetime of the process.
package store

import (
	"context"

	"github.com/hreis1/openai-cs-agents-demo/types"
)

// ConversationState is everything persisted for one conversation: the
// append-only input history, the shared context, and the name of the agent
// that owns the next turn.
type ConversationState struct {
	ID           string
	InputItems   []types.InputItem
	Context      types.Context
	CurrentAgent string
}

// ConversationStore is the key/value contract the request handler consumes.
// Acquire serializes turns for a single conversation id: concurrent requests
// for different ids proceed in parallel, concurrent requests for the same id
// queue up instead of racing on history and context.
type ConversationStore interface {
	// Get returns the state for a conversation id, or false if unknown.
	Get(id string) (*ConversationState, bool)
	// Create allocates a fresh conversation with a generated id, a new
	// context, and the triage agent active.
	Create() *ConversationState
	// Save persists the state under its conversation id.
	Save(state *ConversationState)
	// Acquire locks the conversation and returns the unlock function.
	Acquire(id string) func()
	// Len reports the number of live conversations.
	Len() int
	// Ping reports whether the store is usable.
	Ping(ctx context.Context) error
	// Close marks the store closed.
	Close() error
}
