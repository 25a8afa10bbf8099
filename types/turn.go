package types

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation input item.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// InputItem is one entry in a conversation's append-only history.
type InputItem struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TurnMessage is an assistant-visible message produced during a turn,
// attributed to the agent persona that said it.
type TurnMessage struct {
	Content string `json:"content"`
	Agent   string `json:"agent"`
}

// EventType classifies an orchestration event.
type EventType string

const (
	EventHandoff       EventType = "handoff"
	EventToolCall      EventType = "tool_call"
	EventContextUpdate EventType = "context_update"
)

// AgentEvent records one orchestration step of a turn: an agent handoff, a
// tool invocation, or a context update. Events are ephemeral; they are built
// fresh per turn and returned in the response, never persisted.
type AgentEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Agent     string         `json:"agent"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// NewAgentEvent creates an event with a generated id and the current
// timestamp in epoch milliseconds.
func NewAgentEvent(eventType EventType, agent, content string, metadata map[string]any) AgentEvent {
	return AgentEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Agent:     agent,
		Content:   content,
		Metadata:  metadata,
		Timestamp: time.Now().UnixMilli(),
	}
}

// GuardrailCheck is the outcome of evaluating one input guardrail against a
// user message. Like events, checks are per-turn ephemera.
type GuardrailCheck struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Input     string `json:"input"`
	Reasoning string `json:"reasoning"`
	Passed    bool   `json:"passed"`
	Timestamp int64  `json:"timestamp"`
}

// NewGuardrailCheck creates a check record with a generated id and the
// current timestamp in epoch milliseconds.
func NewGuardrailCheck(name, input, reasoning string, passed bool) GuardrailCheck {
	return GuardrailCheck{
		ID:        uuid.NewString(),
		Name:      name,
		Input:     input,
		Reasoning: reasoning,
		Passed:    passed,
		Timestamp: time.Now().UnixMilli(),
	}
}
