// Package api defines the wire types of the chat endpoint.
package api

import (
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// ChatRequest is the body of POST /chat. ConversationID is empty on the
// first message of a new conversation.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// AgentDescriptor is the static registry snapshot entry included in every
// response so clients can render the agent graph.
type AgentDescriptor struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Handoffs        []string `json:"handoffs"`
	Tools           []string `json:"tools"`
	InputGuardrails []string `json:"input_guardrails"`
}

// ChatResponse is the envelope of one turn: the assistant messages, the
// orchestration event timeline, the updated context, the full agent
// registry snapshot, and the guardrail outcomes.
type ChatResponse struct {
	ConversationID string                 `json:"conversation_id"`
	CurrentAgent   string                 `json:"current_agent"`
	Messages       []types.TurnMessage    `json:"messages"`
	Events         []types.AgentEvent     `json:"events"`
	Context        types.Context          `json:"context"`
	Agents         []AgentDescriptor      `json:"agents"`
	Guardrails     []types.GuardrailCheck `json:"guardrails"`
}
