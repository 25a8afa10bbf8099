package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hreis1/openai-cs-agents-demo/agent"
	"github.com/hreis1/openai-cs-agents-demo/agent/guardrails"
	"github.com/hreis1/openai-cs-agents-demo/api"
	"github.com/hreis1/openai-cs-agents-demo/internal/metrics"
	"github.com/hreis1/openai-cs-agents-demo/store"
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// refusalMessage is the fixed reply for guardrail-rejected input.
const refusalMessage = "Sorry, I can only answer questions related to airline travel."

// ChatHandler orchestrates one conversation turn: it resolves or creates
// the conversation state, runs the turn processor, diffs the context,
// assembles the guardrail outcomes, and persists the updated state.
type ChatHandler struct {
	store      store.ConversationStore
	runner     *agent.Runner
	registry   *agent.Registry
	guardrails *guardrails.Registry
	metrics    *metrics.Collector // optional
	logger     *zap.Logger
}

// NewChatHandler creates the chat handler. metrics may be nil.
func NewChatHandler(
	conversations store.ConversationStore,
	runner *agent.Runner,
	registry *agent.Registry,
	guardrailRegistry *guardrails.Registry,
	collector *metrics.Collector,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		store:      conversations,
		runner:     runner,
		registry:   registry,
		guardrails: guardrailRegistry,
		metrics:    collector,
		logger:     logger.With(zap.String("component", "chat_handler")),
	}
}

// HandleChat serves POST /chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := types.NewError(types.ErrInvalidRequest, "method not allowed").
			WithHTTPStatus(http.StatusMethodNotAllowed)
		WriteError(w, err, h.logger)
		return
	}

	var req api.ChatRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	state, isNew := h.resolveState(req.ConversationID)

	// A new conversation opened with an empty message returns the freshly
	// created state without running a turn: the client gets its
	// conversation id and initial context up front.
	if isNew && strings.TrimSpace(req.Message) == "" {
		h.store.Save(state)
		h.setActiveConversations()
		h.logger.Info("conversation created",
			zap.String("conversation_id", state.ID),
		)
		WriteJSON(w, http.StatusOK, api.ChatResponse{
			ConversationID: state.ID,
			CurrentAgent:   state.CurrentAgent,
			Messages:       []types.TurnMessage{},
			Events:         []types.AgentEvent{},
			Context:        state.Context,
			Agents:         h.agentDescriptors(),
			Guardrails:     []types.GuardrailCheck{},
		})
		return
	}

	// Serialize turns per conversation id so concurrent requests cannot
	// interleave history or context updates.
	unlock := h.store.Acquire(state.ID)
	defer unlock()

	current := h.registry.GetOrTriage(state.CurrentAgent)
	state.InputItems = append(state.InputItems, types.InputItem{
		Role:    types.RoleUser,
		Content: req.Message,
	})
	oldContext := state.Context

	start := time.Now()
	result, err := h.runner.Run(current, state.InputItems, state.Context)
	if err != nil {
		var rejection *guardrails.RejectionError
		if errors.As(err, &rejection) {
			h.recordTurn(current.Name, "guardrail_rejected", time.Since(start))
			h.writeGuardrailRefusal(w, state, current, req.Message, rejection)
			return
		}

		h.recordTurn(current.Name, "error", time.Since(start))
		h.logger.Error("turn failed",
			zap.String("conversation_id", state.ID),
			zap.String("agent", current.Name),
			zap.Error(err),
		)
		if typed, ok := err.(*types.Error); ok {
			WriteError(w, typed, h.logger)
			return
		}
		WriteError(w, types.NewError(types.ErrInternalError, "turn processing failed").WithCause(err), h.logger)
		return
	}

	// Context diff runs exactly once per turn, appending a context_update
	// event only when at least one field changed.
	if changes := oldContext.Diff(result.Context); len(changes) > 0 {
		result.Events = append(result.Events, types.NewAgentEvent(
			types.EventContextUpdate,
			result.NextAgent,
			"",
			map[string]any{"changes": changes},
		))
	}

	for _, msg := range result.Messages {
		state.InputItems = append(state.InputItems, types.InputItem{
			Role:    types.RoleAssistant,
			Content: msg.Content,
		})
	}
	state.CurrentAgent = result.NextAgent
	state.Context = result.Context
	h.store.Save(state)
	h.setActiveConversations()

	next := h.registry.GetOrTriage(result.NextAgent)
	checks := make([]types.GuardrailCheck, 0, len(next.InputGuardrails))
	for _, id := range next.InputGuardrails {
		checks = append(checks, types.NewGuardrailCheck(h.guardrails.DisplayName(id), req.Message, "", true))
		h.recordGuardrailCheck(id, true)
	}

	h.recordTurn(current.Name, "ok", time.Since(start))
	h.recordEvents(result.Events)

	WriteJSON(w, http.StatusOK, api.ChatResponse{
		ConversationID: state.ID,
		CurrentAgent:   result.NextAgent,
		Messages:       result.Messages,
		Events:         result.Events,
		Context:        result.Context,
		Agents:         h.agentDescriptors(),
		Guardrails:     checks,
	})
}

// resolveState looks up the conversation or creates a fresh one for unknown
// or absent ids.
func (h *ChatHandler) resolveState(conversationID string) (*store.ConversationState, bool) {
	if conversationID != "" {
		if state, ok := h.store.Get(conversationID); ok {
			return state, false
		}
	}
	return h.store.Create(), true
}

// writeGuardrailRefusal converts a guardrail rejection into the refusal
// envelope: one check record per required guardrail (the triggering one
// failed, the rest passed), a single fixed refusal message, no events, and
// an unchanged context. The refusal is appended to the history so the
// transcript stays complete.
func (h *ChatHandler) writeGuardrailRefusal(
	w http.ResponseWriter,
	state *store.ConversationState,
	current agent.Agent,
	input string,
	rejection *guardrails.RejectionError,
) {
	checks := make([]types.GuardrailCheck, 0, len(current.InputGuardrails))
	for _, id := range current.InputGuardrails {
		passed := id != rejection.GuardrailID
		reasoning := ""
		if !passed {
			reasoning = rejection.Outcome.Reasoning
		}
		checks = append(checks, types.NewGuardrailCheck(h.guardrails.DisplayName(id), input, reasoning, passed))
		h.recordGuardrailCheck(id, passed)
	}

	state.InputItems = append(state.InputItems, types.InputItem{
		Role:    types.RoleAssistant,
		Content: refusalMessage,
	})
	h.store.Save(state)
	h.setActiveConversations()

	WriteJSON(w, http.StatusOK, api.ChatResponse{
		ConversationID: state.ID,
		CurrentAgent:   current.Name,
		Messages: []types.TurnMessage{
			{Content: refusalMessage, Agent: current.Name},
		},
		Events:     []types.AgentEvent{},
		Context:    state.Context,
		Agents:     h.agentDescriptors(),
		Guardrails: checks,
	})
}

// agentDescriptors snapshots the static registry for the response envelope.
func (h *ChatHandler) agentDescriptors() []api.AgentDescriptor {
	all := h.registry.All()
	out := make([]api.AgentDescriptor, 0, len(all))
	for _, a := range all {
		names := make([]string, 0, len(a.InputGuardrails))
		for _, id := range a.InputGuardrails {
			names = append(names, h.guardrails.DisplayName(id))
		}
		out = append(out, api.AgentDescriptor{
			Name:            a.Name,
			Description:     a.HandoffDescription,
			Handoffs:        append([]string{}, a.Handoffs...),
			Tools:           append([]string{}, a.Tools...),
			InputGuardrails: names,
		})
	}
	return out
}

func (h *ChatHandler) recordTurn(agentName, status string, duration time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordTurn(agentName, status, duration)
	}
}

func (h *ChatHandler) recordGuardrailCheck(id string, passed bool) {
	if h.metrics != nil {
		h.metrics.RecordGuardrailCheck(id, passed)
	}
}

func (h *ChatHandler) setActiveConversations() {
	if h.metrics != nil {
		h.metrics.SetActiveConversations(h.store.Len())
	}
}

func (h *ChatHandler) recordEvents(events []types.AgentEvent) {
	if h.metrics == nil {
		return
	}
	for _, ev := range events {
		switch ev.Type {
		case types.EventHandoff:
			from, _ := ev.Metadata["source_agent"].(string)
			to, _ := ev.Metadata["target_agent"].(string)
			h.metrics.RecordHandoff(from, to)
		case types.EventToolCall:
			h.metrics.RecordToolCall(ev.Content)
		}
	}
}
