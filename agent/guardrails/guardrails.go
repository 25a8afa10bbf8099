// Package guardrails implements the input checks that gate every turn: a
// relevance check that keeps the conversation on airline topics and a
// jailbreak check that blocks prompt-injection attempts. Both are stateless
// keyword classifiers standing in for model-based evaluation.
package guardrails

import (
	"fmt"
	"strings"
)

// Guardrail identifiers, referenced by agent definitions in declaration
// order.
const (
	RelevanceID = "relevance_guardrail"
	JailbreakID = "jailbreak_guardrail"
)

// Outcome is the result of evaluating a guardrail against a user message.
type Outcome struct {
	Passed    bool   `json:"passed"`
	Reasoning string `json:"reasoning"`
}

// Guardrail validates the most recent user utterance before an agent is
// allowed to process it.
type Guardrail interface {
	// ID returns the stable identifier used in agent definitions.
	ID() string
	// DisplayName returns the human-readable name shown in responses.
	DisplayName() string
	// Evaluate classifies a single user utterance. It must not inspect
	// conversation history or carry state between calls.
	Evaluate(text string) Outcome
}

// RejectionError aborts a turn when a required guardrail fails. It carries
// the failing guardrail's id and outcome so the caller can build the
// refusal response.
type RejectionError struct {
	GuardrailID string
	Outcome     Outcome
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	return fmt.Sprintf("guardrail %q rejected input: %s", e.GuardrailID, e.Outcome.Reasoning)
}

// relevanceGuardrail passes messages that are either plain conversational
// pleasantries or mention an airline-domain term. The conversational
// whitelist is checked first, so a bare greeting passes even without any
// domain keyword.
type relevanceGuardrail struct{}

var conversationalKeywords = []string{"hi", "hello", "ok", "yes", "no", "thanks", "thank you"}

var airlineKeywords = []string{"flight", "baggage", "seat", "booking", "cancel", "status", "check-in", "wifi", "plane"}

func (relevanceGuardrail) ID() string          { return RelevanceID }
func (relevanceGuardrail) DisplayName() string { return "Relevance Guardrail" }

func (relevanceGuardrail) Evaluate(text string) Outcome {
	lower := strings.ToLower(text)

	if containsAny(lower, conversationalKeywords) {
		return Outcome{Passed: true, Reasoning: "Conversational message is acceptable"}
	}

	if containsAny(lower, airlineKeywords) {
		return Outcome{Passed: true, Reasoning: "Message is related to airline travel"}
	}

	return Outcome{Passed: false, Reasoning: "Message is not related to airline travel"}
}

// jailbreakGuardrail fails messages containing known prompt-injection or
// attack phrases. Matching is a plain case-insensitive substring scan over
// the raw utterance.
type jailbreakGuardrail struct{}

var jailbreakPatterns = []string{
	"system prompt", "ignore instructions", "drop table", "sql injection",
	"reveal prompt", "what is your prompt", "bypass", "override",
}

func (jailbreakGuardrail) ID() string          { return JailbreakID }
func (jailbreakGuardrail) DisplayName() string { return "Jailbreak Guardrail" }

func (jailbreakGuardrail) Evaluate(text string) Outcome {
	lower := strings.ToLower(text)

	if containsAny(lower, jailbreakPatterns) {
		return Outcome{Passed: false, Reasoning: "Potential jailbreak attempt detected"}
	}

	return Outcome{Passed: true, Reasoning: "Input appears safe"}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Registry holds the fixed set of guardrails, resolvable by id.
type Registry struct {
	guardrails map[string]Guardrail
}

// NewRegistry creates the registry with the two built-in guardrails.
func NewRegistry() *Registry {
	r := &Registry{guardrails: make(map[string]Guardrail)}
	r.register(relevanceGuardrail{})
	r.register(jailbreakGuardrail{})
	return r
}

func (r *Registry) register(g Guardrail) {
	r.guardrails[g.ID()] = g
}

// Get returns the guardrail with the given id.
func (r *Registry) Get(id string) (Guardrail, bool) {
	g, ok := r.guardrails[id]
	return g, ok
}

// DisplayName resolves a guardrail id to its human-readable name, falling
// back to the id itself for unknown entries.
func (r *Registry) DisplayName(id string) string {
	if g, ok := r.guardrails[id]; ok {
		return g.DisplayName()
	}
	return id
}
