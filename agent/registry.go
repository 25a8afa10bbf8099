package agent

import (
	"github.com/hreis1/openai-cs-agents-demo/agent/guardrails"
	"github.com/hreis1/openai-cs-agents-demo/tools"
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// Agent names double as display labels and registry keys.
const (
	TriageAgentName       = "Triage Agent"
	FAQAgentName          = "FAQ Agent"
	SeatBookingAgentName  = "Seat Booking Agent"
	FlightStatusAgentName = "Flight Status Agent"
	CancellationAgentName = "Cancellation Agent"
)

// Instructions generates an agent's routine description from the current
// conversation context. The text is descriptive metadata only; no inference
// runs against it in this simulated backend.
type Instructions func(types.Context) string

// Agent is the immutable static descriptor of one routing mode: which tools
// it may call, where it may hand off to, and which guardrails must pass
// before it processes a message. Handoff targets are stored as names and
// resolved through the registry at dispatch time, so the agent graph has no
// object cycles.
type Agent struct {
	Name               string
	HandoffDescription string
	Instructions       Instructions
	Tools              []string
	Handoffs           []string
	InputGuardrails    []string
}

// Registry is the fixed set of five agents, built once at startup and
// read-only afterwards.
type Registry struct {
	order  []string
	agents map[string]Agent
}

// NewRegistry builds the agent graph: Triage fans out to the four
// specialists, each specialist hands back to Triage only.
func NewRegistry() *Registry {
	defaultGuardrails := []string{guardrails.RelevanceID, guardrails.JailbreakID}

	all := []Agent{
		{
			Name:               TriageAgentName,
			HandoffDescription: "A triage agent that can delegate a customer's request to the appropriate agent.",
			Instructions:       triageInstructions,
			Handoffs: []string{
				FlightStatusAgentName,
				CancellationAgentName,
				FAQAgentName,
				SeatBookingAgentName,
			},
			InputGuardrails: defaultGuardrails,
		},
		{
			Name:               FAQAgentName,
			HandoffDescription: "A helpful agent that can answer questions about the airline.",
			Instructions:       faqInstructions,
			Tools:              []string{tools.ToolFAQLookup, tools.ToolBaggage},
			Handoffs:           []string{TriageAgentName},
			InputGuardrails:    defaultGuardrails,
		},
		{
			Name:               SeatBookingAgentName,
			HandoffDescription: "A helpful agent that can update a seat on a flight.",
			Instructions:       seatBookingInstructions,
			Tools:              []string{tools.ToolUpdateSeat, tools.ToolDisplaySeatMap},
			Handoffs:           []string{TriageAgentName},
			InputGuardrails:    defaultGuardrails,
		},
		{
			Name:               FlightStatusAgentName,
			HandoffDescription: "An agent to provide flight status information.",
			Instructions:       flightStatusInstructions,
			Tools:              []string{tools.ToolFlightStatus},
			Handoffs:           []string{TriageAgentName},
			InputGuardrails:    defaultGuardrails,
		},
		{
			Name:               CancellationAgentName,
			HandoffDescription: "An agent to cancel flights.",
			Instructions:       cancellationInstructions,
			Tools:              []string{tools.ToolCancelFlight},
			Handoffs:           []string{TriageAgentName},
			InputGuardrails:    defaultGuardrails,
		},
	}

	r := &Registry{agents: make(map[string]Agent, len(all))}
	for _, a := range all {
		r.order = append(r.order, a.Name)
		r.agents[a.Name] = a
	}
	return r
}

// Get returns the agent with the given name.
func (r *Registry) Get(name string) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// GetOrTriage returns the named agent, falling back to Triage for unknown
// names so a corrupted state record cannot strand a conversation.
func (r *Registry) GetOrTriage(name string) Agent {
	if a, ok := r.agents[name]; ok {
		return a
	}
	return r.agents[TriageAgentName]
}

// Names returns the agent names in registration order.
func (r *Registry) Names() []string {
	return r.order
}

// All returns the agents in registration order.
func (r *Registry) All() []Agent {
	out := make([]Agent, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.agents[name])
	}
	return out
}
