package agent

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hreis1/openai-cs-agents-demo/agent/guardrails"
	"github.com/hreis1/openai-cs-agents-demo/tools"
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// Placeholder values used when a tool needs a context field that no handoff
// hook has populated yet.
const (
	defaultConfirmationNumber = "ABC123"
	defaultFlightNumber       = "FLT-123"
)

// seatRequestPattern extracts the seat token from messages like "seat 12a".
var seatRequestPattern = regexp.MustCompile(`(?i)seat\s+(\w+)`)

// TurnResult is everything one turn produces: the assistant messages, the
// orchestration events, the agent that owns the next turn, and the possibly
// updated context.
type TurnResult struct {
	Messages  []types.TurnMessage
	Events    []types.AgentEvent
	NextAgent string
	Context   types.Context
}

// Runner is the turn processor. The routing state machine is not persisted
// anywhere: each turn it is recomputed from the active agent, the latest
// user message, and the context.
type Runner struct {
	registry   *Registry
	guardrails *guardrails.Registry
	logger     *zap.Logger
}

// NewRunner creates a turn processor over the given agent and guardrail
// registries.
func NewRunner(registry *Registry, guardrailRegistry *guardrails.Registry, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		registry:   registry,
		guardrails: guardrailRegistry,
		logger:     logger.With(zap.String("component", "turn_runner")),
	}
}

// Run processes one turn for the given agent. It evaluates the agent's
// guardrails against the most recent user message in declaration order,
// aborting on the first failure with a *guardrails.RejectionError before any
// dispatch happens. When all guardrails pass, it routes on the message
// content and returns the resulting messages, events, next agent, and
// context. Tool failures (missing context prerequisites) are returned as
// *types.Error and fail the whole turn.
func (r *Runner) Run(current Agent, history []types.InputItem, ctx types.Context) (*TurnResult, error) {
	result := &TurnResult{
		NextAgent: current.Name,
		Context:   ctx,
	}

	lastUser, ok := lastUserMessage(history)
	if !ok {
		// The handler always appends the user message before invoking the
		// runner; an empty history is a defensive fallback.
		return result, nil
	}

	if err := r.checkGuardrails(current, lastUser); err != nil {
		return nil, err
	}

	message := strings.ToLower(lastUser)

	switch current.Name {
	case TriageAgentName:
		r.runTriage(current, message, result)
	case SeatBookingAgentName:
		if err := r.runSeatBooking(current, message, result); err != nil {
			return nil, err
		}
	case FlightStatusAgentName:
		r.runFlightStatus(current, result)
	case CancellationAgentName:
		if err := r.runCancellation(current, message, result); err != nil {
			return nil, err
		}
	case FAQAgentName:
		r.runFAQ(current, message, result)
	default:
		return nil, types.NewError(types.ErrAgentNotFound, "no dispatch for agent "+current.Name)
	}

	return result, nil
}

// checkGuardrails evaluates the agent's required guardrails in declared
// order against the latest user message, failing fast on the first rejection.
func (r *Runner) checkGuardrails(current Agent, input string) error {
	for _, id := range current.InputGuardrails {
		g, ok := r.guardrails.Get(id)
		if !ok {
			return types.NewError(types.ErrInternalError, "unknown guardrail "+id)
		}
		outcome := g.Evaluate(input)
		if !outcome.Passed {
			r.logger.Info("guardrail rejected input",
				zap.String("agent", current.Name),
				zap.String("guardrail", id),
				zap.String("reasoning", outcome.Reasoning),
			)
			return &guardrails.RejectionError{GuardrailID: id, Outcome: outcome}
		}
	}
	return nil
}

// runTriage routes the customer to a specialist based on keywords, in fixed
// priority order. The FAQ branch answers immediately with the FAQ tool
// instead of waiting for the FAQ agent's own turn; the tool_call event is
// attributed to the FAQ agent even though it runs during triage dispatch.
func (r *Runner) runTriage(current Agent, message string, result *TurnResult) {
	switch {
	case strings.Contains(message, "seat") || strings.Contains(message, "booking"):
		result.Context = SeatBookingHandoff(result.Context)
		r.handoff(current, SeatBookingAgentName, result)
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: "I'll help you with seat booking. Let me transfer you to our seat booking specialist.",
			Agent:   SeatBookingAgentName,
		})

	case strings.Contains(message, "status") || strings.Contains(message, "flight"):
		r.handoff(current, FlightStatusAgentName, result)
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: "I'll help you check your flight status. Let me get that information for you.",
			Agent:   FlightStatusAgentName,
		})

	case strings.Contains(message, "cancel"):
		result.Context = CancellationHandoff(result.Context)
		r.handoff(current, CancellationAgentName, result)
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: "I understand you want to cancel your flight. Let me help you with that.",
			Agent:   CancellationAgentName,
		})

	case strings.Contains(message, "bag") || strings.Contains(message, "wifi") || strings.Contains(message, "faq"):
		r.handoff(current, FAQAgentName, result)
		result.Events = append(result.Events, r.toolCall(FAQAgentName, tools.ToolFAQLookup, map[string]any{
			"tool_args": map[string]any{"question": message},
		}))
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: tools.FAQLookup(message),
			Agent:   FAQAgentName,
		})

	default:
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: "Hello! I'm here to help you with your airline needs. I can assist with flight status, seat booking, cancellations, and answer frequently asked questions. How can I help you today?",
			Agent:   current.Name,
		})
	}
}

// runSeatBooking handles seat-map requests and seat changes; anything else
// gets a clarifying prompt.
func (r *Runner) runSeatBooking(current Agent, message string, result *TurnResult) error {
	switch {
	case strings.Contains(message, "seat map") || strings.Contains(message, "show seats"):
		result.Events = append(result.Events, r.toolCall(current.Name, tools.ToolDisplaySeatMap, nil))
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: tools.DisplaySeatMap(result.Context),
			Agent:   current.Name,
		})

	case seatRequestPattern.MatchString(message):
		seat := strings.ToUpper(seatRequestPattern.FindStringSubmatch(message)[1])
		confirmation := result.Context.ConfirmationNumber
		if confirmation == "" {
			confirmation = defaultConfirmationNumber
		}

		result.Events = append(result.Events, r.toolCall(current.Name, tools.ToolUpdateSeat, map[string]any{
			"tool_args": map[string]any{
				"confirmation_number": confirmation,
				"new_seat":            seat,
			},
		}))

		msg, next, err := tools.UpdateSeat(result.Context, confirmation, seat)
		if err != nil {
			return err
		}
		result.Context = next
		result.Messages = append(result.Messages, types.TurnMessage{Content: msg, Agent: current.Name})

	default:
		result.Messages = append(result.Messages, types.TurnMessage{
			Content: "I can help you select or change your seat. Would you like me to show you the seat map, or do you have a specific seat preference?",
			Agent:   current.Name,
		})
	}
	return nil
}

// runFlightStatus always reports status for the context's flight; there is
// no branching on message content.
func (r *Runner) runFlightStatus(current Agent, result *TurnResult) {
	flight := result.Context.FlightNumber
	if flight == "" {
		flight = defaultFlightNumber
	}

	result.Events = append(result.Events, r.toolCall(current.Name, tools.ToolFlightStatus, map[string]any{
		"tool_args": map[string]any{"flight_number": flight},
	}))
	result.Messages = append(result.Messages, types.TurnMessage{
		Content: tools.FlightStatus(flight),
		Agent:   current.Name,
	})
}

// runCancellation cancels once the customer confirms; otherwise it prompts
// for confirmation with the booking details on file.
func (r *Runner) runCancellation(current Agent, message string, result *TurnResult) error {
	if strings.Contains(message, "yes") || strings.Contains(message, "confirm") {
		result.Events = append(result.Events, r.toolCall(current.Name, tools.ToolCancelFlight, nil))
		msg, err := tools.CancelFlight(result.Context)
		if err != nil {
			return err
		}
		result.Messages = append(result.Messages, types.TurnMessage{Content: msg, Agent: current.Name})
		return nil
	}

	result.Messages = append(result.Messages, types.TurnMessage{
		Content: "I can help you cancel your flight " + result.Context.FlightNumber +
			" with confirmation number " + result.Context.ConfirmationNumber +
			". Are you sure you want to proceed with the cancellation?",
		Agent: current.Name,
	})
	return nil
}

// runFAQ always answers through the FAQ lookup tool.
func (r *Runner) runFAQ(current Agent, message string, result *TurnResult) {
	result.Events = append(result.Events, r.toolCall(current.Name, tools.ToolFAQLookup, map[string]any{
		"tool_args": map[string]any{"question": message},
	}))
	result.Messages = append(result.Messages, types.TurnMessage{
		Content: tools.FAQLookup(message),
		Agent:   current.Name,
	})
}

// handoff records a transfer of control from the current agent to target
// and makes target own the rest of the turn.
func (r *Runner) handoff(from Agent, target string, result *TurnResult) {
	result.NextAgent = target
	result.Events = append(result.Events, types.NewAgentEvent(
		types.EventHandoff,
		from.Name,
		from.Name+" -> "+target,
		map[string]any{
			"source_agent": from.Name,
			"target_agent": target,
		},
	))

	r.logger.Debug("agent handoff",
		zap.String("from", from.Name),
		zap.String("to", target),
	)
}

func (r *Runner) toolCall(agentName, tool string, metadata map[string]any) types.AgentEvent {
	r.logger.Debug("tool call",
		zap.String("agent", agentName),
		zap.String("tool", tool),
	)
	return types.NewAgentEvent(types.EventToolCall, agentName, tool, metadata)
}

// lastUserMessage returns the content of the most recent user entry in the
// history.
func lastUserMessage(history []types.InputItem) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == types.RoleUser {
			return history[i].Content, true
		}
	}
	return "", false
}
