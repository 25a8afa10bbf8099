// Package agent implements the routing core of the airline support demo:
// the immutable five-agent registry, the handoff hooks that enrich the
// conversation context on transfer, and the turn Runner that gates each
// user message through input guardrails and dispatches it to the active
// agent's routine.
//
// Agents form a fixed directed graph. The Triage agent has handoff edges to
// the four specialists (FAQ, Seat Booking, Flight Status, Cancellation);
// each specialist has a single edge back to Triage. Edges are name
// references resolved through the registry, never live pointers.
package agent
