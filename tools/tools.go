// Package tools provides the simulated backend operations the agents invoke:
// FAQ lookup, seat updates, flight status, seat-map display, cancellation,
// and baggage inquiries. Every tool is stateless; the ones that touch the
// conversation Context return a new value rather than mutating their input.
package tools

import (
	"fmt"
	"strings"

	"github.com/hreis1/openai-cs-agents-demo/types"
)

// Tool identifiers as exposed in agent definitions and tool_call events.
const (
	ToolFAQLookup      = "faq_lookup_tool"
	ToolUpdateSeat     = "update_seat"
	ToolFlightStatus   = "flight_status_tool"
	ToolDisplaySeatMap = "display_seat_map"
	ToolCancelFlight   = "cancel_flight"
	ToolBaggage        = "baggage_tool"
)

// SeatMapSentinel is the opaque marker the presentation layer interprets as
// "render the interactive seat picker". DisplaySeatMap returns it verbatim.
const SeatMapSentinel = "DISPLAY_SEAT_MAP"

// FAQLookup answers a question by substring match against fixed topic
// buckets, first match wins: baggage, then seats/plane, then wifi.
func FAQLookup(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "bag") || strings.Contains(q, "baggage"):
		return "You are allowed to bring one bag on the plane. " +
			"It must be under 50 pounds and 22 inches x 14 inches x 9 inches."
	case strings.Contains(q, "seats") || strings.Contains(q, "plane"):
		return "There are 120 seats on the plane. " +
			"There are 22 business class seats and 98 economy seats. " +
			"Exit rows are rows 4 and 16. " +
			"Rows 5-8 are Economy Plus, with extra legroom."
	case strings.Contains(q, "wifi"):
		return "We have free wifi on the plane, join Airline-Wifi"
	}
	return "I'm sorry, I don't know the answer to that question."
}

// UpdateSeat records a new seat assignment. It requires a flight number in
// the context (set by the seat-booking handoff hook); its absence is an
// internal consistency fault, not user error. On success it returns a
// confirmation message and a context with the confirmation and seat numbers
// replaced, all other fields untouched.
func UpdateSeat(ctx types.Context, confirmationNumber, newSeat string) (string, types.Context, error) {
	if ctx.FlightNumber == "" {
		return "", ctx, types.NewError(types.ErrRequiredFieldMissing, "flight number is required")
	}

	next := ctx.
		WithConfirmationNumber(confirmationNumber).
		WithSeatNumber(newSeat)

	msg := fmt.Sprintf("Updated seat to %s for confirmation number %s", newSeat, confirmationNumber)
	return msg, next, nil
}

// FlightStatus reports a canned status for the given flight.
func FlightStatus(flightNumber string) string {
	return fmt.Sprintf("Flight %s is on time and scheduled to depart at gate A10.", flightNumber)
}

// DisplaySeatMap returns the seat-map sentinel; it takes no other action.
func DisplaySeatMap(_ types.Context) string {
	return SeatMapSentinel
}

// CancelFlight cancels the flight recorded in the context. Like UpdateSeat
// it fails when the flight number is unset.
func CancelFlight(ctx types.Context) (string, error) {
	if ctx.FlightNumber == "" {
		return "", types.NewError(types.ErrRequiredFieldMissing, "flight number is required")
	}
	return fmt.Sprintf("Flight %s successfully cancelled", ctx.FlightNumber), nil
}

// BaggageInfo answers baggage fee and allowance inquiries.
func BaggageInfo(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "fee"):
		return "Overweight bag fee is $75."
	case strings.Contains(q, "allowance"):
		return "One carry-on and one checked bag (up to 50 lbs) are included."
	}
	return "Please provide details about your baggage inquiry."
}
