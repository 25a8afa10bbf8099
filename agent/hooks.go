package agent

import (
	"github.com/hreis1/openai-cs-agents-demo/types"
)

// SeatBookingHandoff enriches the context when control transfers to the
// seat-booking agent. It always issues a fresh booking reference: both the
// confirmation number and the flight number are regenerated, overwriting any
// existing values. Passenger name, seat number, and account number are
// preserved.
func SeatBookingHandoff(ctx types.Context) types.Context {
	return ctx.
		WithConfirmationNumber(types.GenerateConfirmationNumber()).
		WithFlightNumber(types.GenerateFlightNumber())
}

// CancellationHandoff enriches the context when control transfers to the
// cancellation agent. Unlike SeatBookingHandoff it is idempotent: the
// confirmation and flight numbers are only filled in when currently unset,
// since a cancellation operates on an existing booking when one is known.
func CancellationHandoff(ctx types.Context) types.Context {
	if ctx.ConfirmationNumber == "" {
		ctx = ctx.WithConfirmationNumber(types.GenerateConfirmationNumber())
	}
	if ctx.FlightNumber == "" {
		ctx = ctx.WithFlightNumber(types.GenerateFlightNumber())
	}
	return ctx
}
