package agent

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hreis1/openai-cs-agents-demo/types"
)

var (
	confirmationFormat = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	flightFormat       = regexp.MustCompile(`^FLT-[0-9]{3}$`)
)

func TestSeatBookingHandoff(t *testing.T) {
	t.Run("populates booking fields", func(t *testing.T) {
		ctx := SeatBookingHandoff(types.NewContext())
		assert.Regexp(t, confirmationFormat, ctx.ConfirmationNumber)
		assert.Regexp(t, flightFormat, ctx.FlightNumber)
	})

	t.Run("regenerates existing booking fields", func(t *testing.T) {
		ctx := types.Context{
			ConfirmationNumber: "OLDREF",
			FlightNumber:       "FLT-999",
			AccountNumber:      "12345678",
		}
		next := SeatBookingHandoff(ctx)
		// A fresh reference is issued even when one exists. The generated
		// values are random, so only the format is checked; collision with
		// the old value is possible but the fields must stay well-formed.
		assert.Regexp(t, confirmationFormat, next.ConfirmationNumber)
		assert.Regexp(t, flightFormat, next.FlightNumber)
		assert.Equal(t, "12345678", next.AccountNumber)
	})
}

func TestCancellationHandoff(t *testing.T) {
	t.Run("fills missing booking fields", func(t *testing.T) {
		ctx := CancellationHandoff(types.NewContext())
		assert.Regexp(t, confirmationFormat, ctx.ConfirmationNumber)
		assert.Regexp(t, flightFormat, ctx.FlightNumber)
	})

	t.Run("preserves an existing booking", func(t *testing.T) {
		ctx := types.Context{
			ConfirmationNumber: "LL0EZ6",
			FlightNumber:       "FLT-476",
		}
		next := CancellationHandoff(ctx)
		assert.Equal(t, "LL0EZ6", next.ConfirmationNumber)
		assert.Equal(t, "FLT-476", next.FlightNumber)
	})

	t.Run("fills fields independently", func(t *testing.T) {
		ctx := types.Context{ConfirmationNumber: "LL0EZ6"}
		next := CancellationHandoff(ctx)
		require.Equal(t, "LL0EZ6", next.ConfirmationNumber)
		assert.Regexp(t, flightFormat, next.FlightNumber)
	})
}

// CancellationHandoff is idempotent: once the booking fields are set, a
// second application changes nothing.
func TestCancellationHandoffIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := types.Context{
			PassengerName:      rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"),
			ConfirmationNumber: rapid.SampledFrom([]string{"", "LL0EZ6", "AB12CD"}).Draw(t, "confirmation"),
			FlightNumber:       rapid.SampledFrom([]string{"", "FLT-476"}).Draw(t, "flight"),
			SeatNumber:         rapid.SampledFrom([]string{"", "23A"}).Draw(t, "seat"),
			AccountNumber:      "12345678",
		}

		once := CancellationHandoff(ctx)
		twice := CancellationHandoff(once)
		if once != twice {
			t.Fatalf("second application changed the context: %+v != %+v", once, twice)
		}
	})
}

// Both hooks leave passenger name, seat number, and account number alone.
func TestHandoffHooksPreserveIdentityFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := types.Context{
			PassengerName: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"),
			SeatNumber:    rapid.SampledFrom([]string{"", "23A", "4F"}).Draw(t, "seat"),
			AccountNumber: rapid.StringMatching(`[0-9]{8}`).Draw(t, "account"),
		}

		for _, hook := range []func(types.Context) types.Context{SeatBookingHandoff, CancellationHandoff} {
			next := hook(ctx)
			if next.PassengerName != ctx.PassengerName ||
				next.SeatNumber != ctx.SeatNumber ||
				next.AccountNumber != ctx.AccountNumber {
				t.Fatalf("hook modified identity fields: %+v -> %+v", ctx, next)
			}
		}
	})
}
