package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext()
	assert.Regexp(t, `^[0-9]{8}$`, ctx.AccountNumber)
	assert.Empty(t, ctx.PassengerName)
	assert.Empty(t, ctx.ConfirmationNumber)
	assert.Empty(t, ctx.SeatNumber)
	assert.Empty(t, ctx.FlightNumber)
}

func TestWithConstructorsDoNotMutateReceiver(t *testing.T) {
	ctx := NewContext()

	next := ctx.
		WithPassengerName("Ana Reis").
		WithConfirmationNumber("LL0EZ6").
		WithSeatNumber("23A").
		WithFlightNumber("FLT-476")

	assert.Empty(t, ctx.PassengerName)
	assert.Empty(t, ctx.ConfirmationNumber)

	assert.Equal(t, "Ana Reis", next.PassengerName)
	assert.Equal(t, "LL0EZ6", next.ConfirmationNumber)
	assert.Equal(t, "23A", next.SeatNumber)
	assert.Equal(t, "FLT-476", next.FlightNumber)
	assert.Equal(t, ctx.AccountNumber, next.AccountNumber)
}

func TestDiff(t *testing.T) {
	t.Run("no changes", func(t *testing.T) {
		ctx := NewContext()
		assert.Empty(t, ctx.Diff(ctx))
	})

	t.Run("reports changed fields under wire names", func(t *testing.T) {
		ctx := NewContext()
		next := ctx.WithConfirmationNumber("LL0EZ6").WithFlightNumber("FLT-476")

		changes := ctx.Diff(next)
		assert.Equal(t, map[string]string{
			"confirmation_number": "LL0EZ6",
			"flight_number":       "FLT-476",
		}, changes)
	})

	t.Run("reports clears as empty values", func(t *testing.T) {
		ctx := NewContext().WithSeatNumber("23A")
		next := ctx.WithSeatNumber("")
		assert.Equal(t, map[string]string{"seat_number": ""}, ctx.Diff(next))
	})
}

func TestContextJSONShape(t *testing.T) {
	t.Run("empty optional fields are omitted", func(t *testing.T) {
		data, err := json.Marshal(Context{AccountNumber: "12345678"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"account_number":"12345678"}`, string(data))
	})

	t.Run("populated fields serialize under wire names", func(t *testing.T) {
		ctx := Context{
			PassengerName:      "Ana Reis",
			ConfirmationNumber: "LL0EZ6",
			SeatNumber:         "23A",
			FlightNumber:       "FLT-476",
			AccountNumber:      "12345678",
		}
		data, err := json.Marshal(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"passenger_name": "Ana Reis",
			"confirmation_number": "LL0EZ6",
			"seat_number": "23A",
			"flight_number": "FLT-476",
			"account_number": "12345678"
		}`, string(data))
	})
}

func TestGenerators(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Regexp(t, `^[0-9]{8}$`, GenerateAccountNumber())
		assert.Regexp(t, `^[A-Z0-9]{6}$`, GenerateConfirmationNumber())
		assert.Regexp(t, `^FLT-[0-9]{3}$`, GenerateFlightNumber())
	}
}

// Diff is exact: applying the reported changes to the old context yields the
// new one, and an empty diff means the contexts are equal.
func TestDiffRoundTrip(t *testing.T) {
	gen := rapid.Custom(func(t *rapid.T) Context {
		return Context{
			PassengerName:      rapid.SampledFrom([]string{"", "Ana Reis", "Bo Chen"}).Draw(t, "name"),
			ConfirmationNumber: rapid.SampledFrom([]string{"", "LL0EZ6", "AB12CD"}).Draw(t, "confirmation"),
			SeatNumber:         rapid.SampledFrom([]string{"", "23A", "4F"}).Draw(t, "seat"),
			FlightNumber:       rapid.SampledFrom([]string{"", "FLT-476", "FLT-123"}).Draw(t, "flight"),
			AccountNumber:      rapid.SampledFrom([]string{"11111111", "22222222"}).Draw(t, "account"),
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		before := gen.Draw(t, "before")
		after := gen.Draw(t, "after")

		changes := before.Diff(after)

		if len(changes) == 0 && before != after {
			t.Fatalf("empty diff for different contexts: %+v vs %+v", before, after)
		}

		applied := before
		for field, value := range changes {
			switch field {
			case "passenger_name":
				applied.PassengerName = value
			case "confirmation_number":
				applied.ConfirmationNumber = value
			case "seat_number":
				applied.SeatNumber = value
			case "flight_number":
				applied.FlightNumber = value
			case "account_number":
				applied.AccountNumber = value
			default:
				t.Fatalf("unknown field in diff: %s", field)
			}
		}
		if applied != after {
			t.Fatalf("applying diff did not reproduce target: %+v != %+v", applied, after)
		}
	})
}
