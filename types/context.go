package types

import (
	"fmt"
	"math/rand/v2"
)

// Context carries the passenger and booking facts shared by every agent in
// a conversation. It is a value type: mutations go through the With*
// constructors, which return a modified copy and never touch the receiver.
// Concurrent turns therefore cannot corrupt each other's view of the
// conversation even when the store hands out the same state record.
type Context struct {
	PassengerName      string `json:"passenger_name,omitempty"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	SeatNumber         string `json:"seat_number,omitempty"`
	FlightNumber       string `json:"flight_number,omitempty"`

	// AccountNumber is assigned once when the conversation is created and
	// never changes afterwards.
	AccountNumber string `json:"account_number"`
}

// NewContext creates the initial context for a fresh conversation with a
// generated 8-digit account number.
func NewContext() Context {
	return Context{
		AccountNumber: GenerateAccountNumber(),
	}
}

// WithConfirmationNumber returns a copy with the confirmation number replaced.
func (c Context) WithConfirmationNumber(confirmation string) Context {
	c.ConfirmationNumber = confirmation
	return c
}

// WithSeatNumber returns a copy with the seat number replaced.
func (c Context) WithSeatNumber(seat string) Context {
	c.SeatNumber = seat
	return c
}

// WithFlightNumber returns a copy with the flight number replaced.
func (c Context) WithFlightNumber(flight string) Context {
	c.FlightNumber = flight
	return c
}

// WithPassengerName returns a copy with the passenger name replaced.
func (c Context) WithPassengerName(name string) Context {
	c.PassengerName = name
	return c
}

// Diff compares two contexts field by field and returns the values that
// changed, keyed by their wire names. An empty map means nothing changed.
func (c Context) Diff(next Context) map[string]string {
	changes := make(map[string]string)
	if c.PassengerName != next.PassengerName {
		changes["passenger_name"] = next.PassengerName
	}
	if c.ConfirmationNumber != next.ConfirmationNumber {
		changes["confirmation_number"] = next.ConfirmationNumber
	}
	if c.SeatNumber != next.SeatNumber {
		changes["seat_number"] = next.SeatNumber
	}
	if c.FlightNumber != next.FlightNumber {
		changes["flight_number"] = next.FlightNumber
	}
	if c.AccountNumber != next.AccountNumber {
		changes["account_number"] = next.AccountNumber
	}
	return changes
}

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateAccountNumber produces a fake 8-digit account number for demo
// purposes.
func GenerateAccountNumber() string {
	return fmt.Sprintf("%d", 10000000+rand.IntN(90000000))
}

// GenerateConfirmationNumber produces a 6-character booking reference from
// uppercase letters and digits.
func GenerateConfirmationNumber() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = confirmationAlphabet[rand.IntN(len(confirmationAlphabet))]
	}
	return string(b)
}

// GenerateFlightNumber produces a flight number of the form FLT-NNN.
func GenerateFlightNumber() string {
	return fmt.Sprintf("FLT-%d", 100+rand.IntN(900))
}
