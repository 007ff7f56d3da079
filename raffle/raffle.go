// Package raffle implements the state machine of a time-boxed raffle:
// protocol configuration, ticket purchase accounting with fee splitting,
// and randomness-driven winner selection. Everything here is
// deterministic and free of I/O; persistence, value transfer, time and
// the randomness oracle are capabilities the caller supplies.
package raffle

import "fmt"

// LayoutVersion is the persisted layout version written by this package.
// Decoders reject any other nonzero version.
const LayoutVersion = 1

// TitleLen is the fixed raffle title length. Shorter titles are
// zero-padded.
const TitleLen = 32

// MaxFeeBasisPoints is the highest allowed fee rate (10000 = 100%).
const MaxFeeBasisPoints = 10000

// Status is the lifecycle state of a raffle.
type Status uint8

const (
	// StatusActive accepts purchases before end_time and randomness
	// requests after it.
	StatusActive Status = 0

	// StatusComplete is terminal: the winner is recorded and the pool
	// paid out.
	StatusComplete Status = 1
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusComplete:
		return "complete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}
