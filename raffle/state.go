package raffle

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Config holds the protocol-wide parameters. One instance exists per
// program, at the derived config address.
type Config struct {
	Initialized    bool
	Admin          solana.PublicKey // only holder may mutate the config
	Treasury       solana.PublicKey // receives fee proceeds
	TicketPrice    uint64           // smallest currency unit per ticket
	FeeBasisPoints uint16           // [0, MaxFeeBasisPoints]
}

// Raffle is the per-raffle record. Price, fee rate and treasury are
// snapshotted from the Config at creation; later config changes do not
// affect a raffle in flight.
type Raffle struct {
	Initialized          bool
	Authority            solana.PublicKey // creator, informational after creation
	Title                [TitleLen]byte   // zero-padded
	EndTime              int64            // unix seconds; purchases close at this time
	TicketPrice          uint64           // snapshot
	Status               Status
	Winner               solana.PublicKey // zero until settled
	TicketsSold          uint64           // monotonically increasing
	FeeBasisPoints       uint16           // snapshot
	Treasury             solana.PublicKey // snapshot
	VrfAccount           solana.PublicKey // oracle handle, set by RequestRandomness
	VrfRequestInProgress bool
}

// HasEnded reports whether the purchase window is closed at the given
// time.
func (r *Raffle) HasEnded(now int64) bool { return now >= r.EndTime }

// TitleString returns the title without its zero padding.
func (r *Raffle) TitleString() string {
	return string(bytes.TrimRight(r.Title[:], "\x00"))
}

// TitleFromString converts a title to its fixed-length zero-padded form.
func TitleFromString(s string) ([TitleLen]byte, error) {
	var title [TitleLen]byte
	if len(s) > TitleLen {
		return title, fmt.Errorf("%w (%d)", ErrTitleTooLong, len(s))
	}
	copy(title[:], s)
	return title, nil
}

// TicketAllocation accumulates one purchaser's tickets for one raffle.
// It lives at the address derived from (raffle, purchaser), so at most
// one exists per pair.
type TicketAllocation struct {
	Initialized  bool
	Raffle       solana.PublicKey // back-reference, immutable once created
	Purchaser    solana.PublicKey // immutable once created
	TicketCount  uint64           // monotonically increasing
	PurchaseTime int64            // time of the latest contribution
}
