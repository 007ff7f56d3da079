package raffle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
)

// WinnerIndex derives the winning ticket index from oracle randomness:
// the first 8 bytes read as a little-endian integer, reduced modulo
// ticketsSold. The reduction is marginally biased when ticketsSold does
// not divide 2^64; for realistic ticket counts the bias is negligible
// and no rejection sampling is applied.
func WinnerIndex(randomness [32]byte, ticketsSold uint64) (uint64, error) {
	if ticketsSold == 0 {
		return 0, ErrNoTicketsSold
	}
	return binary.LittleEndian.Uint64(randomness[:8]) % ticketsSold, nil
}

// AllocationRef pairs a TicketAllocation with the address it was loaded
// from.
type AllocationRef struct {
	Address    solana.PublicKey
	Allocation *TicketAllocation
}

// ResolveWinner maps a winning ticket index to the allocation that owns
// it. refs must be the raffle's complete allocation set, in any order;
// nothing in it is trusted. Every allocation's address is recomputed from
// its stored back-references, duplicates and records of other raffles are
// rejected, and the set must account for exactly ticketsSold tickets.
// The winning index is then located by walking the allocations in
// address order, each covering a contiguous range of ticket indices.
func ResolveWinner(program, raffleKey solana.PublicKey, ticketsSold, index uint64, refs []AllocationRef) (AllocationRef, error) {
	if index >= ticketsSold {
		return AllocationRef{}, fmt.Errorf("%w: winner index %d out of range for %d tickets", ErrValidation, index, ticketsSold)
	}

	seen := make(map[solana.PublicKey]struct{}, len(refs))
	var sum uint64
	for _, ref := range refs {
		alloc := ref.Allocation
		if alloc == nil || !alloc.Initialized {
			return AllocationRef{}, fmt.Errorf("%w: allocation %s not initialized", ErrCorruptState, ref.Address)
		}
		if alloc.Raffle != raffleKey {
			return AllocationRef{}, fmt.Errorf("%w: %s references %s", ErrForeignAllocation, ref.Address, alloc.Raffle)
		}
		expected, err := DeriveAllocationAddress(program, raffleKey, alloc.Purchaser)
		if err != nil {
			return AllocationRef{}, err
		}
		if expected != ref.Address {
			return AllocationRef{}, fmt.Errorf("%w: %s is not the allocation for purchaser %s", ErrAllocationMismatch, ref.Address, alloc.Purchaser)
		}
		if _, dup := seen[ref.Address]; dup {
			return AllocationRef{}, fmt.Errorf("%w: %s", ErrDuplicateAllocation, ref.Address)
		}
		seen[ref.Address] = struct{}{}

		if sum, err = checkedAdd(sum, alloc.TicketCount); err != nil {
			return AllocationRef{}, err
		}
	}
	if sum != ticketsSold {
		return AllocationRef{}, fmt.Errorf("%w: set covers %d of %d tickets", ErrAllocationsIncomplete, sum, ticketsSold)
	}

	// Address order makes the index → purchaser mapping independent of
	// the order the caller supplied the accounts in.
	ordered := make([]AllocationRef, len(refs))
	copy(ordered, refs)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].Address[:], ordered[j].Address[:]) < 0
	})

	var cum uint64
	for _, ref := range ordered {
		if index < cum+ref.Allocation.TicketCount {
			return ref, nil
		}
		cum += ref.Allocation.TicketCount
	}
	return AllocationRef{}, fmt.Errorf("%w: index %d unassigned", ErrAllocationsIncomplete, index)
}
