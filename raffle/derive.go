package raffle

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed prefixes for derived addresses.
var (
	configSeed = []byte("config")
	ticketSeed = []byte("ticket")
)

// DeriveConfigAddress returns the program's config address. The config
// lives at a derived address with no private key, so a caller-supplied
// config account is always checked against this derivation.
func DeriveConfigAddress(program solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{configSeed}, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("raffle: derive config address: %w", err)
	}
	return addr, nil
}

// DeriveAllocationAddress returns the allocation address for a
// (raffle, purchaser) pair. The binding to both keys is what guarantees
// at most one allocation per purchaser per raffle.
func DeriveAllocationAddress(program, raffleKey, purchaser solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{ticketSeed, raffleKey[:], purchaser[:]}, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("raffle: derive allocation address: %w", err)
	}
	return addr, nil
}
