package raffle

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeKey(seed byte) solana.PublicKey {
	var key solana.PublicKey
	for i := range key {
		key[i] = seed
	}
	return key
}

// --- Status tests ---

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "complete", StatusComplete.String())
	assert.Equal(t, "unknown(7)", Status(7).String())
}

// --- Title tests ---

func TestTitleFromString(t *testing.T) {
	title, err := TitleFromString("Summer Raffle")
	require.NoError(t, err)

	r := &Raffle{Title: title}
	assert.Equal(t, "Summer Raffle", r.TitleString())
}

func TestTitleFromString_Exact(t *testing.T) {
	s := "0123456789abcdef0123456789abcdef" // exactly 32 bytes
	title, err := TitleFromString(s)
	require.NoError(t, err)
	assert.Equal(t, s, (&Raffle{Title: title}).TitleString())
}

func TestTitleFromString_TooLong(t *testing.T) {
	_, err := TitleFromString("0123456789abcdef0123456789abcdef!")
	assert.ErrorIs(t, err, ErrTitleTooLong)
	assert.ErrorIs(t, err, ErrValidation)
}

// --- Lifecycle helper tests ---

func TestHasEnded(t *testing.T) {
	r := &Raffle{EndTime: 1000}
	assert.False(t, r.HasEnded(999))
	assert.True(t, r.HasEnded(1000))
	assert.True(t, r.HasEnded(1001))
}

// --- Error taxonomy tests ---

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"admin mismatch", ErrAdminMismatch, ErrAuthorization},
		{"missing signature", ErrMissingSignature, ErrAuthorization},
		{"config initialized", ErrConfigInitialized, ErrState},
		{"raffle ended", ErrRaffleEnded, ErrState},
		{"randomness requested", ErrRandomnessRequested, ErrState},
		{"deprecated", ErrDeprecatedOperation, ErrState},
		{"fee too high", ErrFeeTooHigh, ErrValidation},
		{"zero ticket count", ErrZeroTicketCount, ErrValidation},
		{"winner mismatch", ErrWinnerMismatch, ErrValidation},
		{"overflow", ErrOverflow, ErrArithmetic},
		{"oracle mismatch", ErrOracleMismatch, ErrExternalDependency},
		{"corrupt state", ErrCorruptState, ErrDataIntegrity},
		{"duplicate allocation", ErrDuplicateAllocation, ErrDataIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
		})
	}
}
