package raffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Ticket total tests ---

func TestTicketTotal(t *testing.T) {
	total, err := TicketTotal(3, 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000_000_000), total)
}

func TestTicketTotal_Overflow(t *testing.T) {
	_, err := TicketTotal(math.MaxUint64, 2)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.ErrorIs(t, err, ErrArithmetic)
}

// --- Fee split tests ---

func TestSplitFee(t *testing.T) {
	tests := []struct {
		name     string
		total    uint64
		feeBps   uint16
		wantFee  uint64
		wantPool uint64
	}{
		{"five percent", 3_000_000_000, 500, 150_000_000, 2_850_000_000},
		{"zero fee", 1_000_000, 0, 0, 1_000_000},
		{"full fee", 1_000_000, 10000, 1_000_000, 0},
		{"one basis point", 10_000, 1, 1, 9_999},
		{"truncates", 999, 500, 49, 950}, // 999*500/10000 = 49.95
		{"tiny total", 1, 9999, 0, 1},
		{"zero total", 0, 500, 0, 0},
		{"huge total", math.MaxUint64, 10000, math.MaxUint64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, pool, err := SplitFee(tt.total, tt.feeBps)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantPool, pool)
			assert.Equal(t, tt.total, fee+pool)
		})
	}
}

func TestSplitFee_RateTooHigh(t *testing.T) {
	_, _, err := SplitFee(1000, 10001)
	assert.ErrorIs(t, err, ErrFeeTooHigh)
	assert.ErrorIs(t, err, ErrValidation)
}

// Largest totals must not overflow the intermediate fee product.
func TestSplitFee_NoIntermediateOverflow(t *testing.T) {
	fee, pool, err := SplitFee(math.MaxUint64, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64/10000*500+math.MaxUint64%10000*500/10000), fee)
	assert.Equal(t, math.MaxUint64-fee, pool)
}

// --- Checked add tests ---

func TestCheckedAdd(t *testing.T) {
	sum, err := checkedAdd(40, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sum)

	_, err = checkedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}
