package raffle

import (
	"fmt"
	"math/bits"
)

// TicketTotal returns count * price with overflow checking.
func TicketTotal(count, price uint64) (uint64, error) {
	hi, lo := bits.Mul64(count, price)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d tickets at %d", ErrOverflow, count, price)
	}
	return lo, nil
}

// SplitFee splits a purchase total into the treasury fee and the prize
// pool contribution. The fee is total * feeBps / 10000 with integer
// truncation toward zero; fee + pool == total always holds.
func SplitFee(total uint64, feeBps uint16) (fee, pool uint64, err error) {
	if feeBps > MaxFeeBasisPoints {
		return 0, 0, fmt.Errorf("%w (%d)", ErrFeeTooHigh, feeBps)
	}
	// The 128-bit product keeps total*feeBps exact; hi < 10000 because
	// feeBps <= 10000, so Div64 cannot panic.
	hi, lo := bits.Mul64(total, uint64(feeBps))
	fee, _ = bits.Div64(hi, lo, MaxFeeBasisPoints)
	return fee, total - fee, nil
}

// checkedAdd returns a + b or ErrOverflow.
func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}
