package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

func TestInitializeRaffle(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)
	h.mustCreateRaffle(raffleAddr, testDuration)

	r := h.readRaffle(raffleAddr)
	assert.True(t, r.Initialized)
	assert.Equal(t, authorityKey, r.Authority)
	assert.Equal(t, "Test Raffle", r.TitleString())
	assert.Equal(t, h.now+int64(testDuration), r.EndTime)
	assert.Equal(t, raffle.StatusActive, r.Status)
	assert.Equal(t, uint64(0), r.TicketsSold)
	assert.True(t, r.Winner.IsZero())

	// Price, fee and treasury are snapshots of the config at creation.
	assert.Equal(t, testPrice, r.TicketPrice)
	assert.Equal(t, testFeeBps, r.FeeBasisPoints)
	assert.Equal(t, treasuryKey, r.Treasury)
}

func TestInitializeRaffle_AnyoneMayCreate(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)

	// The authority need not be the admin, just a signer.
	h.provisionRaffle(raffleAddr)
	req, err := wire.NewInitializeRaffleRequest(h.program, outsider, raffleAddr, "Open", testDuration)
	require.NoError(t, err)
	require.NoError(t, h.submit(req))
	assert.Equal(t, outsider, h.readRaffle(raffleAddr).Authority)
}

func TestInitializeRaffle_Unsigned(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)
	h.provisionRaffle(raffleAddr)

	req, err := wire.NewInitializeRaffleRequest(h.program, authorityKey, raffleAddr, "Test Raffle", testDuration)
	require.NoError(t, err)
	req.Accounts[0].Signer = false

	err = h.submit(req)
	assert.ErrorIs(t, err, raffle.ErrMissingSignature)
	assert.ErrorIs(t, err, raffle.ErrAuthorization)
}

func TestInitializeRaffle_ConfigUninitialized(t *testing.T) {
	h := newHarness(t)
	h.provisionRaffle(raffleAddr)

	req, err := wire.NewInitializeRaffleRequest(h.program, authorityKey, raffleAddr, "Test Raffle", testDuration)
	require.NoError(t, err)

	err = h.submit(req)
	assert.ErrorIs(t, err, raffle.ErrConfigUninitialized)
	assert.ErrorIs(t, err, raffle.ErrState)
}

func TestInitializeRaffle_NotProvisioned(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)

	// Account never provisioned: no owner, no data.
	req, err := wire.NewInitializeRaffleRequest(h.program, authorityKey, raffleAddr, "Test Raffle", testDuration)
	require.NoError(t, err)

	err = h.submit(req)
	assert.ErrorIs(t, err, raffle.ErrNotProgramOwned)
	assert.ErrorIs(t, err, raffle.ErrState)
}

func TestInitializeRaffle_Twice(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)
	h.mustCreateRaffle(raffleAddr, testDuration)

	req, err := wire.NewInitializeRaffleRequest(h.program, outsider, raffleAddr, "Takeover", 1)
	require.NoError(t, err)
	err = h.submit(req)
	assert.ErrorIs(t, err, raffle.ErrRaffleInitialized)
	assert.ErrorIs(t, err, raffle.ErrState)

	// The original raffle survives the rejected attempt.
	r := h.readRaffle(raffleAddr)
	assert.Equal(t, authorityKey, r.Authority)
	assert.Equal(t, "Test Raffle", r.TitleString())
}

func TestInitializeRaffle_EndTimeOverflow(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)
	h.provisionRaffle(raffleAddr)

	req, err := wire.NewInitializeRaffleRequest(h.program, authorityKey, raffleAddr, "Forever", math.MaxUint64)
	require.NoError(t, err)

	err = h.submit(req)
	assert.ErrorIs(t, err, raffle.ErrOverflow)
	assert.ErrorIs(t, err, raffle.ErrArithmetic)
}

func TestInitializeRaffle_TitleTooLong(t *testing.T) {
	h := newHarness(t)

	long := make([]byte, raffle.TitleLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err := wire.NewInitializeRaffleRequest(h.program, authorityKey, raffleAddr, string(long), testDuration)
	assert.ErrorIs(t, err, raffle.ErrTitleTooLong)
}

func TestInitializeRaffle_ZeroDuration(t *testing.T) {
	h := newHarness(t)
	h.mustInitConfig(testPrice, testFeeBps)

	// A zero-duration raffle is legal; it is simply born ended.
	h.mustCreateRaffle(raffleAddr, 0)
	r := h.readRaffle(raffleAddr)
	assert.Equal(t, h.now, r.EndTime)
	assert.True(t, r.HasEnded(h.now))

	err := h.buy(alice, raffleAddr, 1)
	assert.ErrorIs(t, err, raffle.ErrRaffleEnded)
}
