package wire

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solraffle/libraffle-go/raffle"
)

// AccountMeta declares one account a request touches, with the role
// flags the engine checks.
type AccountMeta struct {
	Key      solana.PublicKey
	Signer   bool
	Writable bool
}

// Request is a fully built request: the ordered accounts it touches and
// the encoded payload. Builders below produce the canonical account
// order for each operation; derived addresses are computed here so
// callers never guess them.
type Request struct {
	Accounts []AccountMeta
	Payload  []byte
}

// NewInitializeConfigRequest builds the one-time config creation
// request.
func NewInitializeConfigRequest(program, admin, treasury solana.PublicKey, ticketPrice uint64, feeBps uint16) (*Request, error) {
	configAddr, err := raffle.DeriveConfigAddress(program)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(&InitializeConfig{TicketPrice: ticketPrice, FeeBasisPoints: feeBps})
	if err != nil {
		return nil, err
	}
	return &Request{
		Accounts: []AccountMeta{
			{Key: admin, Signer: true},
			{Key: configAddr, Writable: true},
			{Key: treasury},
		},
		Payload: payload,
	}, nil
}

// NewInitializeRaffleRequest builds the raffle creation request. The
// raffle account must already be provisioned for the program.
func NewInitializeRaffleRequest(program, authority, raffleKey solana.PublicKey, title string, duration uint64) (*Request, error) {
	configAddr, err := raffle.DeriveConfigAddress(program)
	if err != nil {
		return nil, err
	}
	titleBytes, err := raffle.TitleFromString(title)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(&InitializeRaffle{Title: titleBytes, Duration: duration})
	if err != nil {
		return nil, err
	}
	return &Request{
		Accounts: []AccountMeta{
			{Key: authority, Signer: true},
			{Key: raffleKey, Writable: true},
			{Key: configAddr},
		},
		Payload: payload,
	}, nil
}

// NewPurchaseTicketsRequest builds a ticket purchase. treasury must be
// the raffle's snapshotted treasury; the allocation address is derived
// from (raffle, purchaser).
func NewPurchaseTicketsRequest(program, purchaser, raffleKey, treasury solana.PublicKey, ticketCount uint64) (*Request, error) {
	allocAddr, err := raffle.DeriveAllocationAddress(program, raffleKey, purchaser)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(&PurchaseTickets{TicketCount: ticketCount})
	if err != nil {
		return nil, err
	}
	return &Request{
		Accounts: []AccountMeta{
			{Key: purchaser, Signer: true, Writable: true},
			{Key: raffleKey, Writable: true},
			{Key: allocAddr, Writable: true},
			{Key: treasury, Writable: true},
		},
		Payload: payload,
	}, nil
}

// NewUpdateAdminRequest builds the admin handover request.
func NewUpdateAdminRequest(program, admin, newAdmin solana.PublicKey) (*Request, error) {
	return newConfigMutation(program, admin, &newAdmin, &UpdateAdmin{})
}

// NewUpdateFeeAddressRequest builds the treasury change request.
func NewUpdateFeeAddressRequest(program, admin, newTreasury solana.PublicKey) (*Request, error) {
	return newConfigMutation(program, admin, &newTreasury, &UpdateFeeAddress{})
}

// NewUpdateTicketPriceRequest builds the ticket price change request.
func NewUpdateTicketPriceRequest(program, admin solana.PublicKey, newPrice uint64) (*Request, error) {
	return newConfigMutation(program, admin, nil, &UpdateTicketPrice{NewPrice: newPrice})
}

// NewUpdateFeePercentageRequest builds the fee rate change request.
func NewUpdateFeePercentageRequest(program, admin solana.PublicKey, newBps uint16) (*Request, error) {
	return newConfigMutation(program, admin, nil, &UpdateFeePercentage{NewFeeBasisPoints: newBps})
}

// newConfigMutation assembles [admin s, (subject), config w] plus the
// payload shared by the four config mutations.
func newConfigMutation(program, admin solana.PublicKey, subject *solana.PublicKey, in Instruction) (*Request, error) {
	configAddr, err := raffle.DeriveConfigAddress(program)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(in)
	if err != nil {
		return nil, err
	}
	accounts := []AccountMeta{{Key: admin, Signer: true}}
	if subject != nil {
		accounts = append(accounts, AccountMeta{Key: *subject})
	}
	accounts = append(accounts, AccountMeta{Key: configAddr, Writable: true})
	return &Request{Accounts: accounts, Payload: payload}, nil
}

// NewRequestRandomnessRequest builds the randomness request against the
// given oracle handle account.
func NewRequestRandomnessRequest(initiator, raffleKey, oracle solana.PublicKey) (*Request, error) {
	payload, err := Encode(&RequestRandomness{})
	if err != nil {
		return nil, err
	}
	return &Request{
		Accounts: []AccountMeta{
			{Key: initiator, Signer: true},
			{Key: raffleKey, Writable: true},
			{Key: oracle, Writable: true},
		},
		Payload: payload,
	}, nil
}

// NewCompleteRaffleWithVrfRequest builds the fulfillment request. winner
// must be the purchaser the drawn index resolves to, and purchasers must
// cover every allocation of the raffle; their allocation addresses are
// derived here in the given order.
func NewCompleteRaffleWithVrfRequest(program, initiator, raffleKey, oracle, winner solana.PublicKey, purchasers []solana.PublicKey) (*Request, error) {
	payload, err := Encode(&CompleteRaffleWithVrf{})
	if err != nil {
		return nil, err
	}
	accounts := []AccountMeta{
		{Key: initiator, Signer: true},
		{Key: raffleKey, Writable: true},
		{Key: oracle},
		{Key: winner, Writable: true},
	}
	for _, purchaser := range purchasers {
		allocAddr, err := raffle.DeriveAllocationAddress(program, raffleKey, purchaser)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, AccountMeta{Key: allocAddr})
	}
	return &Request{Accounts: accounts, Payload: payload}, nil
}
