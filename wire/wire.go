// Package wire defines the request payload format: a one-byte opcode
// followed by fixed-width little-endian fields. Payloads are decoded
// once at the boundary into a closed set of instruction values; nothing
// past this package inspects raw bytes.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/solraffle/libraffle-go/raffle"
)

// Opcode is the leading tag byte of a request payload.
type Opcode byte

// The canonical opcode set. OpCompleteRaffle is retired but keeps its
// tag so older clients fail cleanly instead of hitting a reassigned
// operation.
const (
	OpInitializeConfig      Opcode = 0
	OpInitializeRaffle      Opcode = 1
	OpPurchaseTickets       Opcode = 2
	OpCompleteRaffle        Opcode = 3
	OpUpdateAdmin           Opcode = 4
	OpUpdateFeeAddress      Opcode = 5
	OpUpdateTicketPrice     Opcode = 6
	OpUpdateFeePercentage   Opcode = 7
	OpRequestRandomness     Opcode = 8
	OpCompleteRaffleWithVrf Opcode = 9
)

// String returns the operation name for logging.
func (o Opcode) String() string {
	switch o {
	case OpInitializeConfig:
		return "InitializeConfig"
	case OpInitializeRaffle:
		return "InitializeRaffle"
	case OpPurchaseTickets:
		return "PurchaseTickets"
	case OpCompleteRaffle:
		return "CompleteRaffle"
	case OpUpdateAdmin:
		return "UpdateAdmin"
	case OpUpdateFeeAddress:
		return "UpdateFeeAddress"
	case OpUpdateTicketPrice:
		return "UpdateTicketPrice"
	case OpUpdateFeePercentage:
		return "UpdateFeePercentage"
	case OpRequestRandomness:
		return "RequestRandomness"
	case OpCompleteRaffleWithVrf:
		return "CompleteRaffleWithVrf"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(o))
	}
}

// Instruction is one decoded request payload.
type Instruction interface {
	Opcode() Opcode
}

// InitializeConfig creates the program config.
type InitializeConfig struct {
	TicketPrice    uint64
	FeeBasisPoints uint16
}

// InitializeRaffle creates a raffle in a pre-provisioned account.
type InitializeRaffle struct {
	Title    [raffle.TitleLen]byte
	Duration uint64 // seconds from now until the purchase window closes
}

// PurchaseTickets buys tickets in an active raffle.
type PurchaseTickets struct {
	TicketCount uint64
}

// CompleteRaffle is the retired completion operation. It decodes but is
// always rejected by the engine.
type CompleteRaffle struct{}

// UpdateAdmin hands the config to a new admin (passed as an account).
type UpdateAdmin struct{}

// UpdateFeeAddress changes the fee treasury (passed as an account).
type UpdateFeeAddress struct{}

// UpdateTicketPrice changes the config ticket price.
type UpdateTicketPrice struct {
	NewPrice uint64
}

// UpdateFeePercentage changes the config fee rate.
type UpdateFeePercentage struct {
	NewFeeBasisPoints uint16
}

// RequestRandomness starts the two-phase draw after the raffle ends.
type RequestRandomness struct{}

// CompleteRaffleWithVrf consumes the oracle result, selects the winner
// and settles the pool.
type CompleteRaffleWithVrf struct{}

// Opcode implements Instruction.
func (*InitializeConfig) Opcode() Opcode      { return OpInitializeConfig }
func (*InitializeRaffle) Opcode() Opcode      { return OpInitializeRaffle }
func (*PurchaseTickets) Opcode() Opcode       { return OpPurchaseTickets }
func (*CompleteRaffle) Opcode() Opcode        { return OpCompleteRaffle }
func (*UpdateAdmin) Opcode() Opcode           { return OpUpdateAdmin }
func (*UpdateFeeAddress) Opcode() Opcode      { return OpUpdateFeeAddress }
func (*UpdateTicketPrice) Opcode() Opcode     { return OpUpdateTicketPrice }
func (*UpdateFeePercentage) Opcode() Opcode   { return OpUpdateFeePercentage }
func (*RequestRandomness) Opcode() Opcode     { return OpRequestRandomness }
func (*CompleteRaffleWithVrf) Opcode() Opcode { return OpCompleteRaffleWithVrf }

// Encode serializes an instruction to its wire form.
func Encode(in Instruction) ([]byte, error) {
	switch v := in.(type) {
	case *InitializeConfig:
		buf := make([]byte, 11)
		buf[0] = byte(OpInitializeConfig)
		binary.LittleEndian.PutUint64(buf[1:9], v.TicketPrice)
		binary.LittleEndian.PutUint16(buf[9:11], v.FeeBasisPoints)
		return buf, nil
	case *InitializeRaffle:
		buf := make([]byte, 41)
		buf[0] = byte(OpInitializeRaffle)
		copy(buf[1:33], v.Title[:])
		binary.LittleEndian.PutUint64(buf[33:41], v.Duration)
		return buf, nil
	case *PurchaseTickets:
		buf := make([]byte, 9)
		buf[0] = byte(OpPurchaseTickets)
		binary.LittleEndian.PutUint64(buf[1:9], v.TicketCount)
		return buf, nil
	case *CompleteRaffle:
		return []byte{byte(OpCompleteRaffle)}, nil
	case *UpdateAdmin:
		return []byte{byte(OpUpdateAdmin)}, nil
	case *UpdateFeeAddress:
		return []byte{byte(OpUpdateFeeAddress)}, nil
	case *UpdateTicketPrice:
		buf := make([]byte, 9)
		buf[0] = byte(OpUpdateTicketPrice)
		binary.LittleEndian.PutUint64(buf[1:9], v.NewPrice)
		return buf, nil
	case *UpdateFeePercentage:
		buf := make([]byte, 3)
		buf[0] = byte(OpUpdateFeePercentage)
		binary.LittleEndian.PutUint16(buf[1:3], v.NewFeeBasisPoints)
		return buf, nil
	case *RequestRandomness:
		return []byte{byte(OpRequestRandomness)}, nil
	case *CompleteRaffleWithVrf:
		return []byte{byte(OpCompleteRaffleWithVrf)}, nil
	case nil:
		return nil, ErrNilInstruction
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, in)
	}
}

// Decode parses a request payload. Short or oversized payloads are
// rejected; unknown opcodes are rejected.
func Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	op := Opcode(data[0])
	body := data[1:]

	switch op {
	case OpInitializeConfig:
		if err := wantLen(op, body, 10); err != nil {
			return nil, err
		}
		return &InitializeConfig{
			TicketPrice:    binary.LittleEndian.Uint64(body[0:8]),
			FeeBasisPoints: binary.LittleEndian.Uint16(body[8:10]),
		}, nil
	case OpInitializeRaffle:
		if err := wantLen(op, body, 40); err != nil {
			return nil, err
		}
		in := &InitializeRaffle{Duration: binary.LittleEndian.Uint64(body[32:40])}
		copy(in.Title[:], body[0:32])
		return in, nil
	case OpPurchaseTickets:
		if err := wantLen(op, body, 8); err != nil {
			return nil, err
		}
		return &PurchaseTickets{TicketCount: binary.LittleEndian.Uint64(body[0:8])}, nil
	case OpCompleteRaffle:
		if err := wantLen(op, body, 0); err != nil {
			return nil, err
		}
		return &CompleteRaffle{}, nil
	case OpUpdateAdmin:
		if err := wantLen(op, body, 0); err != nil {
			return nil, err
		}
		return &UpdateAdmin{}, nil
	case OpUpdateFeeAddress:
		if err := wantLen(op, body, 0); err != nil {
			return nil, err
		}
		return &UpdateFeeAddress{}, nil
	case OpUpdateTicketPrice:
		if err := wantLen(op, body, 8); err != nil {
			return nil, err
		}
		return &UpdateTicketPrice{NewPrice: binary.LittleEndian.Uint64(body[0:8])}, nil
	case OpUpdateFeePercentage:
		if err := wantLen(op, body, 2); err != nil {
			return nil, err
		}
		return &UpdateFeePercentage{NewFeeBasisPoints: binary.LittleEndian.Uint16(body[0:2])}, nil
	case OpRequestRandomness:
		if err := wantLen(op, body, 0); err != nil {
			return nil, err
		}
		return &RequestRandomness{}, nil
	case OpCompleteRaffleWithVrf:
		if err := wantLen(op, body, 0); err != nil {
			return nil, err
		}
		return &CompleteRaffleWithVrf{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, data[0])
	}
}

func wantLen(op Opcode, body []byte, want int) error {
	if len(body) != want {
		return fmt.Errorf("%w: %s wants %d body bytes, got %d", ErrPayloadLength, op, want, len(body))
	}
	return nil
}
