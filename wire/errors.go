package wire

import "errors"

var (
	// ErrEmptyPayload indicates a payload with no opcode byte.
	ErrEmptyPayload = errors.New("wire: empty payload")

	// ErrUnknownOpcode indicates an unrecognized opcode byte.
	ErrUnknownOpcode = errors.New("wire: unknown opcode")

	// ErrPayloadLength indicates a payload body of the wrong length.
	ErrPayloadLength = errors.New("wire: wrong payload length")

	// ErrNilInstruction indicates Encode was given nil.
	ErrNilInstruction = errors.New("wire: nil instruction")

	// ErrUnknownInstruction indicates Encode was given a type outside the
	// canonical set.
	ErrUnknownInstruction = errors.New("wire: unknown instruction type")
)
