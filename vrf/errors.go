package vrf

import "errors"

var (
	// ErrResultPending indicates the request exists but has not been fulfilled.
	ErrResultPending = errors.New("vrf: randomness not yet fulfilled")

	// ErrUnknownAccount indicates no request was ever registered for the handle.
	ErrUnknownAccount = errors.New("vrf: unknown oracle account")

	// ErrBadProof indicates the stored proof fails signature verification.
	ErrBadProof = errors.New("vrf: proof verification failed")

	// ErrDuplicateRequest indicates the handle account is already bound to a seed.
	ErrDuplicateRequest = errors.New("vrf: randomness already requested for account")

	// ErrEmptySeed indicates a request carried no seed bytes.
	ErrEmptySeed = errors.New("vrf: empty request seed")

	// ErrDecryptionFailed indicates wrong passphrase or corrupted key data.
	ErrDecryptionFailed = errors.New("vrf: key decryption failed (wrong passphrase or corrupted data)")

	// ErrChecksumMismatch indicates key checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("vrf: key checksum mismatch")

	// ErrInvalidKey indicates the secret key is missing or malformed.
	ErrInvalidKey = errors.New("vrf: invalid secret key")
)
