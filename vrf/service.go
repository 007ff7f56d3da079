package vrf

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/pairing"
	"go.dedis.ch/kyber/v3/sign/bls"
	"go.dedis.ch/kyber/v3/util/random"
)

// proofDomain separates oracle signatures from any other use of the key.
const proofDomain = "raffle-vrf:"

// Service is a BLS randomness oracle on the bn256 pairing suite.
//
// BLS signatures are deterministic, so the signature over
// proofDomain || account || seed is itself the proof: unique per
// request, verifiable by anyone holding the public key, and impossible
// for the operator to grind without changing the seed. The 32-byte
// randomness is the SHA-256 digest of the signature.
type Service struct {
	suite *pairing.SuiteBn256
	sk    kyber.Scalar
	pub   kyber.Point
	state *State
}

var _ Oracle = (*Service)(nil)

// NewService creates a BLS oracle from a secret key and a state store.
func NewService(sk kyber.Scalar, state *State) (*Service, error) {
	if sk == nil {
		return nil, ErrInvalidKey
	}
	suite := pairing.NewSuiteBn256()
	return &Service{
		suite: suite,
		sk:    sk,
		pub:   suite.G2().Point().Mul(sk, nil),
		state: state,
	}, nil
}

// GenerateKey creates a fresh BLS keypair for a new oracle.
func GenerateKey() (kyber.Scalar, kyber.Point) {
	return bls.NewKeyPair(pairing.NewSuiteBn256(), random.New())
}

// Public returns the oracle's public key, used to verify proofs.
func (s *Service) Public() kyber.Point {
	return s.pub
}

// Request binds seed to the handle account and persists the pending
// entry. A handle can carry at most one request for its lifetime.
func (s *Service) Request(account solana.PublicKey, seed []byte) error {
	if len(seed) == 0 {
		return ErrEmptySeed
	}
	key := account.String()
	if s.state.getEntry(key) != nil {
		return ErrDuplicateRequest
	}
	s.state.setEntry(key, &Entry{Seed: hex.EncodeToString(seed)})
	return s.state.Save()
}

// Fulfill signs the pending request for the handle account and stores
// the proof. Fulfilling an already-fulfilled handle is a no-op: the
// signature is deterministic, so re-signing cannot produce a different
// proof.
func (s *Service) Fulfill(account solana.PublicKey) error {
	key := account.String()
	entry := s.state.getEntry(key)
	if entry == nil {
		return ErrUnknownAccount
	}
	if entry.Proof != "" {
		return nil
	}

	seed, err := entry.seedBytes()
	if err != nil {
		return err
	}
	sig, err := bls.Sign(s.suite, s.sk, proofMessage(account, seed))
	if err != nil {
		return fmt.Errorf("vrf: sign request: %w", err)
	}
	entry.Proof = hex.EncodeToString(sig)
	s.state.setEntry(key, entry)
	return s.state.Save()
}

// Result verifies the stored proof for the handle account and returns
// the randomness it commits to.
func (s *Service) Result(account solana.PublicKey) ([32]byte, error) {
	entry := s.state.getEntry(account.String())
	if entry == nil {
		return [32]byte{}, ErrUnknownAccount
	}
	if entry.Proof == "" {
		return [32]byte{}, ErrResultPending
	}

	seed, err := entry.seedBytes()
	if err != nil {
		return [32]byte{}, err
	}
	sig, err := entry.proofBytes()
	if err != nil {
		return [32]byte{}, err
	}
	if err := bls.Verify(s.suite, s.pub, proofMessage(account, seed), sig); err != nil {
		return [32]byte{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	return sha256.Sum256(sig), nil
}

// proofMessage is the byte string the oracle signs for one request.
func proofMessage(account solana.PublicKey, seed []byte) []byte {
	msg := make([]byte, 0, len(proofDomain)+len(account)+len(seed))
	msg = append(msg, proofDomain...)
	msg = append(msg, account[:]...)
	msg = append(msg, seed...)
	return msg
}
