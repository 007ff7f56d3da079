package vrf

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State tracks oracle requests and proofs across process invocations.
// Persisted as JSON at {dataDir}/oracle.json so that a request and its
// fulfillment can come from separate runs of the host.
type State struct {
	Entries map[string]*Entry `json:"entries"` // key: base58 handle account

	mu   sync.Mutex `json:"-"`
	path string     `json:"-"` // file path for persistence
}

// Entry is one handle account's request record.
type Entry struct {
	Seed  string `json:"seed"`            // hex request seed
	Proof string `json:"proof,omitempty"` // hex BLS signature, empty until fulfilled
}

// NewState creates a new empty oracle state.
func NewState(path string) *State {
	return &State{
		Entries: make(map[string]*Entry),
		path:    path,
	}
}

// LoadState loads oracle state from disk. Returns a new empty state if
// the file does not exist.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(path), nil
		}
		return nil, fmt.Errorf("vrf: read oracle state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("vrf: parse oracle state: %w", err)
	}
	if state.Entries == nil {
		state.Entries = make(map[string]*Entry)
	}
	state.path = path
	return &state, nil
}

// Save persists the oracle state to disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("vrf: marshal oracle state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("vrf: create state directory: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// getEntry returns the entry for a handle account, or nil.
func (s *State) getEntry(account string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Entries[account]
}

// setEntry stores an entry for a handle account.
func (s *State) setEntry(account string, e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[account] = e
}

// seedBytes decodes the entry's hex seed.
func (e *Entry) seedBytes() ([]byte, error) {
	seed, err := hex.DecodeString(e.Seed)
	if err != nil {
		return nil, fmt.Errorf("vrf: invalid stored seed hex: %w", err)
	}
	return seed, nil
}

// proofBytes decodes the entry's hex proof.
func (e *Entry) proofBytes() ([]byte, error) {
	proof, err := hex.DecodeString(e.Proof)
	if err != nil {
		return nil, fmt.Errorf("vrf: invalid stored proof hex: %w", err)
	}
	return proof, nil
}
