package ledger

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"go.etcd.io/bbolt"
)

var bucketAccounts = []byte("accounts")

// storedAccount is the gob envelope for one persisted account. The
// account key is the bucket key; role flags are per-request and never
// stored.
type storedAccount struct {
	Owner   [32]byte
	Balance uint64
	Data    []byte
}

// BoltStore persists accounts in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAccounts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// GetAccount returns the stored account at key.
func (s *BoltStore) GetAccount(key solana.PublicKey) (*Account, error) {
	var stored storedAccount
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAccounts).Get(key[:])
		if data == nil {
			return ErrAccountNotFound
		}
		if err := decodeGob(data, &stored); err != nil {
			return fmt.Errorf("boltstore: decode account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Account{
		Key:     key,
		Owner:   solana.PublicKey(stored.Owner),
		Balance: stored.Balance,
		Data:    stored.Data,
	}, nil
}

// PutAccounts writes the batch in a single bolt transaction.
func (s *BoltStore) PutAccounts(accounts []*Account) error {
	for _, acct := range accounts {
		if acct == nil {
			return ErrNilAccount
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAccounts)
		for _, acct := range accounts {
			data, err := encodeGob(&storedAccount{
				Owner:   acct.Owner,
				Balance: acct.Balance,
				Data:    acct.Data,
			})
			if err != nil {
				return fmt.Errorf("boltstore: encode account %s: %w", acct.Key, err)
			}
			if err := b.Put(acct.Key[:], data); err != nil {
				return fmt.Errorf("boltstore: put account %s: %w", acct.Key, err)
			}
		}
		return nil
	})
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
