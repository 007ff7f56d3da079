package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	dir := t.TempDir()
	store, err := OpenBoltStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStore_PutAndGet(t *testing.T) {
	store := tempBoltStore(t)

	acct := &Account{
		Key:     makeKey(0x01),
		Owner:   makeKey(0xF0),
		Balance: 1_000_000,
		Data:    []byte{1, 2, 3, 4},
	}
	require.NoError(t, store.PutAccounts([]*Account{acct}))

	got, err := store.GetAccount(makeKey(0x01))
	require.NoError(t, err)
	assert.Equal(t, acct.Key, got.Key)
	assert.Equal(t, acct.Owner, got.Owner)
	assert.Equal(t, acct.Balance, got.Balance)
	assert.Equal(t, acct.Data, got.Data)
}

func TestBoltStore_NotFound(t *testing.T) {
	store := tempBoltStore(t)
	_, err := store.GetAccount(makeKey(0x01))
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBoltStore_NilAccount(t *testing.T) {
	store := tempBoltStore(t)
	err := store.PutAccounts([]*Account{nil})
	assert.ErrorIs(t, err, ErrNilAccount)
}

func TestBoltStore_Overwrite(t *testing.T) {
	store := tempBoltStore(t)

	require.NoError(t, store.PutAccounts([]*Account{{Key: makeKey(0x01), Balance: 10}}))
	require.NoError(t, store.PutAccounts([]*Account{{Key: makeKey(0x01), Balance: 20}}))

	got, err := store.GetAccount(makeKey(0x01))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got.Balance)
}

func TestBoltStore_BatchWrite(t *testing.T) {
	store := tempBoltStore(t)

	batch := []*Account{
		{Key: makeKey(0x01), Balance: 1},
		{Key: makeKey(0x02), Balance: 2},
		{Key: makeKey(0x03), Balance: 3, Data: []byte{0xAB}},
	}
	require.NoError(t, store.PutAccounts(batch))

	for i, want := range batch {
		got, err := store.GetAccount(makeKey(byte(i + 1)))
		require.NoError(t, err)
		assert.Equal(t, want.Balance, got.Balance)
		assert.Equal(t, want.Data, got.Data)
	}
}

func TestBoltStore_FlagsNotStored(t *testing.T) {
	store := tempBoltStore(t)

	acct := &Account{Key: makeKey(0x01), Balance: 5, Signer: true, Writable: true}
	require.NoError(t, store.PutAccounts([]*Account{acct}))

	got, err := store.GetAccount(makeKey(0x01))
	require.NoError(t, err)
	assert.False(t, got.Signer)
	assert.False(t, got.Writable)
}

func TestBoltStore_CreateDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	dbPath := filepath.Join(nested, "ledger.db")

	store, err := OpenBoltStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(nested)
	assert.NoError(t, err, "nested directory should be created")
}

func TestBoltStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "persist.db")

	store1, err := OpenBoltStore(dbPath)
	require.NoError(t, err)
	acct := &Account{Key: makeKey(0x07), Owner: makeKey(0xF0), Balance: 77, Data: []byte{7}}
	require.NoError(t, store1.PutAccounts([]*Account{acct}))
	store1.Close()

	store2, err := OpenBoltStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.GetAccount(makeKey(0x07))
	require.NoError(t, err)
	assert.Equal(t, acct.Owner, got.Owner)
	assert.Equal(t, acct.Balance, got.Balance)
	assert.Equal(t, acct.Data, got.Data)
}
