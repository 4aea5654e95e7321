package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/ulikunitz/xz/lzma"

	"github.com/deexnet/deex-go/crypto"
	"github.com/deexnet/deex-go/prototype"
)

const backupPassword = "backup passphrase 01"

// buildBackup assembles a backup file the way an exporting client does:
// JSON contents, LZMA compression, then the checksummed outer layer keyed
// by ECDH of a one-time key and the password-derived key.
func buildBackup(t *testing.T, contents *backupContents, password string) []byte {
	plain, err := json.Marshal(contents)
	assert.NoError(t, err)

	var compressed bytes.Buffer
	writer, err := lzma.NewWriter(&compressed)
	assert.NoError(t, err)
	_, err = writer.Write(plain)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	oneTime := prototype.PrivateKeyFromSeed("one-time export key")
	oneTimePub := mustPub(oneTime)
	passwordPub := mustPub(prototype.PrivateKeyFromSeed(password))

	payload, err := crypto.EncryptWithChecksum(oneTime, passwordPub, "", compressed.Bytes())
	assert.NoError(t, err)

	return append(append([]byte{}, oneTimePub.Data...), payload...)
}

// backupFixture builds contents holding the given keys under a double
// layer: each key encrypted by the inner cipher, the inner cipher's seed
// encrypted under the password.
func backupFixture(t *testing.T, password string, keys ...*prototype.PrivateKeyType) *backupContents {
	innerSeed := []byte("wallet master key material")
	inner := crypto.FromSeed(innerSeed)

	encryptionKey, err := crypto.FromSeed([]byte(password)).EncryptHex(innerSeed)
	assert.NoError(t, err)

	contents := &backupContents{
		Wallet: []backupWalletRecord{{EncryptionKey: encryptionKey}},
	}
	for _, key := range keys {
		encrypted, err := inner.EncryptHex(key.Data)
		assert.NoError(t, err)
		contents.PrivateKeys = append(contents.PrivateKeys, backupKeyRecord{
			Pubkey:       mustPub(key).ToWIF(),
			EncryptedKey: encrypted,
		})
	}
	return contents
}

func TestDecryptBackupRoundTrip(t *testing.T) {
	myassert := assert.New(t)

	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey), backupPassword)

	contents, inner, err := decryptBackup(backup, backupPassword)
	myassert.NoError(err)
	myassert.Len(contents.PrivateKeys, 1)

	recovered, err := decryptKeyRecord(inner, &contents.PrivateKeys[0])
	myassert.NoError(err)
	myassert.True(recovered.Equal(activeKey))
}

func TestDecryptBackupWrongPassword(t *testing.T) {
	myassert := assert.New(t)

	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey), backupPassword)

	_, _, err := decryptBackup(backup, "not the password 0")
	myassert.Equal(prototype.ErrCorruptBackup, errors.Cause(err))
}

func TestDecryptBackupCorrupt(t *testing.T) {
	myassert := assert.New(t)

	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey), backupPassword)

	// flip a payload byte so the embedded checksum no longer matches
	backup[backupPubKeyLen+10] ^= 0xff
	_, _, err := decryptBackup(backup, backupPassword)
	myassert.Equal(prototype.ErrCorruptBackup, errors.Cause(err))

	_, _, err = decryptBackup(backup[:10], backupPassword)
	myassert.Equal(prototype.ErrCorruptBackup, errors.Cause(err))
}

func TestLoginFromFile(t *testing.T) {
	myassert := assert.New(t)
	client := newTestClient()

	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	memoKey := prototype.PrivateKeyFromSeed(testAccountName + RoleMemo + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey, memoKey), backupPassword)

	s, err := LoginFromFile(context.Background(), client, backup, backupPassword, testAccountName, testFeeSymbol)
	myassert.NoError(err)
	myassert.True(s.ActiveKey().Equal(activeKey))
	myassert.True(s.memoKeySnapshot().Equal(memoKey))

	acc, err := s.Account(context.Background())
	myassert.NoError(err)
	myassert.Equal(testAccountID, acc.ID)
}

func TestLoginFromFileMissingActiveKey(t *testing.T) {
	myassert := assert.New(t)
	client := newTestClient()

	// backup holds some other account's key
	stranger := prototype.PrivateKeyFromSeed("someone else entirely")
	backup := buildBackup(t, backupFixture(t, backupPassword, stranger), backupPassword)

	_, err := LoginFromFile(context.Background(), client, backup, backupPassword, testAccountName, testFeeSymbol)
	myassert.Equal(prototype.ErrKeyNotFound, errors.Cause(err))
	myassert.Contains(err.Error(), "active key")
}

func TestLoginFromFileMissingMemoKey(t *testing.T) {
	myassert := assert.New(t)
	client := newTestClient()

	// only the active key is present and the account's memo key differs
	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey), backupPassword)

	_, err := LoginFromFile(context.Background(), client, backup, backupPassword, testAccountName, testFeeSymbol)
	myassert.Equal(prototype.ErrKeyNotFound, errors.Cause(err))
	myassert.Contains(err.Error(), "memo key")
}

func TestLoginFromFileSharedMemoKey(t *testing.T) {
	myassert := assert.New(t)
	client := newTestClient()
	acc := client.accounts[testAccountName]
	acc.Options.MemoKey = acc.Active.KeyAuths[0].Key

	activeKey := prototype.PrivateKeyFromSeed(testAccountName + RoleActive + testPassword)
	backup := buildBackup(t, backupFixture(t, backupPassword, activeKey), backupPassword)

	s, err := LoginFromFile(context.Background(), client, backup, backupPassword, testAccountName, testFeeSymbol)
	myassert.NoError(err)
	myassert.True(s.memoKeySnapshot().Equal(activeKey))
}
