package wallet

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"

	"github.com/deexnet/deex-go/crypto"
	"github.com/deexnet/deex-go/prototype"
)

// A wallet backup is layered like an onion:
//
//	bytes [0,33)  one-time public key of the exporting client
//	bytes [33,..) checksummed AES payload, keyed by ECDH of that one-time
//	              key and a key derived from the backup password
//
// The payload is an LZMA-compressed JSON document. Inside, wallet[0] holds
// an encryption_key which is itself AES-encrypted under the password; only
// that inner key decrypts the individual private_keys records. The password
// never touches an account key directly.
const backupPubKeyLen = 33

type backupWalletRecord struct {
	EncryptionKey string `json:"encryption_key"`
}

type backupKeyRecord struct {
	Pubkey       string `json:"pubkey"`
	EncryptedKey string `json:"encrypted_key"`
}

type backupContents struct {
	Wallet      []backupWalletRecord `json:"wallet"`
	PrivateKeys []backupKeyRecord    `json:"private_keys"`
}

func (b *backupContents) findKey(pubkey string) *backupKeyRecord {
	for i := range b.PrivateKeys {
		if b.PrivateKeys[i].Pubkey == pubkey {
			return &b.PrivateKeys[i]
		}
	}
	return nil
}

// decryptBackup opens the outer layer and returns the parsed contents plus
// the inner cipher that decrypts private_keys records.
func decryptBackup(backup []byte, password string) (*backupContents, *crypto.Cipher, error) {
	if len(backup) <= backupPubKeyLen {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "backup too short")
	}

	backupPub := prototype.PublicKeyFromBytes(backup[:backupPubKeyLen])
	if err := backupPub.Validate(); err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, err.Error())
	}

	passwordKey := prototype.PrivateKeyFromSeed(password)
	compressed, err := crypto.DecryptWithChecksum(passwordKey, backupPub, "", backup[backupPubKeyLen:])
	if err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, err.Error())
	}

	reader, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "lzma header")
	}
	plain, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "lzma payload")
	}

	contents := new(backupContents)
	if err := json.Unmarshal(plain, contents); err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "backup json")
	}
	if len(contents.Wallet) == 0 {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "backup has no wallet record")
	}

	// inner layer: the wallet's symmetric key, itself encrypted under the
	// password
	passwordCipher := crypto.FromSeed([]byte(password))
	innerKey, err := passwordCipher.DecryptHex(contents.Wallet[0].EncryptionKey)
	if err != nil {
		return nil, nil, errors.Wrap(prototype.ErrCorruptBackup, "encryption_key")
	}
	return contents, crypto.FromSeed(innerKey), nil
}

// decryptKeyRecord recovers a raw private key from one private_keys record.
func decryptKeyRecord(inner *crypto.Cipher, record *backupKeyRecord) (*prototype.PrivateKeyType, error) {
	raw, err := inner.DecryptHex(record.EncryptedKey)
	if err != nil {
		return nil, errors.Wrap(prototype.ErrCorruptBackup, "encrypted_key")
	}
	priv := prototype.PrivateKeyFromBytes(raw)
	if err := priv.Validate(); err != nil {
		return nil, errors.Wrap(prototype.ErrCorruptBackup, "recovered key length")
	}
	return priv, nil
}
