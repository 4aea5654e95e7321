// Package crypto implements the symmetric primitives shared by every wallet
// client of the chain: AES-256-CBC keyed from a SHA-512 seed digest, and the
// checksummed ECDH envelope used for memos and wallet backups. None of this
// is novel cryptography, it is the legacy construction the chain's other
// clients already speak, reproduced exactly.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/prototype"
)

var (
	ErrBadChecksum = errors.New("invalid checksum")
	ErrBadPadding  = errors.New("invalid padding")
)

// Cipher is an AES-256-CBC key/iv pair.
type Cipher struct {
	key [32]byte
	iv  [16]byte
}

// FromSeed derives a cipher from arbitrary seed bytes: SHA-512(seed), first
// 32 bytes key, next 16 bytes iv.
func FromSeed(seed []byte) *Cipher {
	digest := sha512.Sum512(seed)
	return FromSha512(digest[:])
}

// FromSha512 builds a cipher directly from a 64-byte digest.
func FromSha512(digest []byte) *Cipher {
	c := new(Cipher)
	copy(c.key[:], digest[0:32])
	copy(c.iv[:], digest[32:48])
	return c
}

func (c *Cipher) Encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv[:]).CryptBlocks(out, padded)
	return out, nil
}

func (c *Cipher) Decrypt(cipherData []byte) ([]byte, error) {
	if len(cipherData) == 0 || len(cipherData)%aes.BlockSize != 0 {
		return nil, ErrBadPadding
	}
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(cipherData))
	cipher.NewCBCDecrypter(block, c.iv[:]).CryptBlocks(out, cipherData)
	return pkcs7Unpad(out, aes.BlockSize)
}

// DecryptHex decrypts a hex-encoded ciphertext and returns the raw bytes.
// Backup files store both layers of key material in this form.
func (c *Cipher) DecryptHex(cipherHex string) ([]byte, error) {
	raw, err := hex.DecodeString(cipherHex)
	if err != nil {
		return nil, errors.Wrap(err, "decode cipher hex")
	}
	return c.Decrypt(raw)
}

// EncryptHex is the inverse of DecryptHex, used to produce backup fixtures.
func (c *Cipher) EncryptHex(plain []byte) (string, error) {
	raw, err := c.Encrypt(plain)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// EncryptWithChecksum seals plain for the holder of pub. The cipher seed is
// the nonce string concatenated with the lowercase hex of the ECDH shared
// secret, and the payload carries a leading 4-byte SHA-256 checksum so the
// receiver can detect a wrong key before trusting the plaintext.
func EncryptWithChecksum(priv *prototype.PrivateKeyType, pub *prototype.PublicKeyType, nonce string, plain []byte) ([]byte, error) {
	c, err := sharedCipher(priv, pub, nonce)
	if err != nil {
		return nil, err
	}
	checksum := sha256.Sum256(plain)
	payload := make([]byte, 0, 4+len(plain))
	payload = append(payload, checksum[0:4]...)
	payload = append(payload, plain...)
	return c.Encrypt(payload)
}

// DecryptWithChecksum opens a payload produced by EncryptWithChecksum and
// verifies its checksum. ErrBadChecksum means a wrong key, wrong nonce or a
// corrupted payload; callers cannot tell which.
func DecryptWithChecksum(priv *prototype.PrivateKeyType, pub *prototype.PublicKeyType, nonce string, cipherData []byte) ([]byte, error) {
	c, err := sharedCipher(priv, pub, nonce)
	if err != nil {
		return nil, err
	}
	payload, err := c.Decrypt(cipherData)
	if err != nil {
		return nil, err
	}
	if len(payload) < 4 {
		return nil, ErrBadChecksum
	}
	checksum, plain := payload[0:4], payload[4:]
	digest := sha256.Sum256(plain)
	if !bytes.Equal(digest[0:4], checksum) {
		return nil, ErrBadChecksum
	}
	return plain, nil
}

func sharedCipher(priv *prototype.PrivateKeyType, pub *prototype.PublicKeyType, nonce string) (*Cipher, error) {
	secret, err := priv.SharedSecret(pub)
	if err != nil {
		return nil, err
	}
	seed := append([]byte(nonce), []byte(hex.EncodeToString(secret))...)
	return FromSeed(seed), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}
