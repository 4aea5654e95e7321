package prototype

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/itchyny/base58-go"
)

const wifVersion = 0x80

// PrivateKeyType is a raw secp256k1 scalar. All account keys on the chain
// are plain secp256k1 keys, there is no HD derivation.
type PrivateKeyType struct {
	Data []byte
}

// PrivateKeyFromSeed derives a deterministic key from an arbitrary seed
// string. The seed is hashed once with SHA-256 and the digest is used as the
// scalar, which matches the derivation every other client of the chain uses.
// Same seed, same key.
func PrivateKeyFromSeed(seed string) *PrivateKeyType {
	digest := sha256.Sum256([]byte(seed))
	return PrivateKeyFromBytes(digest[:])
}

func PrivateKeyFromBytes(buffer []byte) *PrivateKeyType {
	result := new(PrivateKeyType)
	result.Data = buffer
	return result
}

// PrivateKeyFromWIF decodes the base58check export format: one 0x80 version
// byte, 32 key bytes, 4 checksum bytes of double SHA-256.
func PrivateKeyFromWIF(encoded string) (*PrivateKeyType, error) {
	if encoded == "" {
		return nil, errors.New("invalid private key wif 1")
	}
	decoded, err := base58.BitcoinEncoding.Decode([]byte(encoded))
	if err != nil {
		return nil, err
	}

	x, ok := new(big.Int).SetString(string(decoded), 10)
	if !ok {
		return nil, errors.New("invalid private key wif 2")
	}

	buf := x.Bytes()
	if len(buf) != 37 || buf[0] != wifVersion {
		return nil, errors.New("invalid private key wif 3")
	}

	temp := sha256.Sum256(buf[:len(buf)-4])
	temps := sha256.Sum256(temp[:])

	if !bytes.Equal(temps[0:4], buf[len(buf)-4:]) {
		return nil, errors.New("invalid private key wif 4")
	}

	return PrivateKeyFromBytes(buf[1 : len(buf)-4]), nil
}

func (m *PrivateKeyType) Equal(other *PrivateKeyType) bool {
	return bytes.Equal(m.Data, other.Data)
}

func (m *PrivateKeyType) PubKey() (*PublicKeyType, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	priv := secp256k1.PrivKeyFromBytes(m.Data)
	return PublicKeyFromBytes(priv.PubKey().SerializeCompressed()), nil
}

// SharedSecret returns the 64-byte secret shared with the holder of pub:
// SHA-512 of the x coordinate of pub multiplied by this scalar. Memo
// encryption and backup payloads are keyed off this value, so the exact
// construction is a wire compatibility requirement.
func (m *PrivateKeyType) SharedSecret(pub *PublicKeyType) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	pubKey, err := secp256k1.ParsePubKey(pub.Data)
	if err != nil {
		return nil, err
	}
	priv := secp256k1.PrivKeyFromBytes(m.Data)
	x := secp256k1.GenerateSharedSecret(priv, pubKey)
	digest := sha512.Sum512(x)
	return digest[:], nil
}

func (m *PrivateKeyType) ToWIF() string {
	return m.ToBase58()
}

// ToBase58 returns the base58check encoding with the 0x80 version byte. The
// version byte also keeps the buffer free of leading 0x00 bytes, which can't
// survive the base58 round trip.
func (m *PrivateKeyType) ToBase58() string {
	data := make([]byte, 0, len(m.Data)+5)
	data = append(data, wifVersion)
	data = append(data, m.Data...)
	temp := sha256.Sum256(data)
	temps := sha256.Sum256(temp[:])
	data = append(data, temps[0:4]...)

	bi := new(big.Int).SetBytes(data).String()
	encoded, _ := base58.BitcoinEncoding.Encode([]byte(bi))
	return string(encoded)
}

func (m *PrivateKeyType) Validate() error {
	if m == nil {
		return ErrNpe
	}
	if len(m.Data) != 32 {
		return ErrKeyLength
	}
	return nil
}

func (m *PrivateKeyType) MarshalJSON() ([]byte, error) {
	val := fmt.Sprintf("\"%s\"", m.ToWIF())
	return []byte(val), nil
}

func (m *PrivateKeyType) UnmarshalJSON(input []byte) error {
	if len(input) < 2 {
		return errors.New("private key length error")
	}
	if input[0] != '"' || input[len(input)-1] != '"' {
		return errors.New("private key error")
	}

	res, err := PrivateKeyFromWIF(string(input[1 : len(input)-1]))
	if err != nil {
		return err
	}
	m.Data = res.Data
	return nil
}
