package prototype

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/itchyny/base58-go"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // protocol-mandated digest
)

// The address prefix is a chain property, not a constant: the node reports it
// at connect time and every public key printed or parsed afterwards carries
// it. Default matches the production chain.
var (
	addressPrefix   = "DX"
	addressPrefixMu sync.RWMutex
)

func SetAddressPrefix(prefix string) {
	addressPrefixMu.Lock()
	defer addressPrefixMu.Unlock()
	addressPrefix = prefix
}

func AddressPrefix() string {
	addressPrefixMu.RLock()
	defer addressPrefixMu.RUnlock()
	return addressPrefix
}

// PublicKeyType is a 33-byte compressed secp256k1 point.
type PublicKeyType struct {
	Data []byte
}

func PublicKeyFromBytes(buffer []byte) *PublicKeyType {
	result := new(PublicKeyType)
	result.Data = buffer
	return result
}

// PublicKeyFromWIF decodes "<prefix><base58(key || ripemd160(key)[0:4])>".
// Unlike private keys the checksum here is RIPEMD-160, a quirk the chain
// inherited from its ancestors and one we must reproduce byte for byte.
//
// Compressed ecc keys always start with 0x02 or 0x03, so the big.Int round
// trip below can't eat leading zero bytes.
func PublicKeyFromWIF(encoded string) (*PublicKeyType, error) {
	if encoded == "" {
		return nil, ErrKeyLength
	}

	prefix := AddressPrefix()
	if len(encoded) <= len(prefix) || !strings.HasPrefix(encoded, prefix) {
		return nil, ErrPubKeyFormatErr
	}

	buffer := []byte(encoded)[len(prefix):]
	decoded, err := base58.BitcoinEncoding.Decode(buffer)
	if err != nil {
		return nil, err
	}

	x, ok := new(big.Int).SetString(string(decoded), 10)
	if !ok {
		return nil, ErrPubKeyFormatErr
	}

	buf := x.Bytes()
	if len(buf) <= 4 {
		return nil, ErrPubKeyFormatErr
	}

	data, checksum := buf[:len(buf)-4], buf[len(buf)-4:]
	hasher := ripemd160.New()
	hasher.Write(data)
	digest := hasher.Sum(nil)

	if !bytes.Equal(digest[0:4], checksum) {
		return nil, ErrPubKeyFormatErr
	}

	return PublicKeyFromBytes(data), nil
}

func (m *PublicKeyType) Equal(other *PublicKeyType) bool {
	return bytes.Equal(m.Data, other.Data)
}

func (m *PublicKeyType) ToWIF() string {
	return fmt.Sprintf("%s%s", AddressPrefix(), m.ToBase58())
}

func (m *PublicKeyType) ToBase58() string {
	hasher := ripemd160.New()
	hasher.Write(m.Data)
	digest := hasher.Sum(nil)

	data := make([]byte, 0, len(m.Data)+4)
	data = append(data, m.Data...)
	data = append(data, digest[0:4]...)

	bi := new(big.Int).SetBytes(data).String()
	encoded, _ := base58.BitcoinEncoding.Encode([]byte(bi))
	return string(encoded)
}

func (m *PublicKeyType) Validate() error {
	if m == nil {
		return ErrNpe
	}
	if len(m.Data) != 33 {
		return ErrKeyLength
	}
	return nil
}

func (m *PublicKeyType) MarshalJSON() ([]byte, error) {
	val := fmt.Sprintf("\"%s\"", m.ToWIF())
	return []byte(val), nil
}

func (m *PublicKeyType) UnmarshalJSON(input []byte) error {
	if len(input) < 2 {
		return ErrPubKeyFormatErr
	}
	if input[0] != '"' || input[len(input)-1] != '"' {
		return ErrPubKeyFormatErr
	}

	res, err := PublicKeyFromWIF(string(input[1 : len(input)-1]))
	if err != nil {
		return err
	}
	m.Data = res.Data
	return nil
}
