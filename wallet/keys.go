// Package wallet is the account session engine: deterministic key derivation
// from credentials, login against on-chain key authority, encrypted backup
// import and the operation builders a trading session is made of.
package wallet

import (
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/tyler-smith/go-bip39"

	"github.com/deexnet/deex-go/prototype"
)

// Key roles. Active authorizes funds movement, owner controls the account
// itself, memo only encrypts messages.
const (
	RoleActive = "active"
	RoleOwner  = "owner"
	RoleMemo   = "memo"
)

const minPasswordLength = 12

var defaultRoles = []string{RoleActive, RoleOwner, RoleMemo}

// DerivedKeys is one key pair per role.
type DerivedKeys struct {
	PrivKeys map[string]*prototype.PrivateKeyType
	PubKeys  map[string]*prototype.PublicKeyType
}

// GenerateKeys deterministically derives one key pair per role from the
// credentials: seed = normalize(accountName + role + password). There is no
// randomness and nothing to store; whoever can type the password can
// re-derive the keys, which is the whole login scheme.
func GenerateKeys(accountName, password string, roles ...string) (*DerivedKeys, error) {
	if accountName == "" || password == "" {
		return nil, prototype.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, prototype.ErrWeakPassword
	}

	roleSet := mapset.NewSet()
	if len(roles) == 0 {
		roles = defaultRoles
	}
	for _, role := range roles {
		roleSet.Add(role)
	}

	keys := &DerivedKeys{
		PrivKeys: make(map[string]*prototype.PrivateKeyType),
		PubKeys:  make(map[string]*prototype.PublicKeyType),
	}
	for _, r := range roleSet.ToSlice() {
		role := r.(string)
		priv := prototype.PrivateKeyFromSeed(NormalizeBrainKey(accountName + role + password))
		pub, err := priv.PubKey()
		if err != nil {
			return nil, err
		}
		keys.PrivKeys[role] = priv
		keys.PubKeys[role] = pub
	}
	return keys, nil
}

// NormalizeBrainKey canonicalizes a passphrase-like seed: surrounding
// whitespace is stripped and internal whitespace runs collapse to a single
// space. Case is preserved. The exact rules are a compatibility requirement,
// every client must derive the same key from the same phrase.
func NormalizeBrainKey(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

// SuggestBrainKey proposes a random high-entropy passphrase a user can write
// down. It plays no role in derivation, it is only a generator of good
// passwords.
func SuggestBrainKey() (string, error) {
	entropy, err := bip39.NewEntropy(160)
	if err != nil {
		return "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(mnemonic), nil
}
