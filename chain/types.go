// Package chain defines the boundary between the wallet engine and the node:
// the resolved record types the node returns and the narrow interfaces the
// engine consumes. The engine never talks to a socketed client directly, it
// talks to these interfaces.
package chain

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/prototype"
)

var ErrEmptyAuthority = errors.New("account has no active key authority")

// KeyAuth is one entry of an authority: a public key and its voting weight.
// On the wire it is the pair array ["DX...", weight].
type KeyAuth struct {
	Key    string
	Weight uint16
}

func (k KeyAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{k.Key, k.Weight})
}

func (k *KeyAuth) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.Errorf("key_auth pair has %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &k.Key); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &k.Weight)
}

// Authority is the set of keys allowed to act in some role for an account.
type Authority struct {
	WeightThreshold uint32    `json:"weight_threshold"`
	KeyAuths        []KeyAuth `json:"key_auths"`
}

// AccountOptions carries the per-account settings the engine cares about;
// everything else the node returns is passed through untouched.
type AccountOptions struct {
	MemoKey string `json:"memo_key"`
}

// Account is a resolved on-chain account record.
type Account struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Active  Authority      `json:"active"`
	Options AccountOptions `json:"options"`
}

// FirstActiveKey returns the account's first active-authority public key.
// Password login is verified against exactly this key.
func (a *Account) FirstActiveKey() (*prototype.PublicKeyType, error) {
	if len(a.Active.KeyAuths) == 0 {
		return nil, ErrEmptyAuthority
	}
	return prototype.PublicKeyFromWIF(a.Active.KeyAuths[0].Key)
}

// MemoKey returns the account's configured memo public key.
func (a *Account) MemoKey() (*prototype.PublicKeyType, error) {
	return prototype.PublicKeyFromWIF(a.Options.MemoKey)
}

// LimitOrder is an open order belonging to an account.
type LimitOrder struct {
	ID        string          `json:"id"`
	Seller    string          `json:"seller"`
	ForSale   json.Number     `json:"for_sale"`
	SellPrice json.RawMessage `json:"sell_price"`
	Expiry    string          `json:"expiration"`
}

// OperationResult is one entry of a broadcast's operation_results: the pair
// array [type, value], where value is the created object id for
// order-creating operations.
type OperationResult struct {
	Type  int
	Value json.RawMessage
}

func (r *OperationResult) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.Errorf("operation_result pair has %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Type); err != nil {
		return err
	}
	r.Value = pair[1]
	return nil
}

func (r OperationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Type, r.Value})
}

// ObjectID decodes the result value as an object id string, e.g. the id of a
// freshly created limit order.
func (r *OperationResult) ObjectID() (string, error) {
	var id string
	if err := json.Unmarshal(r.Value, &id); err != nil {
		return "", errors.Wrap(err, "operation result is not an object id")
	}
	return id, nil
}

// BroadcastResult is what the node reports back for one transaction.
type BroadcastResult struct {
	TxID             string            `json:"id"`
	BlockNum         uint32            `json:"block_num"`
	OperationResults []OperationResult `json:"operation_results"`
}
