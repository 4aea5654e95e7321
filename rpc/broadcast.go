package rpc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/logging"
	"github.com/deexnet/deex-go/prototype"
)

// Transactions reference a recent block and expire shortly after, so a
// replayed broadcast dies on its own.
const txExpiration = 30 * time.Second

type dynamicGlobalProperties struct {
	HeadBlockNumber uint64 `json:"head_block_number"`
	HeadBlockID     string `json:"head_block_id"`
	Time            string `json:"time"`
}

type signedTransaction struct {
	RefBlockNum    uint16                 `json:"ref_block_num"`
	RefBlockPrefix uint32                 `json:"ref_block_prefix"`
	Expiration     prototype.TimePointSec `json:"expiration"`
	Operations     []json.RawMessage      `json:"operations"`
	Extensions     prototype.Extensions   `json:"extensions"`
	Signatures     []string               `json:"signatures"`
}

// Broadcast implements chain.Broadcaster: it assembles the operations into
// one transaction anchored at the current head block, signs the transaction
// digest with every supplied key and submits it synchronously, returning the
// node's processed-transaction report.
func (c *Client) Broadcast(ctx context.Context, ops []prototype.Operation, keys []*prototype.PrivateKeyType) (*chain.BroadcastResult, error) {
	if len(ops) == 0 {
		return nil, errors.New("rpc: empty transaction")
	}

	var dgp dynamicGlobalProperties
	if err := c.Call(ctx, databaseAPI, "get_dynamic_global_properties", nil, &dgp); err != nil {
		return nil, err
	}

	refBlockNum, refBlockPrefix, err := refBlockFields(dgp)
	if err != nil {
		return nil, err
	}

	tx := &signedTransaction{
		RefBlockNum:    refBlockNum,
		RefBlockPrefix: refBlockPrefix,
		Expiration:     prototype.NewTimePointSec(time.Now().Add(txExpiration)),
		Signatures:     []string{},
	}
	for _, op := range ops {
		wrapped, err := prototype.WrapOperation(op)
		if err != nil {
			return nil, err
		}
		tx.Operations = append(tx.Operations, wrapped)
	}

	if err := c.signTransaction(tx, keys); err != nil {
		return nil, err
	}

	var result chain.BroadcastResult
	if err := c.Call(ctx, broadcastAPI, "broadcast_transaction_synchronous",
		[]interface{}{tx}, &result); err != nil {
		return nil, err
	}
	logging.Log().Infof("rpc: broadcast %d operation(s), tx %s in block %d",
		len(ops), result.TxID, result.BlockNum)
	return &result, nil
}

// The transaction digest covers the chain id and the transaction body, so a
// signature can never be replayed onto another chain.
func (c *Client) signTransaction(tx *signedTransaction, keys []*prototype.PrivateKeyType) error {
	unsigned, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	payload := make([]byte, 0, len(c.ChainID())+len(unsigned))
	payload = append(payload, []byte(c.ChainID())...)
	payload = append(payload, unsigned...)
	digest := sha256.Sum256(payload)

	for _, key := range keys {
		if err := key.Validate(); err != nil {
			return err
		}
		priv := secp256k1.PrivKeyFromBytes(key.Data)
		sig := ecdsa.SignCompact(priv, digest[:], true)
		tx.Signatures = append(tx.Signatures, hex.EncodeToString(sig))
	}
	return nil
}

// refBlockFields derives the TaPoS anchor: the low 16 bits of the head block
// number and a 32-bit prefix taken from bytes [4,8) of the head block id.
func refBlockFields(dgp dynamicGlobalProperties) (uint16, uint32, error) {
	idBytes, err := hex.DecodeString(dgp.HeadBlockID)
	if err != nil || len(idBytes) < 8 {
		return 0, 0, errors.Errorf("rpc: malformed head_block_id %q", dgp.HeadBlockID)
	}
	refBlockNum := uint16(dgp.HeadBlockNumber & 0xffff)
	refBlockPrefix := uint32(idBytes[4]) | uint32(idBytes[5])<<8 |
		uint32(idBytes[6])<<16 | uint32(idBytes[7])<<24
	return refBlockNum, refBlockPrefix, nil
}
