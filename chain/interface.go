package chain

import (
	"context"
	"encoding/json"

	"github.com/deexnet/deex-go/prototype"
)

// AccountResolver resolves a symbolic account name to its on-chain record.
type AccountResolver interface {
	GetAccountByName(ctx context.Context, name string) (*Account, error)
}

// AssetResolver resolves an asset symbol to its on-chain record.
type AssetResolver interface {
	LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error)
}

// ObjectReader fetches raw chain objects by id.
type ObjectReader interface {
	GetObjects(ctx context.Context, ids []string) ([]json.RawMessage, error)
}

// Broadcaster assembles the given operations into one transaction, signs it
// with the given keys and submits it. Serialization and signing live behind
// this boundary; the engine only supplies operations and key material.
type Broadcaster interface {
	Broadcast(ctx context.Context, ops []prototype.Operation, keys []*prototype.PrivateKeyType) (*BroadcastResult, error)
}

// BalanceReader reads account balances for a set of asset ids.
type BalanceReader interface {
	GetAccountBalances(ctx context.Context, accountID string, assetIDs []string) ([]prototype.AssetAmount, error)
}

// OrderReader reads an account's open limit orders.
type OrderReader interface {
	GetAccountLimitOrders(ctx context.Context, accountID string) ([]LimitOrder, error)
}

// BlockReader reads blocks and the chain head state.
type BlockReader interface {
	GetBlock(ctx context.Context, blockNum uint64) (json.RawMessage, error)
	GetDynamicGlobalProperties(ctx context.Context) (json.RawMessage, error)
}

// HistoryReader reads an account's operation history, newest first.
type HistoryReader interface {
	GetAccountHistory(ctx context.Context, accountID, start string, limit int, stop string) ([]json.RawMessage, error)
}

// MarketReader reads public market data for an asset pair.
type MarketReader interface {
	GetTicker(ctx context.Context, baseSymbol, quoteSymbol string) (json.RawMessage, error)
	GetOrderBook(ctx context.Context, baseID, quoteID string, limit int) (json.RawMessage, error)
	GetLimitOrders(ctx context.Context, baseID, quoteID string, limit int) ([]LimitOrder, error)
	GetMarketHistory(ctx context.Context, quoteID, baseID string, bucketSeconds int, start, stop prototype.TimePointSec) ([]json.RawMessage, error)
}

// Client is the full node surface the wallet consumes.
type Client interface {
	AccountResolver
	AssetResolver
	ObjectReader
	Broadcaster
	BalanceReader
	OrderReader
	BlockReader
	HistoryReader
	MarketReader
}
