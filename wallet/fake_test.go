package wallet

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/prototype"
)

// fakeClient is an in-memory chain.Client for engine tests.
type fakeClient struct {
	accounts map[string]*chain.Account
	assets   map[string]*prototype.Asset
	objects  map[string]json.RawMessage
	balances map[string][]prototype.AssetAmount
	orders   map[string][]chain.LimitOrder

	accountErr error
	assetErr   error

	accountCalls int
	broadcasts   []broadcastRecord
	nextResult   *chain.BroadcastResult
}

type broadcastRecord struct {
	ops  []prototype.Operation
	keys []*prototype.PrivateKeyType
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		accounts: make(map[string]*chain.Account),
		assets:   make(map[string]*prototype.Asset),
		objects:  make(map[string]json.RawMessage),
		balances: make(map[string][]prototype.AssetAmount),
		orders:   make(map[string][]chain.LimitOrder),
	}
}

func (f *fakeClient) addAsset(symbol, id string, precision int32) *prototype.Asset {
	asset := &prototype.Asset{Symbol: symbol, ID: id, Precision: precision}
	f.assets[symbol] = asset
	return asset
}

func (f *fakeClient) GetAccountByName(ctx context.Context, name string) (*chain.Account, error) {
	f.accountCalls++
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	acc, ok := f.accounts[name]
	if !ok {
		return nil, errors.Errorf("account %s not found", name)
	}
	return acc, nil
}

func (f *fakeClient) LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error) {
	if f.assetErr != nil {
		return nil, f.assetErr
	}
	asset, ok := f.assets[symbol]
	if !ok {
		return nil, errors.Errorf("asset %s not found", symbol)
	}
	return asset, nil
}

func (f *fakeClient) GetObjects(ctx context.Context, ids []string) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		if obj, ok := f.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (f *fakeClient) Broadcast(ctx context.Context, ops []prototype.Operation, keys []*prototype.PrivateKeyType) (*chain.BroadcastResult, error) {
	f.broadcasts = append(f.broadcasts, broadcastRecord{ops: ops, keys: keys})
	if f.nextResult != nil {
		return f.nextResult, nil
	}
	return &chain.BroadcastResult{TxID: "deadbeef"}, nil
}

func (f *fakeClient) GetAccountBalances(ctx context.Context, accountID string, assetIDs []string) ([]prototype.AssetAmount, error) {
	return f.balances[accountID], nil
}

func (f *fakeClient) GetAccountLimitOrders(ctx context.Context, accountID string) ([]chain.LimitOrder, error) {
	return f.orders[accountID], nil
}

func (f *fakeClient) GetBlock(ctx context.Context, blockNum uint64) (json.RawMessage, error) {
	return nil, errors.New("no blocks")
}

func (f *fakeClient) GetDynamicGlobalProperties(ctx context.Context) (json.RawMessage, error) {
	return nil, errors.New("no head state")
}

func (f *fakeClient) GetAccountHistory(ctx context.Context, accountID, start string, limit int, stop string) ([]json.RawMessage, error) {
	return nil, nil
}

func (f *fakeClient) GetTicker(ctx context.Context, baseSymbol, quoteSymbol string) (json.RawMessage, error) {
	return nil, errors.New("no market data")
}

func (f *fakeClient) GetOrderBook(ctx context.Context, baseID, quoteID string, limit int) (json.RawMessage, error) {
	return nil, errors.New("no market data")
}

func (f *fakeClient) GetLimitOrders(ctx context.Context, baseID, quoteID string, limit int) ([]chain.LimitOrder, error) {
	return nil, nil
}

func (f *fakeClient) GetMarketHistory(ctx context.Context, quoteID, baseID string, bucketSeconds int, start, stop prototype.TimePointSec) ([]json.RawMessage, error) {
	return nil, nil
}

// testAccount registers an account whose active authority and memo key match
// the password-derived keys, so Login succeeds against it.
func (f *fakeClient) testAccount(name, id, password string) *chain.Account {
	activePub := mustPub(prototype.PrivateKeyFromSeed(name + RoleActive + password))
	memoPub := mustPub(prototype.PrivateKeyFromSeed(name + RoleMemo + password))
	acc := &chain.Account{
		ID:   id,
		Name: name,
		Active: chain.Authority{
			WeightThreshold: 1,
			KeyAuths:        []chain.KeyAuth{{Key: activePub.ToWIF(), Weight: 1}},
		},
		Options: chain.AccountOptions{MemoKey: memoPub.ToWIF()},
	}
	f.accounts[name] = acc
	return acc
}

func mustPub(priv *prototype.PrivateKeyType) *prototype.PublicKeyType {
	pub, err := priv.PubKey()
	if err != nil {
		panic(err)
	}
	return pub
}
