package commands

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/prototype"
	"github.com/deexnet/deex-go/wallet"
)

// fakeChain is an in-memory chain.Client for command tests.
type fakeChain struct {
	accounts map[string]*chain.Account
	assets   map[string]*prototype.Asset
	balances map[string][]prototype.AssetAmount
	blocks   map[uint64]json.RawMessage
	history  map[string][]json.RawMessage
	tickers  map[string]json.RawMessage
	books    map[string]json.RawMessage

	headState json.RawMessage

	broadcastOps []prototype.Operation

	historyCalls []historyCall
	blockCalls   []uint64
	tickerCalls  []string
	bookCalls    []bookCall
}

type historyCall struct {
	accountID string
	start     string
	limit     int
	stop      string
}

type bookCall struct {
	baseID  string
	quoteID string
	limit   int
}

func newFakeChain() *fakeChain {
	f := &fakeChain{
		accounts: make(map[string]*chain.Account),
		assets:   make(map[string]*prototype.Asset),
		balances: make(map[string][]prototype.AssetAmount),
		blocks:   make(map[uint64]json.RawMessage),
		history:  make(map[string][]json.RawMessage),
		tickers:  make(map[string]json.RawMessage),
		books:    make(map[string]json.RawMessage),
	}
	f.assets["DX"] = &prototype.Asset{Symbol: "DX", ID: "1.3.0", Precision: 5}
	return f
}

// addAccount registers an account whose keys derive from the password.
func (f *fakeChain) addAccount(name, id, password string) {
	activePub := derivePub(name + wallet.RoleActive + password)
	memoPub := derivePub(name + wallet.RoleMemo + password)
	f.accounts[name] = &chain.Account{
		ID:   id,
		Name: name,
		Active: chain.Authority{
			WeightThreshold: 1,
			KeyAuths:        []chain.KeyAuth{{Key: activePub, Weight: 1}},
		},
		Options: chain.AccountOptions{MemoKey: memoPub},
	}
}

func derivePub(seed string) string {
	pub, err := prototype.PrivateKeyFromSeed(seed).PubKey()
	if err != nil {
		panic(err)
	}
	return pub.ToWIF()
}

// CoreAssetSymbol mirrors the optional method on rpc.Client that wallet
// sessions use to default the fee asset.
func (f *fakeChain) CoreAssetSymbol() string {
	return "DX"
}

func (f *fakeChain) GetAccountByName(ctx context.Context, name string) (*chain.Account, error) {
	acc, ok := f.accounts[name]
	if !ok {
		return nil, errors.Errorf("account %s not found", name)
	}
	return acc, nil
}

func (f *fakeChain) LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error) {
	asset, ok := f.assets[symbol]
	if !ok {
		return nil, errors.Errorf("asset %s not found", symbol)
	}
	return asset, nil
}

func (f *fakeChain) GetObjects(ctx context.Context, ids []string) ([]json.RawMessage, error) {
	return nil, nil
}

func (f *fakeChain) Broadcast(ctx context.Context, ops []prototype.Operation, keys []*prototype.PrivateKeyType) (*chain.BroadcastResult, error) {
	f.broadcastOps = append(f.broadcastOps, ops...)
	return &chain.BroadcastResult{TxID: "deadbeef"}, nil
}

func (f *fakeChain) GetAccountBalances(ctx context.Context, accountID string, assetIDs []string) ([]prototype.AssetAmount, error) {
	return f.balances[accountID], nil
}

func (f *fakeChain) GetAccountLimitOrders(ctx context.Context, accountID string) ([]chain.LimitOrder, error) {
	return nil, nil
}

func (f *fakeChain) GetBlock(ctx context.Context, blockNum uint64) (json.RawMessage, error) {
	f.blockCalls = append(f.blockCalls, blockNum)
	block, ok := f.blocks[blockNum]
	if !ok {
		return nil, errors.Errorf("block %d not found", blockNum)
	}
	return block, nil
}

func (f *fakeChain) GetDynamicGlobalProperties(ctx context.Context) (json.RawMessage, error) {
	if f.headState == nil {
		return nil, errors.New("no head state")
	}
	return f.headState, nil
}

func (f *fakeChain) GetAccountHistory(ctx context.Context, accountID, start string, limit int, stop string) ([]json.RawMessage, error) {
	f.historyCalls = append(f.historyCalls, historyCall{accountID, start, limit, stop})
	return f.history[accountID], nil
}

func (f *fakeChain) GetTicker(ctx context.Context, baseSymbol, quoteSymbol string) (json.RawMessage, error) {
	f.tickerCalls = append(f.tickerCalls, baseSymbol+"/"+quoteSymbol)
	ticker, ok := f.tickers[baseSymbol+"/"+quoteSymbol]
	if !ok {
		return nil, errors.Errorf("no ticker for %s/%s", baseSymbol, quoteSymbol)
	}
	return ticker, nil
}

func (f *fakeChain) GetOrderBook(ctx context.Context, baseID, quoteID string, limit int) (json.RawMessage, error) {
	f.bookCalls = append(f.bookCalls, bookCall{baseID, quoteID, limit})
	book, ok := f.books[baseID+"/"+quoteID]
	if !ok {
		return nil, errors.Errorf("no book for %s/%s", baseID, quoteID)
	}
	return book, nil
}

func (f *fakeChain) GetLimitOrders(ctx context.Context, baseID, quoteID string, limit int) ([]chain.LimitOrder, error) {
	return nil, nil
}

func (f *fakeChain) GetMarketHistory(ctx context.Context, quoteID, baseID string, bucketSeconds int, start, stop prototype.TimePointSec) ([]json.RawMessage, error) {
	return nil, nil
}
