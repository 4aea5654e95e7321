package rpc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/prototype"
)

// The api names registered on public nodes.
const (
	databaseAPI  = "database"
	historyAPI   = "history"
	broadcastAPI = "network_broadcast"
)

var ErrNotFound = errors.New("rpc: object not found")

// GetAccountByName implements chain.AccountResolver.
func (c *Client) GetAccountByName(ctx context.Context, name string) (*chain.Account, error) {
	var acc *chain.Account
	if err := c.Call(ctx, databaseAPI, "get_account_by_name", []interface{}{name}, &acc); err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.Wrapf(ErrNotFound, "account %s", name)
	}
	return acc, nil
}

// LookupAssetSymbol implements chain.AssetResolver.
func (c *Client) LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error) {
	var assets []*prototype.Asset
	if err := c.Call(ctx, databaseAPI, "lookup_asset_symbols", []interface{}{[]string{symbol}}, &assets); err != nil {
		return nil, err
	}
	if len(assets) == 0 || assets[0] == nil {
		return nil, errors.Wrapf(ErrNotFound, "asset %s", symbol)
	}
	return assets[0], nil
}

// GetObjects implements chain.ObjectReader.
func (c *Client) GetObjects(ctx context.Context, ids []string) ([]json.RawMessage, error) {
	var objects []json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_objects", []interface{}{ids}, &objects)
	return objects, err
}

// GetAccountBalances implements chain.BalanceReader.
func (c *Client) GetAccountBalances(ctx context.Context, accountID string, assetIDs []string) ([]prototype.AssetAmount, error) {
	var balances []prototype.AssetAmount
	err := c.Call(ctx, databaseAPI, "get_account_balances", []interface{}{accountID, assetIDs}, &balances)
	return balances, err
}

// GetAccountLimitOrders implements chain.OrderReader via get_full_accounts.
func (c *Client) GetAccountLimitOrders(ctx context.Context, accountID string) ([]chain.LimitOrder, error) {
	var full []json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_full_accounts",
		[]interface{}{[]string{accountID}, false}, &full)
	if err != nil {
		return nil, err
	}
	if len(full) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "full account %s", accountID)
	}

	// each entry is the pair [account_id, full_record]
	var pair []json.RawMessage
	if err := json.Unmarshal(full[0], &pair); err != nil || len(pair) != 2 {
		return nil, errors.New("rpc: malformed get_full_accounts response")
	}
	var record struct {
		LimitOrders []chain.LimitOrder `json:"limit_orders"`
	}
	if err := json.Unmarshal(pair[1], &record); err != nil {
		return nil, errors.Wrap(err, "rpc: decode limit_orders")
	}
	return record.LimitOrders, nil
}

// GetLimitOrders returns the order book's raw open orders for a market.
func (c *Client) GetLimitOrders(ctx context.Context, baseID, quoteID string, limit int) ([]chain.LimitOrder, error) {
	if limit > 100 {
		limit = 100
	}
	var orders []chain.LimitOrder
	err := c.Call(ctx, databaseAPI, "get_limit_orders", []interface{}{baseID, quoteID, limit}, &orders)
	return orders, err
}

// GetOrderBook returns the aggregated book for a market.
func (c *Client) GetOrderBook(ctx context.Context, baseID, quoteID string, limit int) (json.RawMessage, error) {
	if limit > 50 {
		limit = 50
	}
	var book json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_order_book", []interface{}{baseID, quoteID, limit}, &book)
	return book, err
}

// GetTicker returns the 24h market ticker for a pair of symbols.
func (c *Client) GetTicker(ctx context.Context, baseSymbol, quoteSymbol string) (json.RawMessage, error) {
	var ticker json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_ticker", []interface{}{baseSymbol, quoteSymbol}, &ticker)
	return ticker, err
}

// GetDynamicGlobalProperties returns the chain head state object.
func (c *Client) GetDynamicGlobalProperties(ctx context.Context) (json.RawMessage, error) {
	var props json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_dynamic_global_properties", nil, &props)
	return props, err
}

// GetBlock fetches one block by number.
func (c *Client) GetBlock(ctx context.Context, blockNum uint64) (json.RawMessage, error) {
	var block json.RawMessage
	err := c.Call(ctx, databaseAPI, "get_block", []interface{}{blockNum}, &block)
	return block, err
}

// GetAccountHistory returns up to limit history entries for an account,
// newest first, between the two history object ids.
func (c *Client) GetAccountHistory(ctx context.Context, accountID, start string, limit int, stop string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	err := c.Call(ctx, historyAPI, "get_account_history",
		[]interface{}{accountID, start, limit, stop}, &entries)
	return entries, err
}

// GetMarketHistory returns bucketed market history between two instants.
func (c *Client) GetMarketHistory(ctx context.Context, quoteID, baseID string, bucketSeconds int, start, stop prototype.TimePointSec) ([]json.RawMessage, error) {
	var buckets []json.RawMessage
	err := c.Call(ctx, historyAPI, "get_market_history",
		[]interface{}{quoteID, baseID, bucketSeconds, start, stop}, &buckets)
	return buckets, err
}
