package rpc

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/logging"
	"github.com/deexnet/deex-go/prototype"
)

// ChainInfo is what the node tells us about the chain at connect time.
type ChainInfo struct {
	ChainID         string
	CoreAssetSymbol string
	AddressPrefix   string
}

// Node owns the process-wide connection to an api node: one URL, at most one
// live client. Connect is idempotent; concurrent callers share the same
// connection attempt, mirroring how every part of a CLI session funnels into
// a single socket.
type Node struct {
	URL           string
	Autoreconnect bool

	mu     sync.Mutex
	client *Client
	info   *ChainInfo
}

func NewNode(url string, autoreconnect bool) *Node {
	return &Node{URL: url, Autoreconnect: autoreconnect}
}

// Connect dials the node if needed and returns the shared client. On first
// connect it fetches the chain id and core asset and installs the chain's
// address prefix for key formatting.
func (n *Node) Connect(ctx context.Context) (*Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil {
		return n.client, nil
	}

	client, err := Dial(ctx, n.URL)
	if err != nil {
		return nil, err
	}

	info, err := fetchChainInfo(ctx, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	client.chainID = info.ChainID
	client.coreSymbol = info.CoreAssetSymbol
	prototype.SetAddressPrefix(info.AddressPrefix)

	n.client = client
	n.info = info
	logging.Log().Infof("connected to api node %s (chain %s, core asset %s)",
		n.URL, info.ChainID, info.CoreAssetSymbol)
	return client, nil
}

// Disconnect closes the connection. A later Connect dials again.
func (n *Node) Disconnect() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil {
		_ = n.client.Close()
		n.client = nil
		n.info = nil
	}
	n.Autoreconnect = false
}

// ChainInfo returns the connect-time chain description, or nil before the
// first successful Connect.
func (n *Node) ChainInfo() *ChainInfo {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.info
}

func fetchChainInfo(ctx context.Context, client *Client) (*ChainInfo, error) {
	var chainID string
	if err := client.Call(ctx, databaseAPI, "get_chain_id", nil, &chainID); err != nil {
		return nil, err
	}

	// object 1.3.0 is always the core asset; its symbol doubles as the
	// chain's public key address prefix
	core, err := client.LookupCoreAsset(ctx)
	if err != nil {
		return nil, err
	}
	return &ChainInfo{
		ChainID:         chainID,
		CoreAssetSymbol: core.Symbol,
		AddressPrefix:   core.Symbol,
	}, nil
}

// LookupCoreAsset resolves the chain's core asset object 1.3.0.
func (c *Client) LookupCoreAsset(ctx context.Context) (*prototype.Asset, error) {
	var assets []*prototype.Asset
	if err := c.Call(ctx, databaseAPI, "get_assets", []interface{}{[]string{"1.3.0"}}, &assets); err != nil {
		return nil, err
	}
	if len(assets) == 0 || assets[0] == nil {
		return nil, errors.Wrap(ErrNotFound, "core asset 1.3.0")
	}
	return assets[0], nil
}

// ChainID reports the id learned at connect time; empty for a bare Dial.
func (c *Client) ChainID() string {
	return c.chainID
}

// CoreAssetSymbol reports the chain's core asset symbol, the default fee
// asset for sessions that do not choose one.
func (c *Client) CoreAssetSymbol() string {
	return c.coreSymbol
}
