// Package rpc is the websocket JSON-RPC client for exchange nodes. It covers
// exactly the node surface the wallet engine consumes; subscription streams
// and node administration are out of scope.
package rpc

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/logging"
)

var ErrClosed = errors.New("rpc: connection closed")

type request struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *callError      `json:"error"`
}

type callError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *callError) Error() string {
	return e.Message
}

// Client is a connection to one node. A single goroutine owns the read side
// of the socket and dispatches responses to pending calls by request id;
// writes are serialized by a mutex. Safe for concurrent use.
type Client struct {
	conn *websocket.Conn

	chainID    string
	coreSymbol string

	writeMu sync.Mutex
	nextID  uint64

	pendingMu sync.Mutex
	pending   map[uint64]chan *response
	closed    bool
	closeErr  error
}

// Dial connects to a node websocket endpoint, e.g.
// "wss://node2.private.deexnet.com/ws".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "rpc: dial %s", url)
	}
	c := &Client{
		conn:    conn,
		pending: make(map[uint64]chan *response),
	}
	go c.readLoop()
	logging.Log().Debugf("rpc: connected to %s", url)
	return c, nil
}

// Call performs one JSON-RPC call against the named api:
// {"id", "method": "call", "params": [api, method, args]}.
// The result is unmarshaled into out when out is non-nil.
func (c *Client) Call(ctx context.Context, api, method string, args []interface{}, out interface{}) error {
	if args == nil {
		args = []interface{}{}
	}
	id := atomic.AddUint64(&c.nextID, 1)
	req := &request{
		ID:     id,
		Method: "call",
		Params: []interface{}{api, method, args},
	}

	ch := make(chan *response, 1)
	c.pendingMu.Lock()
	if c.closed {
		c.pendingMu.Unlock()
		return c.closeErr
	}
	c.pending[id] = ch
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return errors.Wrapf(err, "rpc: write %s.%s", api, method)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case resp, ok := <-ch:
		if !ok {
			return c.closeErr
		}
		if resp.Error != nil {
			return errors.Wrapf(resp.Error, "rpc: %s.%s", api, method)
		}
		if out == nil {
			return nil
		}
		return errors.Wrapf(json.Unmarshal(resp.Result, out), "rpc: decode %s.%s result", api, method)
	}
}

func (c *Client) readLoop() {
	for {
		var resp response
		if err := c.conn.ReadJSON(&resp); err != nil {
			c.failPending(errors.Wrap(err, "rpc: read"))
			return
		}
		// The send happens under pendingMu so failPending cannot close the
		// channel between the lookup and the send. Each id gets exactly one
		// response and the channel is buffered, so the send never blocks.
		c.pendingMu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
			ch <- &resp
		}
		c.pendingMu.Unlock()
	}
}

func (c *Client) failPending(err error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.closeErr = err
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// Close tears the connection down. In-flight calls fail with ErrClosed.
func (c *Client) Close() error {
	c.failPending(ErrClosed)
	return c.conn.Close()
}
