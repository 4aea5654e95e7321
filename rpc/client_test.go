package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// fakeNode answers a fixed set of database api calls over a real websocket.
type fakeNode struct {
	upgrader websocket.Upgrader
	handlers map[string]func(args []json.RawMessage) (interface{}, *callError)
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		var req struct {
			ID     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		var api, method string
		var args []json.RawMessage
		_ = json.Unmarshal(req.Params[0], &api)
		_ = json.Unmarshal(req.Params[1], &method)
		_ = json.Unmarshal(req.Params[2], &args)

		resp := map[string]interface{}{"id": req.ID}
		if handler, ok := n.handlers[api+"."+method]; ok {
			result, callErr := handler(args)
			if callErr != nil {
				resp["error"] = callErr
			} else {
				resp["result"] = result
			}
		} else {
			resp["error"] = &callError{Code: -32601, Message: "method not found: " + method}
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

func startFakeNode(t *testing.T, handlers map[string]func(args []json.RawMessage) (interface{}, *callError)) (*httptest.Server, string) {
	t.Helper()
	node := &fakeNode{handlers: handlers}
	server := httptest.NewServer(node)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	return server, wsURL
}

func TestClientCall(t *testing.T) {
	myassert := assert.New(t)
	server, wsURL := startFakeNode(t, map[string]func(args []json.RawMessage) (interface{}, *callError){
		"database.get_account_by_name": func(args []json.RawMessage) (interface{}, *callError) {
			var name string
			_ = json.Unmarshal(args[0], &name)
			if name != "alice" {
				return nil, nil
			}
			return map[string]interface{}{
				"id":   "1.2.100",
				"name": "alice",
				"active": map[string]interface{}{
					"weight_threshold": 1,
					"key_auths":        []interface{}{[]interface{}{"DXsomekey", 1}},
				},
				"options": map[string]interface{}{"memo_key": "DXsomekey"},
			}, nil
		},
	})
	defer server.Close()

	client, err := Dial(context.Background(), wsURL)
	myassert.NoError(err)
	defer client.Close()

	acc, err := client.GetAccountByName(context.Background(), "alice")
	myassert.NoError(err)
	myassert.Equal("1.2.100", acc.ID)
	myassert.Equal("DXsomekey", acc.Active.KeyAuths[0].Key)

	// unknown account resolves to null -> ErrNotFound
	_, err = client.GetAccountByName(context.Background(), "ghost")
	myassert.Error(err)
}

func TestClientCallError(t *testing.T) {
	myassert := assert.New(t)
	server, wsURL := startFakeNode(t, nil)
	defer server.Close()

	client, err := Dial(context.Background(), wsURL)
	myassert.NoError(err)
	defer client.Close()

	err = client.Call(context.Background(), "database", "no_such_method", nil, nil)
	myassert.Error(err)
	myassert.Contains(err.Error(), "no_such_method")
}

func TestClientContextCancel(t *testing.T) {
	myassert := assert.New(t)
	// a node that never answers
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	client, err := Dial(context.Background(), wsURL)
	myassert.NoError(err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = client.Call(ctx, "database", "get_chain_id", nil, nil)
	myassert.Equal(context.Canceled, err)
}

func TestClientCloseDuringCalls(t *testing.T) {
	myassert := assert.New(t)
	// Close races the read loop's response dispatch; a send on a channel
	// that failPending already closed would panic the whole process. Run
	// many rounds of concurrent calls and teardown to cover the window.
	for i := 0; i < 200; i++ {
		server, wsURL := startFakeNode(t, map[string]func(args []json.RawMessage) (interface{}, *callError){
			"database.get_chain_id": func([]json.RawMessage) (interface{}, *callError) {
				return "deadbeef", nil
			},
		})

		client, err := Dial(context.Background(), wsURL)
		myassert.NoError(err)

		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 10; k++ {
					var id string
					if err := client.Call(context.Background(), "database", "get_chain_id", nil, &id); err != nil {
						return
					}
				}
			}()
		}
		client.Close()
		wg.Wait()
		server.Close()

		// calls after Close fail cleanly
		err = client.Call(context.Background(), "database", "get_chain_id", nil, nil)
		myassert.Equal(ErrClosed, err)
	}
}

func TestNodeConnectLifecycle(t *testing.T) {
	myassert := assert.New(t)
	server, wsURL := startFakeNode(t, map[string]func(args []json.RawMessage) (interface{}, *callError){
		"database.get_chain_id": func([]json.RawMessage) (interface{}, *callError) {
			return "deadbeef", nil
		},
		"database.get_assets": func([]json.RawMessage) (interface{}, *callError) {
			return []interface{}{map[string]interface{}{
				"id": "1.3.0", "symbol": "DX", "precision": 5,
			}}, nil
		},
	})
	defer server.Close()

	node := NewNode(wsURL, true)
	client, err := node.Connect(context.Background())
	myassert.NoError(err)
	myassert.Equal("deadbeef", client.ChainID())
	myassert.Equal("DX", client.CoreAssetSymbol())
	myassert.Equal("DX", node.ChainInfo().AddressPrefix)

	// second Connect reuses the same client
	again, err := node.Connect(context.Background())
	myassert.NoError(err)
	myassert.Same(client, again)

	node.Disconnect()
	myassert.Nil(node.ChainInfo())
	myassert.False(node.Autoreconnect)
}
