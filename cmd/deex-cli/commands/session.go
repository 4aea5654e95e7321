package commands

import (
	"fmt"
	"sync"

	"github.com/coschain/cobra"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/wallet"
)

// SessionRef holds the account session the shell is currently logged into.
// Commands share it through the cobra context; login swaps it, close drops
// it.
type SessionRef struct {
	mu sync.Mutex
	s  *wallet.Session
}

func (r *SessionRef) Set(s *wallet.Session) {
	r.mu.Lock()
	r.s = s
	r.mu.Unlock()
}

func (r *SessionRef) Current() (*wallet.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s, r.s != nil
}

func (r *SessionRef) Clear() {
	r.mu.Lock()
	r.s = nil
	r.mu.Unlock()
}

func sessionFromContext(cmd *cobra.Command) (*wallet.Session, bool) {
	o := cmd.Context["session"]
	ref, ok := o.(*SessionRef)
	if !ok {
		fmt.Println("no session holder configured")
		return nil, false
	}
	s, ok := ref.Current()
	if !ok {
		fmt.Println("please login first")
		return nil, false
	}
	return s, true
}

func clientFromContext(cmd *cobra.Command) (chain.Client, bool) {
	c := cmd.Context["rpcclient"]
	client, ok := c.(chain.Client)
	if !ok {
		fmt.Println("not connected to a node")
		return nil, false
	}
	return client, true
}
