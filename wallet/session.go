package wallet

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/logging"
	"github.com/deexnet/deex-go/prototype"
)

// Session is an authenticated account session: one active key, optionally a
// memo key, a resolved account identity and a resolved fee asset.
//
// Identity resolution runs in the background from the moment the session is
// constructed. Every method that reads account or feeAsset first blocks on
// that resolution; nothing ever observes a half-initialized session. The
// gate is created once and never re-armed.
type Session struct {
	client chain.Client

	accountName string
	activeKey   *prototype.PrivateKeyType

	ready   chan struct{}
	initErr error

	mu       sync.RWMutex
	memoKey  *prototype.PrivateKeyType
	account  *chain.Account
	feeAsset *prototype.Asset
}

// NewSession builds a session from a bare active key and starts identity
// resolution. Use Login or LoginFromFile for the credential flows; this
// entry point exists for callers that already hold a private key.
func NewSession(ctx context.Context, client chain.Client, accountName string, activeKey *prototype.PrivateKeyType, feeSymbol string) *Session {
	if feeSymbol == "" {
		if core, ok := client.(interface{ CoreAssetSymbol() string }); ok {
			feeSymbol = core.CoreAssetSymbol()
		}
	}
	s := &Session{
		client:      client,
		accountName: accountName,
		activeKey:   activeKey,
		ready:       make(chan struct{}),
	}
	go s.resolveIdentity(ctx, feeSymbol)
	return s
}

// resolveIdentity fetches the account record and the fee asset concurrently
// and then opens the gate exactly once.
func (s *Session) resolveIdentity(ctx context.Context, feeSymbol string) {
	defer close(s.ready)

	var wg sync.WaitGroup
	var accErr, assetErr error
	var acc *chain.Account
	var fee *prototype.Asset

	wg.Add(2)
	go func() {
		defer wg.Done()
		acc, accErr = s.client.GetAccountByName(ctx, s.accountName)
	}()
	go func() {
		defer wg.Done()
		fee, assetErr = s.client.LookupAssetSymbol(ctx, feeSymbol)
	}()
	wg.Wait()

	if accErr != nil {
		s.initErr = errors.Wrapf(accErr, "resolve account %s", s.accountName)
		return
	}
	if assetErr != nil {
		s.initErr = errors.Wrapf(assetErr, "resolve fee asset %s", feeSymbol)
		return
	}

	s.mu.Lock()
	s.account = acc
	s.feeAsset = fee
	s.mu.Unlock()
	logging.Log().Debugf("session ready: account %s (%s), fee asset %s", s.accountName, acc.ID, fee.Symbol)
}

// wait blocks until identity resolution finished or ctx is done.
func (s *Session) wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.initErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Account returns the resolved account record. Valid only after wait.
func (s *Session) Account(ctx context.Context) (*chain.Account, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, nil
}

// FeeAsset returns the currently configured fee asset. Valid only after wait.
func (s *Session) FeeAsset(ctx context.Context) (*prototype.Asset, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feeAsset, nil
}

// SetFeeAsset swaps the asset operations pay their fee in. Concurrent
// builders observe either the old or the new asset; callers that need a
// strict order must serialize themselves.
func (s *Session) SetFeeAsset(ctx context.Context, feeSymbol string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	asset, err := s.client.LookupAssetSymbol(ctx, feeSymbol)
	if err != nil {
		return errors.Wrapf(err, "resolve fee asset %s", feeSymbol)
	}
	s.mu.Lock()
	s.feeAsset = asset
	s.mu.Unlock()
	return nil
}

// SetMemoKey installs the key used to encrypt and decrypt memos.
func (s *Session) SetMemoKey(key *prototype.PrivateKeyType) {
	s.mu.Lock()
	s.memoKey = key
	s.mu.Unlock()
}

// ActiveKey exposes the signing key for the broadcast layer.
func (s *Session) ActiveKey() *prototype.PrivateKeyType {
	return s.activeKey
}

func (s *Session) memoKeySnapshot() *prototype.PrivateKeyType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memoKey
}

func (s *Session) feeParam() prototype.AssetAmount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feeAsset.FeeParam()
}

func (s *Session) accountID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.ID
}

// Login authenticates by password. The active key is derived from the raw
// seed accountName+"active"+password; note there is deliberately no brain
// key normalization on this path, unlike GenerateKeys. The derived public
// key must equal the account's first active authority key, which is the only
// password check that exists anywhere — the chain never sees the password.
func Login(ctx context.Context, client chain.Client, accountName, password, feeSymbol string) (*Session, error) {
	if accountName == "" || password == "" {
		return nil, prototype.ErrInvalidCredentials
	}

	acc, err := client.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup account %s", accountName)
	}

	activeKey := prototype.PrivateKeyFromSeed(accountName + RoleActive + password)
	activePub, err := activeKey.PubKey()
	if err != nil {
		return nil, err
	}
	authorityKey, err := acc.FirstActiveKey()
	if err != nil {
		return nil, err
	}
	if !activePub.Equal(authorityKey) {
		return nil, prototype.ErrAuthenticationFailed
	}

	s := NewSession(ctx, client, accountName, activeKey, feeSymbol)

	if acc.Options.MemoKey == activePub.ToWIF() {
		s.SetMemoKey(activeKey)
	} else {
		s.SetMemoKey(prototype.PrivateKeyFromSeed(accountName + RoleMemo + password))
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// LoginFromFile authenticates from an encrypted wallet backup exported by
// another client, recovering the active key instead of deriving it. See
// backup.go for the file layout.
func LoginFromFile(ctx context.Context, client chain.Client, backup []byte, password, accountName, feeSymbol string) (*Session, error) {
	contents, inner, err := decryptBackup(backup, password)
	if err != nil {
		return nil, err
	}

	acc, err := client.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup account %s", accountName)
	}
	if len(acc.Active.KeyAuths) == 0 {
		return nil, chain.ErrEmptyAuthority
	}
	activeAuth := acc.Active.KeyAuths[0].Key

	record := contents.findKey(activeAuth)
	if record == nil {
		return nil, errors.Wrapf(prototype.ErrKeyNotFound, "no active key for account %s", accountName)
	}
	activeKey, err := decryptKeyRecord(inner, record)
	if err != nil {
		return nil, err
	}

	s := NewSession(ctx, client, accountName, activeKey, feeSymbol)

	if acc.Options.MemoKey == activeAuth {
		s.SetMemoKey(activeKey)
	} else {
		memoRecord := contents.findKey(acc.Options.MemoKey)
		if memoRecord == nil {
			return nil, errors.Wrapf(prototype.ErrKeyNotFound, "no memo key for account %s", accountName)
		}
		memoKey, err := decryptKeyRecord(inner, memoRecord)
		if err != nil {
			return nil, err
		}
		s.SetMemoKey(memoKey)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Balance is one asset position of the account.
type Balance struct {
	Asset  *prototype.Asset
	Amount decimal.Decimal
}

// Balances reads the account's balances for the given symbols.
func (s *Session) Balances(ctx context.Context, symbols ...string) ([]Balance, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	assetsByID := make(map[string]*prototype.Asset, len(symbols))
	assetIDs := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		asset, err := s.client.LookupAssetSymbol(ctx, symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve asset %s", symbol)
		}
		assetsByID[asset.ID] = asset
		assetIDs = append(assetIDs, asset.ID)
	}

	raw, err := s.client.GetAccountBalances(ctx, s.accountID(), assetIDs)
	if err != nil {
		return nil, err
	}

	balances := make([]Balance, 0, len(raw))
	for _, amount := range raw {
		asset, ok := assetsByID[amount.AssetID]
		if !ok {
			continue
		}
		balances = append(balances, Balance{Asset: asset, Amount: asset.FromParam(amount)})
	}
	return balances, nil
}

// Orders lists the account's open limit orders.
func (s *Session) Orders(ctx context.Context) ([]chain.LimitOrder, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.client.GetAccountLimitOrders(ctx, s.accountID())
}

// GetOrder fetches one order object by id.
func (s *Session) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	objects, err := s.client.GetObjects(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, errors.Errorf("order %s not found", id)
	}
	return objects[0], nil
}

// SendOperation broadcasts a single operation signed with the active key.
func (s *Session) SendOperation(ctx context.Context, op prototype.Operation) (*chain.BroadcastResult, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.client.Broadcast(ctx, []prototype.Operation{op}, []*prototype.PrivateKeyType{s.activeKey})
}

// createdObject fetches the object a broadcast created, e.g. a new order.
func (s *Session) createdObject(ctx context.Context, result *chain.BroadcastResult) (json.RawMessage, error) {
	if len(result.OperationResults) == 0 {
		return nil, errors.New("broadcast reported no operation results")
	}
	id, err := result.OperationResults[0].ObjectID()
	if err != nil {
		return nil, err
	}
	objects, err := s.client.GetObjects(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, errors.Errorf("created object %s not found", id)
	}
	return objects[0], nil
}
