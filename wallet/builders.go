package wallet

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/deexnet/deex-go/chain"
	"github.com/deexnet/deex-go/prototype"
)

// The builders turn human-level arguments into protocol operations. Shared
// rules: amounts scale by floor(amount * 10^precision) exactly once,
// price-derived amounts multiply as decimals before the final floor, a zero
// integer amount on either side aborts, the fee is the session's fee asset
// with its asset-defined amount, expiration defaults to five years out and
// extensions to the empty sequence.

// TransferOp builds a transfer of amount units of symbol to toName. A
// non-empty memo is encrypted for the recipient's memo key.
func (s *Session) TransferOp(ctx context.Context, toName, symbol string, amount decimal.Decimal, memo string) (*prototype.TransferOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	asset, err := s.client.LookupAssetSymbol(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", symbol)
	}
	amountParam, err := asset.ToParam(amount)
	if err != nil {
		return nil, err
	}

	to, err := s.client.GetAccountByName(ctx, toName)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve recipient %s", toName)
	}

	op := &prototype.TransferOperation{
		Fee:    s.feeParam(),
		From:   s.accountID(),
		To:     to.ID,
		Amount: amountParam,
	}
	if memo != "" {
		encoded, err := s.EncodeMemo(ctx, toName, memo)
		if err != nil {
			return nil, err
		}
		op.Memo = encoded
	}
	return op, nil
}

// LimitOrderCreateOp builds an order from two already-human amounts: sell
// sellAmount of sellSymbol, accept no less than buyAmount of buySymbol.
// Both sides are scaled independently. A nil expiration means the default.
func (s *Session) LimitOrderCreateOp(ctx context.Context, sellSymbol string, sellAmount decimal.Decimal, buySymbol string, buyAmount decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (*prototype.LimitOrderCreateOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	buyAsset, err := s.client.LookupAssetSymbol(ctx, buySymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", buySymbol)
	}
	sellAsset, err := s.client.LookupAssetSymbol(ctx, sellSymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", sellSymbol)
	}

	buyParam, err := buyAsset.ToParam(buyAmount)
	if err != nil {
		return nil, err
	}
	sellParam, err := sellAsset.ToParam(sellAmount)
	if err != nil {
		return nil, err
	}

	return &prototype.LimitOrderCreateOperation{
		Fee:          s.feeParam(),
		Seller:       s.accountID(),
		AmountToSell: sellParam,
		MinToReceive: buyParam,
		Expiration:   orDefaultExpiration(expiration),
		FillOrKill:   fillOrKill,
	}, nil
}

// BuyOp fixes the quantity of buySymbol being bought and computes its cost
// in baseSymbol from price: cost = amount * price, scaled by the base
// asset's precision. The result is a limit_order_create selling the base.
func (s *Session) BuyOp(ctx context.Context, buySymbol, baseSymbol string, amount, price decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (*prototype.LimitOrderCreateOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	buyAsset, err := s.client.LookupAssetSymbol(ctx, buySymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", buySymbol)
	}
	baseAsset, err := s.client.LookupAssetSymbol(ctx, baseSymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", baseSymbol)
	}

	buyInt := amount.Shift(buyAsset.Precision).Floor()
	sellInt := amount.Mul(price).Shift(baseAsset.Precision).Floor()
	if buyInt.IsZero() || sellInt.IsZero() {
		return nil, prototype.ErrZeroAmount
	}

	return &prototype.LimitOrderCreateOperation{
		Fee:          s.feeParam(),
		Seller:       s.accountID(),
		AmountToSell: baseAsset.Param(sellInt.IntPart()),
		MinToReceive: buyAsset.Param(buyInt.IntPart()),
		Expiration:   orDefaultExpiration(expiration),
		FillOrKill:   fillOrKill,
	}, nil
}

// SellOp is the mirror of BuyOp: it fixes the quantity of sellSymbol being
// sold and computes the proceeds in baseSymbol from price.
func (s *Session) SellOp(ctx context.Context, sellSymbol, baseSymbol string, amount, price decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (*prototype.LimitOrderCreateOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	sellAsset, err := s.client.LookupAssetSymbol(ctx, sellSymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", sellSymbol)
	}
	baseAsset, err := s.client.LookupAssetSymbol(ctx, baseSymbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", baseSymbol)
	}

	sellInt := amount.Shift(sellAsset.Precision).Floor()
	buyInt := amount.Mul(price).Shift(baseAsset.Precision).Floor()
	if buyInt.IsZero() || sellInt.IsZero() {
		return nil, prototype.ErrZeroAmount
	}

	return &prototype.LimitOrderCreateOperation{
		Fee:          s.feeParam(),
		Seller:       s.accountID(),
		AmountToSell: sellAsset.Param(sellInt.IntPart()),
		MinToReceive: baseAsset.Param(buyInt.IntPart()),
		Expiration:   orDefaultExpiration(expiration),
		FillOrKill:   fillOrKill,
	}, nil
}

// CancelOrderOp builds a cancel for one of the session account's orders.
func (s *Session) CancelOrderOp(ctx context.Context, orderID string) (*prototype.LimitOrderCancelOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return &prototype.LimitOrderCancelOperation{
		Fee:              s.feeParam(),
		FeePayingAccount: s.accountID(),
		Order:            orderID,
	}, nil
}

// AssetIssueOp builds an issuance of amount units of symbol to toName. The
// session account is the issuer.
func (s *Session) AssetIssueOp(ctx context.Context, toName, symbol string, amount decimal.Decimal, memo string) (*prototype.AssetIssueOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	asset, err := s.client.LookupAssetSymbol(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", symbol)
	}
	amountParam, err := asset.ToParam(amount)
	if err != nil {
		return nil, err
	}

	to, err := s.client.GetAccountByName(ctx, toName)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve recipient %s", toName)
	}

	op := &prototype.AssetIssueOperation{
		Fee:            s.feeParam(),
		Issuer:         s.accountID(),
		AssetToIssue:   amountParam,
		IssueToAccount: to.ID,
	}
	if memo != "" {
		encoded, err := s.EncodeMemo(ctx, toName, memo)
		if err != nil {
			return nil, err
		}
		op.Memo = encoded
	}
	return op, nil
}

// AssetReserveOp builds a burn of amount units of symbol from the session
// account's balance.
func (s *Session) AssetReserveOp(ctx context.Context, symbol string, amount decimal.Decimal) (*prototype.AssetReserveOperation, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	asset, err := s.client.LookupAssetSymbol(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve asset %s", symbol)
	}
	amountParam, err := asset.ToParam(amount)
	if err != nil {
		return nil, err
	}

	return &prototype.AssetReserveOperation{
		Fee:             s.feeParam(),
		Payer:           s.accountID(),
		AmountToReserve: amountParam,
	}, nil
}

func orDefaultExpiration(expiration *prototype.TimePointSec) prototype.TimePointSec {
	if expiration != nil {
		return *expiration
	}
	return prototype.ExpirationDefault()
}

// Transfer builds and broadcasts in one step.
func (s *Session) Transfer(ctx context.Context, toName, symbol string, amount decimal.Decimal, memo string) (*chain.BroadcastResult, error) {
	op, err := s.TransferOp(ctx, toName, symbol, amount, memo)
	if err != nil {
		return nil, err
	}
	return s.SendOperation(ctx, op)
}

// LimitOrderCreate broadcasts a direct order and returns the created order
// object.
func (s *Session) LimitOrderCreate(ctx context.Context, sellSymbol string, sellAmount decimal.Decimal, buySymbol string, buyAmount decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (json.RawMessage, error) {
	op, err := s.LimitOrderCreateOp(ctx, sellSymbol, sellAmount, buySymbol, buyAmount, fillOrKill, expiration)
	if err != nil {
		return nil, err
	}
	result, err := s.SendOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.createdObject(ctx, result)
}

// Buy broadcasts a buy order and returns the created order object.
func (s *Session) Buy(ctx context.Context, buySymbol, baseSymbol string, amount, price decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (json.RawMessage, error) {
	op, err := s.BuyOp(ctx, buySymbol, baseSymbol, amount, price, fillOrKill, expiration)
	if err != nil {
		return nil, err
	}
	result, err := s.SendOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.createdObject(ctx, result)
}

// Sell broadcasts a sell order and returns the created order object.
func (s *Session) Sell(ctx context.Context, sellSymbol, baseSymbol string, amount, price decimal.Decimal, fillOrKill bool, expiration *prototype.TimePointSec) (json.RawMessage, error) {
	op, err := s.SellOp(ctx, sellSymbol, baseSymbol, amount, price, fillOrKill, expiration)
	if err != nil {
		return nil, err
	}
	result, err := s.SendOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.createdObject(ctx, result)
}

// CancelOrder broadcasts a cancel for orderID.
func (s *Session) CancelOrder(ctx context.Context, orderID string) (*chain.BroadcastResult, error) {
	op, err := s.CancelOrderOp(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.SendOperation(ctx, op)
}

// AssetIssue broadcasts an issuance.
func (s *Session) AssetIssue(ctx context.Context, toName, symbol string, amount decimal.Decimal, memo string) (*chain.BroadcastResult, error) {
	op, err := s.AssetIssueOp(ctx, toName, symbol, amount, memo)
	if err != nil {
		return nil, err
	}
	return s.SendOperation(ctx, op)
}

// AssetReserve broadcasts a burn.
func (s *Session) AssetReserve(ctx context.Context, symbol string, amount decimal.Decimal) (*chain.BroadcastResult, error) {
	op, err := s.AssetReserveOp(ctx, symbol, amount)
	if err != nil {
		return nil, err
	}
	return s.SendOperation(ctx, op)
}
