package prototype

import (
	"github.com/shopspring/decimal"
)

// Asset is a resolved on-chain asset: its symbol, object id and precision.
// Precision is the number of decimal digits the chain's integer amounts
// represent, e.g. amount 123 of a precision-2 asset means 1.23.
type Asset struct {
	Symbol    string `json:"symbol"`
	ID        string `json:"id"`
	Precision int32  `json:"precision"`
}

// AssetAmount is the integer amount field as it appears inside operations.
type AssetAmount struct {
	Amount  int64  `json:"amount"`
	AssetID string `json:"asset_id"`
}

// ToParam scales a human amount into the on-chain integer representation:
// floor(amount * 10^precision), applied exactly once. A result of 0 is
// rejected, since the chain would either refuse the operation or, worse,
// execute a no-op the user did not intend.
func (a *Asset) ToParam(amount decimal.Decimal) (AssetAmount, error) {
	scaled := amount.Shift(a.Precision).Floor()
	if scaled.IsZero() {
		return AssetAmount{}, ErrZeroAmount
	}
	return AssetAmount{Amount: scaled.IntPart(), AssetID: a.ID}, nil
}

// Param wraps an already-scaled integer amount. Callers that computed the
// integer themselves must use this instead of ToParam so the value is never
// scaled twice.
func (a *Asset) Param(amount int64) AssetAmount {
	return AssetAmount{Amount: amount, AssetID: a.ID}
}

// FeeParam is the zero-amount fee placeholder. The actual fee is defined per
// asset by the chain, the client only names the asset it wants to pay in.
func (a *Asset) FeeParam() AssetAmount {
	return a.Param(0)
}

// FromParam converts an on-chain integer amount back to its human value.
func (a *Asset) FromParam(amount AssetAmount) decimal.Decimal {
	return decimal.New(amount.Amount, 0).Shift(-a.Precision)
}
