package prototype

// AssetReserveOperation burns an amount of an asset from the payer's
// balance, reducing current supply.
type AssetReserveOperation struct {
	Fee             AssetAmount `json:"fee"`
	Payer           string      `json:"payer"`
	AmountToReserve AssetAmount `json:"amount_to_reserve"`
	Extensions      Extensions  `json:"extensions"`
}

func (op *AssetReserveOperation) OpName() string {
	return "asset_reserve"
}
