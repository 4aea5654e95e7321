package prototype

// TransferOperation moves an asset amount between two accounts, with an
// optional encrypted memo.
type TransferOperation struct {
	Fee        AssetAmount `json:"fee"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Amount     AssetAmount `json:"amount"`
	Memo       *Memo       `json:"memo,omitempty"`
	Extensions Extensions  `json:"extensions"`
}

func (op *TransferOperation) OpName() string {
	return "transfer"
}
