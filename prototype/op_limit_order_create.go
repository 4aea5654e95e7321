package prototype

// LimitOrderCreateOperation places an order on the exchange: sell
// amount_to_sell, accept no less than min_to_receive.
type LimitOrderCreateOperation struct {
	Fee          AssetAmount  `json:"fee"`
	Seller       string       `json:"seller"`
	AmountToSell AssetAmount  `json:"amount_to_sell"`
	MinToReceive AssetAmount  `json:"min_to_receive"`
	Expiration   TimePointSec `json:"expiration"`
	FillOrKill   bool         `json:"fill_or_kill"`
	Extensions   Extensions   `json:"extensions"`
}

func (op *LimitOrderCreateOperation) OpName() string {
	return "limit_order_create"
}
