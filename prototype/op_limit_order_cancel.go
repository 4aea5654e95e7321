package prototype

type LimitOrderCancelOperation struct {
	Fee              AssetAmount `json:"fee"`
	FeePayingAccount string      `json:"fee_paying_account"`
	Order            string      `json:"order"`
	Extensions       Extensions  `json:"extensions"`
}

func (op *LimitOrderCancelOperation) OpName() string {
	return "limit_order_cancel"
}
