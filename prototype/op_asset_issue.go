package prototype

// AssetIssueOperation issues new supply of an asset to some account. Only
// the asset's issuer may broadcast it.
type AssetIssueOperation struct {
	Fee            AssetAmount `json:"fee"`
	Issuer         string      `json:"issuer"`
	AssetToIssue   AssetAmount `json:"asset_to_issue"`
	IssueToAccount string      `json:"issue_to_account"`
	Memo           *Memo       `json:"memo,omitempty"`
	Extensions     Extensions  `json:"extensions"`
}

func (op *AssetIssueOperation) OpName() string {
	return "asset_issue"
}
