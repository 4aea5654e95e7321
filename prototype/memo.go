package prototype

// Memo is an encrypted message attached to an operation. From and to are the
// memo public keys of the two parties in WIF form, nonce is the decimal
// string that salted the shared-secret key, message is the hex ciphertext.
type Memo struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}
