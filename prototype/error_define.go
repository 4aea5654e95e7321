package prototype

import "github.com/pkg/errors"

var (
	ErrNpe             = errors.New("Null Pointer")
	ErrKeyLength       = errors.New("Key Length Error")
	ErrPubKeyFormatErr = errors.New("Public Key Format Error")

	ErrInvalidCredentials   = errors.New("account name or password required")
	ErrWeakPassword         = errors.New("password must have at least 12 characters")
	ErrAuthenticationFailed = errors.New("the pair of login and password do not match")
	ErrCorruptBackup        = errors.New("corrupt wallet backup")
	ErrKeyNotFound          = errors.New("key not found")
	ErrZeroAmount           = errors.New("amount equal 0")
	ErrNoMemoKey            = errors.New("memo key not set")
)
