package utils

// PasswordReader abstracts the terminal so tests can feed passphrases
// without a tty.
type PasswordReader interface {
	ReadPassword(fd int) ([]byte, error)
}
