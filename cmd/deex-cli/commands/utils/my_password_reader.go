package utils

import (
	"golang.org/x/crypto/ssh/terminal"
)

// MyPasswordReader reads from a real terminal with echo disabled.
type MyPasswordReader struct{}

func (MyPasswordReader) ReadPassword(fd int) ([]byte, error) {
	return terminal.ReadPassword(fd)
}
