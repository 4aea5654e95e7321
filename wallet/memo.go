package wallet

import (
	"context"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/deexnet/deex-go/crypto"
	"github.com/deexnet/deex-go/prototype"
)

// EncodeMemo encrypts a message for toName's memo key. The nonce is the
// millisecond wall clock as a decimal string; it is coarse and two calls in
// the same millisecond share it. Downstream decryption depends on the nonce
// value verbatim, so it is not replaced with anything stronger here.
func (s *Session) EncodeMemo(ctx context.Context, toName, message string) (*prototype.Memo, error) {
	memoKey := s.memoKeySnapshot()
	if memoKey == nil {
		return nil, prototype.ErrNoMemoKey
	}

	to, err := s.client.GetAccountByName(ctx, toName)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve recipient %s", toName)
	}
	toPub, err := to.MemoKey()
	if err != nil {
		return nil, errors.Wrapf(err, "recipient %s memo key", toName)
	}

	fromPub, err := memoKey.PubKey()
	if err != nil {
		return nil, err
	}

	nonce := strconv.FormatInt(time.Now().UnixMilli(), 10)
	cipherData, err := crypto.EncryptWithChecksum(memoKey, toPub, nonce, []byte(message))
	if err != nil {
		return nil, err
	}

	return &prototype.Memo{
		From:    fromPub.ToWIF(),
		To:      to.Options.MemoKey,
		Nonce:   nonce,
		Message: hex.EncodeToString(cipherData),
	}, nil
}

// DecodeMemo decrypts a memo addressed to or sent by this session's memo
// key; the counterparty's public key is whichever of from/to is not ours.
func (s *Session) DecodeMemo(memo *prototype.Memo) (string, error) {
	memoKey := s.memoKeySnapshot()
	if memoKey == nil {
		return "", prototype.ErrNoMemoKey
	}

	ownPub, err := memoKey.PubKey()
	if err != nil {
		return "", err
	}

	otherWIF := memo.From
	if otherWIF == ownPub.ToWIF() {
		otherWIF = memo.To
	}
	otherPub, err := prototype.PublicKeyFromWIF(otherWIF)
	if err != nil {
		return "", errors.Wrap(err, "memo counterparty key")
	}

	cipherData, err := hex.DecodeString(memo.Message)
	if err != nil {
		return "", errors.Wrap(err, "memo message hex")
	}
	plain, err := crypto.DecryptWithChecksum(memoKey, otherPub, memo.Nonce, cipherData)
	if err != nil {
		return "", errors.Wrap(err, "memo decrypt")
	}
	return string(plain), nil
}
