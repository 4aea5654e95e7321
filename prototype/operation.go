package prototype

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Operation is one protocol operation. On the wire every operation is a
// one-key object tagged by its protocol name, e.g.
// {"limit_order_create": {...}}, so the Go side is a closed set of structs
// behind this interface instead of loose maps.
type Operation interface {
	OpName() string
}

// Extensions is the protocol's future-use field. It is order preserving and
// must marshal as [] when empty, never as null.
type Extensions []json.RawMessage

func (e Extensions) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]json.RawMessage(e))
}

// WrapOperation marshals op into its tagged wire form.
func WrapOperation(op Operation) (json.RawMessage, error) {
	if op == nil {
		return nil, ErrNpe
	}
	body, err := json.Marshal(op)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s operation", op.OpName())
	}
	wrapped, err := json.Marshal(map[string]json.RawMessage{op.OpName(): body})
	if err != nil {
		return nil, err
	}
	return wrapped, nil
}
