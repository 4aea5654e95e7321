package prototype

import (
	"fmt"
	"time"
)

const timePointSecFormat = "2006-01-02T15:04:05"

// TimePointSec is the chain's timestamp type: whole seconds, UTC, serialized
// as an ISO-8601 string without the sub-second part or zone suffix.
type TimePointSec struct {
	time.Time
}

func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec{t.UTC().Truncate(time.Second)}
}

// ExpirationDefault is the default operation expiration: five years out,
// truncated to whole seconds.
func ExpirationDefault() TimePointSec {
	return NewTimePointSec(time.Now().AddDate(5, 0, 0))
}

func (t TimePointSec) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.UTC().Format(timePointSecFormat))), nil
}

func (t *TimePointSec) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return fmt.Errorf("time_point_sec format error: %s", string(input))
	}
	parsed, err := time.Parse(timePointSecFormat, string(input[1:len(input)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}
