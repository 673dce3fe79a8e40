// Package timex holds time helpers shared by config loaders.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration unmarshals from either a Go duration string ("90s", "1h") or an
// integer number of nanoseconds.
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
