package models

import (
	"bytes"
	"encoding/json"
)

// Row is one record of a stored procedure result set. Columns keep the order
// the procedure returned them in, and so does the JSON encoding.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the row as a JSON object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
