// Package legacycred reads passwords stored under the legacy credential
// scheme: a UTF-7 text layer whose characters are offset by +10 and
// terminated by a zero code unit.
package legacycred

import (
	"crypto/subtle"
	"errors"
	"unicode/utf16"
)

// Offset is added to every character by the legacy writer.
const Offset = 10

// ErrMalformed reports a credential that cannot be read through the UTF-7 layer.
var ErrMalformed = errors.New("malformed legacy credential")

// Decode converts a stored credential into plaintext. Empty input yields an
// empty string. Everything from the first zero code unit onwards is ignored.
func Decode(encoded []byte) (string, error) {
	units, err := plaintextUnits(encoded)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// Encode runs a freshly typed password through the same walk as Decode.
//
// It does not add the offset: the legacy system only ever needed the
// subtract direction, and the result is kept bit-for-bit compatible with it.
// Decode(Encode(x)) is therefore not x in general.
func Encode(plaintext string) (string, error) {
	return Decode([]byte(plaintext))
}

// Matches reports whether the stored credential decodes to password.
// The comparison runs on UTF-16 code units, so a stored lone surrogate never
// equals the U+FFFD a string conversion would turn it into. A credential
// that fails to decode never matches.
func Matches(encoded []byte, password string) bool {
	stored, err := plaintextUnits(encoded)
	if err != nil {
		return false
	}
	typed := utf16.Encode([]rune(password))
	return subtle.ConstantTimeCompare(unitBytes(stored), unitBytes(typed)) == 1
}

// plaintextUnits decodes the UTF-7 layer and removes the offset.
func plaintextUnits(encoded []byte) ([]uint16, error) {
	if len(encoded) == 0 {
		return nil, nil
	}

	units, err := decodeUTF7(encoded)
	if err != nil {
		return nil, err
	}
	return unshift(units), nil
}

func unitBytes(units []uint16) []byte {
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return b
}

// unshift walks units up to the first zero and subtracts Offset from each.
// Units below Offset wrap around.
func unshift(units []uint16) []uint16 {
	out := make([]uint16, 0, len(units))
	for _, u := range units {
		if u == 0 {
			break
		}
		out = append(out, u-Offset)
	}
	return out
}
