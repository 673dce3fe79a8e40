package legacycred

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/':
		return true
	}
	return false
}

// decodeUTF7 interprets raw as UTF-8 text carrying an RFC 2152 UTF-7 layer
// and returns the UTF-16 code units it encodes.
func decodeUTF7(raw []byte) ([]uint16, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: not valid utf-8 text", ErrMalformed)
	}

	units := make([]uint16, 0, len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '+' {
			r, size := utf8.DecodeRune(raw[i:])
			units = append(units, utf16.Encode([]rune{r})...)
			i += size
			continue
		}

		// "+-" is a literal plus sign
		if i+1 < len(raw) && raw[i+1] == '-' {
			units = append(units, '+')
			i += 2
			continue
		}

		start := i + 1
		end := start
		for end < len(raw) && isBase64Char(raw[end]) {
			end++
		}
		chunk := raw[start:end]

		if len(chunk) == 0 {
			// a lone "+" not followed by base64 decodes to itself
			units = append(units, '+')
			i = start
			continue
		}

		decoded, err := decodeShift(chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: shift sequence at offset %d: %v", ErrMalformed, i, err)
		}
		units = append(units, decoded...)

		i = end
		if i < len(raw) && raw[i] == '-' {
			i++
		}
	}

	return units, nil
}

func decodeShift(chunk []byte) ([]uint16, error) {
	buf := make([]byte, 0, len(chunk)*6/8)
	var acc uint32
	var bits uint
	for _, c := range chunk {
		acc = acc<<6 | uint32(shiftAlphabetIndex(c))
		bits += 6
		if bits >= 8 {
			bits -= 8
			buf = append(buf, byte(acc>>bits))
		}
	}

	// leftover bits are padding and are dropped
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("odd number of bytes (%d) in utf-16 run", len(buf))
	}

	out := make([]uint16, 0, len(buf)/2)
	for j := 0; j < len(buf); j += 2 {
		out = append(out, uint16(buf[j])<<8|uint16(buf[j+1]))
	}
	return out, nil
}

func shiftAlphabetIndex(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '+':
		return 62
	case c == '/':
		return 63
	}
	return -1
}
