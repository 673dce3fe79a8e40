package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/legacycred"
)

// Decode prints the plaintext behind a stored credential given as hex, the
// way SQL Server renders a VARBINARY column ("0x" prefix optional).
func (a *App) Decode(encoded string) error {
	encoded = strings.TrimSpace(encoded)
	encoded = strings.TrimPrefix(strings.TrimPrefix(encoded, "0x"), "0X")

	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}

	plain, err := legacycred.Decode(raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, plain)
	return nil
}

// Encode reads a password and prints what the legacy walk makes of it.
func (a *App) Encode() error {
	pw, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	walked, err := legacycred.Encode(string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, walked)
	return nil
}
