package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetPassword prints a password prompt to w and reads a password without
// echo when stdin is a terminal. Piped input is read as a plain line so the
// CLI can be scripted.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		fmt.Fprintln(w)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
