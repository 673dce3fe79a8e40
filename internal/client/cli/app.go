// Package cli implements the report API command line: legacy credential
// inspection and session commands against a running server.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/escc-report-api/internal/client/client"
	"github.com/dmitrijs2005/escc-report-api/internal/client/config"
	"github.com/dmitrijs2005/escc-report-api/internal/flagx"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
)

// ErrUsage is returned for an unknown command or wrong operands.
var ErrUsage = errors.New("usage error")

// flags owned by config; everything else is the command line proper.
var configFlags = []string{"-a", "-t", "-c", "-config", "--config"}

const usage = `Usage: cli [-a url] [-t timeout] [-c config.json] <command> [args]

Commands:
  decode <hex>        print the plaintext of a stored legacy credential
  encode              read a password and print the legacy walk result
  login <username>    log in and print the token pair
  refresh <token>     exchange a refresh token for a new pair
  ping                check that the server and its database are up
  help                show this text
`

type App struct {
	config *config.Config
	client client.Client
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App talking to the server named in c. Diagnostics go to
// log; command output goes to stdout.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run executes the command found in args (the raw process arguments without
// the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	cmdline := flagx.Positional(args, configFlags)
	if len(cmdline) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	cmd, rest := cmdline[0], cmdline[1:]
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	case "decode":
		if len(rest) != 1 {
			return fmt.Errorf("%w: decode <hex>", ErrUsage)
		}
		return a.Decode(rest[0])
	case "encode":
		return a.Encode()
	case "login":
		if len(rest) != 1 {
			return fmt.Errorf("%w: login <username>", ErrUsage)
		}
		return a.Login(ctx, rest[0])
	case "refresh":
		if len(rest) != 1 {
			return fmt.Errorf("%w: refresh <token>", ErrUsage)
		}
		return a.Refresh(ctx, rest[0])
	case "ping":
		return a.Ping(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}
