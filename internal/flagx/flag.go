// Package flagx lets several components parse their own flags from a shared
// argument list without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// token that starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the value of -c / -config in args, or "" when neither
// is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}

// Positional returns the arguments left after removing the given flags and
// their values, with the same value rules as FilterArgs. A bare "--" ends
// flag handling; everything after it is positional.
func Positional(args []string, knownFlags []string) []string {
	known := make(map[string]struct{}, len(knownFlags))
	for _, f := range knownFlags {
		known[f] = struct{}{}
	}

	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(rest, args[i+1:]...)
		}

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, skip := known[name]; skip {
				continue
			}
		}

		if _, skip := known[arg]; skip {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		rest = append(rest, arg)
	}

	return rest
}
