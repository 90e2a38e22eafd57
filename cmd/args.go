package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// knownArgs drops flags cmd does not define, along with any value attached
// with "=". The token after an unknown flag is kept, so an unknown flag never
// consumes the image path. Everything after "--" passes through untouched.
func knownArgs(cmd *cobra.Command, args []string) []string {
	flags := cmd.Flags()
	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(kept, args[i:]...)
		}
		if len(arg) < 2 || arg[0] != '-' {
			kept = append(kept, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")

		takesValue := false
		switch {
		case strings.HasPrefix(arg, "--"):
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			takesValue = f.NoOptDefVal == ""
		case len(name) == 1:
			f := flags.ShorthandLookup(name)
			if f == nil {
				continue
			}
			takesValue = f.NoOptDefVal == ""
		default:
			// Clustered shorthands such as -vh
			if !knownShorthands(cmd, name) {
				continue
			}
		}

		kept = append(kept, arg)
		if takesValue && !hasValue && i+1 < len(args) {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}

func knownShorthands(cmd *cobra.Command, cluster string) bool {
	for _, r := range cluster {
		if cmd.Flags().ShorthandLookup(string(r)) == nil {
			return false
		}
	}
	return true
}
