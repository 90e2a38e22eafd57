package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/emobridge/internal/adapters/classifier"
	"github.com/kamal-hamza/emobridge/pkg/log"
	"github.com/kamal-hamza/emobridge/pkg/ui"
)

const usage = "Usage: emobridge <image_path> [--validate]"

var errMissingPath = errors.New("missing image path")

// options holds the parsed flags of one invocation
type options struct {
	validate   bool
	configPath string
	backend    string
	verbose    bool
}

// newRootCmd builds the command writing its result to stdout and
// everything else to stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "emobridge <image_path> [--validate]",
		Short: "Validate an image or detect the emotion on a face",
		Long: ui.StyleTitle.Render("emobridge") + " - image validation and emotion analysis\n\n" +
			"Prints one line to stdout: a JSON validation report with --validate,\n" +
			"otherwise the detected emotion label. Diagnostics go to stderr.",
		Version: Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errMissingPath
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown flags are filtered out by knownArgs before parsing
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if opts.validate {
				return runValidate(cmd.Context(), path, stdout)
			}
			return runAnalyze(cmd.Context(), opts, path, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionTemplate())

	// stdout carries only the result line
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		c.SetOut(stderr)
		defaultHelp(c, args)
	})

	cmd.Flags().BoolVar(&opts.validate, "validate", false, "print a JSON validation report instead of an emotion label")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/emobridge/config.yaml)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "classifier backend ("+strings.Join(classifier.Backends(), ", ")+")")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "write debug diagnostics to stderr")
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()

	return cmd
}

// Run executes one invocation and returns the process exit code.
// Only a missing image path (or unusable flags) is a failure; problems with
// the image itself are reported in the output line.
func Run(args []string, stdout, stderr io.Writer) int {
	ui.SetOutput(stderr)
	log.Setup(log.Options{Stderr: stderr})
	defer log.Close()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(knownArgs(cmd, args))

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errMissingPath) {
			fmt.Fprintln(stderr, ui.FormatError(err.Error()))
		}
		fmt.Fprintln(stderr, usage)
		return 1
	}
	return 0
}

// Execute runs the command line of the current process
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
