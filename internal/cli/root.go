package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the oracle CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (serve, settle,
// render, inspect), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "oracle",
		Short:        "Oracle renders interactive maps of wiki-page relationships",
		Long:         `Oracle serves a force-directed graph of wiki pages with neighborhood highlighting, search, and an alignment projection, fed by dataset artifacts from the extraction pipeline.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("oracle %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSettleCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}
