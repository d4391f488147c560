// Package cli implements the oracle command-line interface.
//
// This package provides commands for serving the interactive graph
// visualization, settling layouts headlessly, rendering static frames, and
// inspecting dataset artifacts. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the visualization server over a dataset
//   - settle: Run the force simulation headlessly until it cools down
//   - render: Write a single settled frame as SVG or JSON
//   - inspect: Summarize a dataset artifact
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/oakbrad/dungeonchurch-oracle/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli
