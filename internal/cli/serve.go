package cli

import (
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oakbrad/dungeonchurch-oracle/internal/config"
	"github.com/oakbrad/dungeonchurch-oracle/internal/server"
)

// newServeCmd creates the serve command, the main entry point for the
// interactive visualization.
func newServeCmd() *cobra.Command {
	var (
		cfgPath string
		listen  string
		dataset string
		colors  string
		tuning  string
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive graph visualization",
		Long:  `Serve loads the dataset artifacts and exposes the browser shell, the dataset API, and the websocket session endpoint until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if dataset != "" {
				cfg.Dataset = dataset
			}
			if colors != "" {
				cfg.Colors = colors
			}
			if tuning != "" {
				cfg.Tuning = tuning
			}
			if mode != "" {
				cfg.Mode = mode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// The --verbose flag wins over the configured level.
			if logger.GetLevel() != charmlog.DebugLevel {
				logger.SetLevel(parseLevel(cfg.LogLevel))
			}

			art, err := loadArtifacts(logger, cfg.Dataset, cfg.Colors, cfg.Tuning)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printInfo("Serving %s", cfg.Dataset)
			printStats(len(art.dataset.Nodes), len(art.dataset.Links), len(art.dataset.AlignmentCollectionIDs))
			printNextStep("Open", "http://localhost"+cfg.Listen)

			srv := server.New(cfg, art.dataset, art.colors, art.tuning, logger)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "oracle.yml", "config file path")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset JSON path (overrides config)")
	cmd.Flags().StringVar(&colors, "colors", "", "color table JSON path (overrides config)")
	cmd.Flags().StringVar(&tuning, "tuning", "", "force tuning TOML path (overrides config)")
	cmd.Flags().StringVar(&mode, "mode", "", "initial view mode: connection, alignment (overrides config)")

	return cmd
}
