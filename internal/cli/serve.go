package cli

import (
	"github.com/spf13/cobra"

	"github.com/mycofab/imprint/internal/server"
	"github.com/mycofab/imprint/pkg/config"
	"github.com/mycofab/imprint/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	configPath string
	noCache    bool
}

// newServeCmd creates the serve command for running the HTTP API.
// The server shares the pipeline and cache with the CLI, so rendered
// artifacts are reused across both entry points.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			configPath := opts.configPath
			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			artifactCache, err := openCache(opts.noCache, cfg.Defaults.CacheDir)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(artifactCache, nil, logger)
			defer runner.Close()

			printInfo("Serving imprint API on %s", opts.addr)
			return server.New(cfg, runner, logger).ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "profile file (default: XDG config dir)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
