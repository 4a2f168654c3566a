package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lexvault/internal/api"
	"lexvault/internal/app"
	"lexvault/internal/logging"
)

var (
	configPath string
	serverURL  string
	verbose    bool
	debug      bool

	cfg    app.Config
	client *api.Client
	logger *logging.Logger
)

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd().ExecuteContext(ctx)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lexvault",
		Short:        "Confidential document sharing client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.LoadDotEnv(".env"); err != nil {
				return err
			}
			loaded, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				loaded.ServerURL = serverURL
			}
			loaded.Verbose = loaded.Verbose || verbose || debug
			loaded.Debug = loaded.Debug || debug
			if loaded.HTTP == nil {
				// Outlasts the daemon's own operation timeout.
				loaded.HTTP = &http.Client{Timeout: loaded.OperationTimeout + 5*time.Second}
			}

			cfg = loaded
			logger = logging.New(cfg.Verbose, cfg.Debug)
			client = app.NewClient(cfg)
			logger.Debugf("server %s", cfg.ServerURL)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.toml)")
	pf.StringVar(&serverURL, "server", "", "vaultd base URL (default http://127.0.0.1:8443)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output, no spinner")
	pf.BoolVar(&debug, "debug", false, "debug output")

	root.AddCommand(
		uploadCmd(),
		listCmd(),
		viewCmd(),
		replaceCmd(),
		updateCmd(),
		deleteCmd(),
		keysCmd(),
		selftestCmd(),
	)
	return root
}
