package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"personalblog/cmd/app"
	"personalblog/internal/config"
)

const (
	envFileFlag = "env-file"
	addrFlag    = "addr"
)

// runner does the work behind the commands.
type runner interface {
	Serve(ctx context.Context, cfg *config.Config, addr string) error
	Migrate(ctx context.Context, cfg *config.Config) error
}

type appRunner struct{}

func (appRunner) Serve(ctx context.Context, cfg *config.Config, addr string) error {
	return app.Serve(ctx, cfg, addr)
}

func (appRunner) Migrate(ctx context.Context, cfg *config.Config) error {
	return app.Migrate(ctx, cfg)
}

// newFlags returns flags for one command tree. They are persistent on the
// root, so subcommands parse into the same pflag; migrate ignores --addr.
func newFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		envFileFlag: &cobraflags.StringFlag{
			Name:       envFileFlag,
			Value:      ".env",
			Usage:      "Path to an optional .env file",
			Persistent: true,
		},
		addrFlag: &cobraflags.StringFlag{
			Name:       addrFlag,
			Value:      "",
			Usage:      "Listen address, defaults to :SERVER_PORT",
			Persistent: true,
		},
	}
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg := config.LoadConfig(envFile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRootCommand(run runner) *cobra.Command {
	flags := newFlags()

	serve := func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(flags[envFileFlag].GetString())
		if err != nil {
			return err
		}

		addr := flags[addrFlag].GetString()
		if addr == "" {
			addr = cfg.Addr()
		}

		return run.Serve(cmd.Context(), cfg, addr)
	}

	migrate := func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(flags[envFileFlag].GetString())
		if err != nil {
			return err
		}

		return run.Migrate(cmd.Context(), cfg)
	}

	rootCmd := &cobra.Command{
		Use:          "blog",
		Short:        "Personal blog server",
		SilenceUsage: true,
		RunE:         serve, // serve when no subcommand is given
	}
	cobraflags.RegisterMap(rootCmd, flags)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		RunE:  serve,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE:  migrate,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(appRunner{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
