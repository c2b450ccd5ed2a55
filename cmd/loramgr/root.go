package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"loramgr/internal/config"
	"loramgr/internal/events"
	"loramgr/internal/metrics"
	"loramgr/internal/pool"
	"loramgr/internal/registry"
)

// app carries the resolved configuration and shared collaborators for
// every subcommand.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

// MainWithArgs runs the CLI and returns the process exit code.
func MainWithArgs(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := buildRootCmd(&app{}, stderr)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if len(args) == 0 {
		_ = root.Help()
		return 2
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func buildRootCmd(a *app, logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "loramgr",
		Short:         "LoRA pool resolver and selection schedulers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml|.yml|.json|.toml)")
	pf.String("log-level", "", "Log level: debug|info|warn|error (defaults LORAMGR_LOG_LEVEL or info)")
	pf.String("loras-dir", "", "Directory scanned for *.safetensors")
	pf.String("resolver", "", "Pool resolver base URL; empty resolves in-process from --loras-dir")
	pf.String("state-dir", "", "Directory holding widget snapshots")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		if p, _ := cmd.Flags().GetString("config"); p != "" {
			fileCfg, err := config.Load(p)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = config.Merge(cfg, fileCfg)
		}
		cfg = config.ApplyEnv(cfg)
		flagCfg := config.Config{}
		flagCfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		flagCfg.LorasDir, _ = cmd.Flags().GetString("loras-dir")
		flagCfg.ResolverURL, _ = cmd.Flags().GetString("resolver")
		flagCfg.StateDir, _ = cmd.Flags().GetString("state-dir")
		a.cfg = config.Merge(cfg, flagCfg)
		a.log = newLogger(logOut, a.cfg.LogLevel)
		return nil
	}

	root.AddCommand(
		newServeCmd(a),
		newCycleCmd(a),
		newRandomizeCmd(a),
		newFingerprintCmd(a),
	)
	return root
}

// newLogger returns a console logger writing to w at the named level.
// Unknown levels fall back to info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

// publisher fans scheduler events out to Prometheus and the debug log.
func (a *app) publisher() events.Publisher {
	return events.Multi{metrics.Publisher{}, events.Log{Logger: a.log}}
}

// resolver returns the HTTP client when a resolver URL is configured and
// an in-process library otherwise.
func (a *app) resolver() pool.Resolver {
	if a.cfg.ResolverURL != "" {
		return pool.NewClient(a.cfg.ResolverURL,
			pool.WithTimeout(a.cfg.RequestTimeout()),
			pool.WithLogger(a.log))
	}
	return registry.NewLibrary(a.cfg.LorasDir, a.cfg.ScanTTL(), a.log)
}
