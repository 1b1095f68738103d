// Package main provides the CLI entrypoint for phenio-toolkit.
//
// phenio-toolkit builds cross-species phenotype mappings:
//   - normalizes term labels and groups terms sharing a label
//   - pairs grouped terms into lexical mappings
//   - merges them with logical equivalences
//   - writes an SSSOM mapping set, an edit template and review tables
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"phenio-toolkit/internal/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "phenio-toolkit"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	envFile    string
	logLevel   string
	verbose    int
	quiet      bool
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Cross-species phenotype mapping toolkit",
		Version:       fmt.Sprintf("%s (build: %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before PHENIO_* overrides")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Only log errors")

	cmd.AddCommand(lexicalMappingCmd(opts))
	cmd.AddCommand(setsCmd(opts))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadConfig layers the config file, the environment and .env file over
// the defaults. Command flags are applied by the caller.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	err := config.LoadDotEnv(opts.envFile)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()

	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	err = cfg.ApplyEnv(nil)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveLogLevel applies the verbosity flags to the configured level.
// --log-level wins, then -q, then -v/-vv.
func resolveLogLevel(cfg *config.Config, opts *globalOptions) {
	switch {
	case opts.logLevel != "":
		cfg.LogLevel = opts.logLevel
	case opts.quiet:
		cfg.LogLevel = "error"
	case opts.verbose >= 2:
		cfg.LogLevel = "debug"
	case opts.verbose == 1:
		cfg.LogLevel = "info"
	}
}

// newLogger builds the text logger for cfg and installs it as default.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger, nil
}
