package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/davebream/timeridle/internal/config"
	"github.com/davebream/timeridle/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "timeridle",
	Short: "Detect when a host's pending timers have settled",
	Long: `timeridle decides whether an application's timer queue is idle, so a test
harness can wait for the application to settle before its next step.

Scenarios describe pending timers relative to now, in YAML or JSON:

  timers:
    - label: fade-out
      in: 400ms
    - label: poll
      in: 100ms
      interval: 100ms
      repeat: true`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: config.json in the timeridle config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr instead of the log file")
}

func loadConfig() (*config.Config, config.Timing, error) {
	path := configPath
	if path == "" {
		p, err := config.ConfigFilePath()
		if err != nil {
			return nil, config.Timing{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, config.Timing{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	timing, err := cfg.Timing()
	if err != nil {
		return nil, config.Timing{}, err
	}
	return cfg, timing, nil
}

// newLogger logs to stderr in the configured format when verbose, otherwise
// to the rotating JSON log file. File logging problems are not fatal.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		h, err := logging.NewHandler(os.Stderr, level, cfg.LogFormat)
		if err != nil {
			return nil, nil, err
		}
		return slog.New(h), func() {}, nil
	}

	logDir, err := config.LogDir()
	if err == nil {
		err = config.EnsureDir(logDir, 0700)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "timeridle: cannot create log directory: %v\n", err)
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	logger, cleanup, err := logging.Setup(logDir, level, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "timeridle: cannot set up file logging: %v\n", err)
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	return logger, cleanup, nil
}
