package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/davebream/timeridle/internal/config"
	"github.com/davebream/timeridle/internal/logging"
	"github.com/davebream/timeridle/internal/scenario"
	"github.com/davebream/timeridle/internal/session"
	"github.com/spf13/cobra"
)

var (
	waitTimeout    time.Duration
	waitPauseAfter time.Duration
)

var waitCmd = &cobra.Command{
	Use:   "wait SCENARIO",
	Short: "Run a timer scenario until it becomes idle",
	Long: `Runs the scenario's timers on a frame loop and blocks until the idle
monitor reports the transition to idle. Repeating timers keep running but do
not hold the wait.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, timing, cleanup, err := openSession(args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		timeout := waitTimeout
		if !cmd.Flags().Changed("timeout") {
			timeout = timing.WaitTimeout
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if waitPauseAfter > 0 {
			stop := s.PauseAfter(ctx, waitPauseAfter)
			defer stop()
		}

		waited, err := s.WaitIdle(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "idle after %s\n", waited.Round(time.Millisecond))
		return nil
	},
}

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 0, "Give up after this long (default: wait_timeout from config, 0 waits forever)")
	waitCmd.Flags().DurationVar(&waitPauseAfter, "pause-after", 0, "Pause the monitor after this long, forcing idle")
	rootCmd.AddCommand(waitCmd)
}

// openSession loads config and the scenario, then starts a session with the
// scenario's timers installed.
func openSession(scenarioPath string) (*session.Session, config.Timing, func(), error) {
	cfg, timing, err := loadConfig()
	if err != nil {
		return nil, timing, nil, err
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, timing, nil, err
	}

	logger, logCleanup, err := newLogger(cfg)
	if err != nil {
		return nil, timing, nil, err
	}

	s, err := session.New(session.Options{
		BusyWindow:    timing.BusyWindow,
		FrameInterval: timing.FrameInterval,
		Logger:        logger,
	})
	if err != nil {
		logCleanup()
		return nil, timing, nil, err
	}

	sessLog := logging.SessionLogger(logger, s.ID)
	ids := sc.Apply(s.Queue, time.Now(), func(label string) {
		sessLog.Debug("timer fired", "label", label)
	})
	sessLog.Info("scenario loaded", "scenario", sc.Name, "timers", len(ids))

	return s, timing, func() {
		s.Close()
		logCleanup()
	}, nil
}
