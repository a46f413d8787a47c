package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var checkExitCode bool

var errBusy = errors.New("timers busy")

var checkCmd = &cobra.Command{
	Use:   "check SCENARIO",
	Short: "Report whether a timer scenario is idle right now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, cleanup, err := openSession(args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := s.Check(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Idle {
			fmt.Fprintln(out, "idle")
		} else {
			fmt.Fprintln(out, "busy")
		}
		if res.Next != nil {
			fmt.Fprintf(out, "next one-shot timer: %s in %s\n", res.Next.ID, time.Until(res.Next.Target).Round(time.Millisecond))
		}

		if !res.Idle && checkExitCode {
			return errBusy
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkExitCode, "exit-code", false, "Exit non-zero when busy")
	rootCmd.AddCommand(checkCmd)
}
