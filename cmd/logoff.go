package cmd

import (
	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
)

var logoffBackground bool

var logoffCmd = &cobra.Command{
	Use:   "logoff",
	Short: "Force a logoff of the filtered sessions",
	Long: `Forcibly log off each session matched by the filter flags.

A forced logoff terminates the session including any unsaved work, so
every session is confirmed individually; declined sessions are skipped.

With --background one independent logoff task is scheduled per confirmed
session; a failing task only logs a warning and never stops the other
tasks. Without it, logoffs run one at a time and processing stops at the
first broker error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		broker := newBroker(cfg)

		records, err := selectRecords(cmd, broker)
		if err != nil {
			return err
		}

		audit := openAudit(cfg)
		defer audit.Close()

		out := cmd.OutOrStdout()
		if logoffBackground {
			tasks := internal.LogoffBackground(cmd.Context(), broker, newConfirmer(), audit, out, records)
			// Tasks outlive this invocation only until the requests
			// complete; wait here so the process does not exit with
			// requests in flight, but surface no task errors.
			for _, t := range tasks {
				<-t.Done()
			}
			return nil
		}
		return internal.Logoff(cmd.Context(), broker, newConfirmer(), audit, out, records)
	},
}

func init() {
	rootCmd.AddCommand(logoffCmd)
	addFilterFlags(logoffCmd)
	addTargetFlag(logoffCmd)
	logoffCmd.Flags().BoolVar(&logoffBackground, "background", false, "Schedule one independent background task per session instead of waiting on each")
}
