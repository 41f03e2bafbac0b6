package cmd

import (
	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the filtered sessions",
	Long: `Forcibly disconnect each session matched by the filter flags.

Every session is confirmed individually before the broker is asked to
disconnect it; declined sessions are skipped. Processing stops at the
first broker error. Disconnecting keeps the session alive on the host,
it only drops the user's connection to it.`,
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

		return internal.Disconnect(cmd.Context(), broker, newConfirmer(), audit, cmd.OutOrStdout(), records)
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
	addFilterFlags(disconnectCmd)
	addTargetFlag(disconnectCmd)
}
