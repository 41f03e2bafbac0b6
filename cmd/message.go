package cmd

import (
	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
)

var (
	messageTitle string
	messageBody  string
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Show an interactive message to the filtered sessions",
	Long: `Display a message box to the user of each session matched by the
filter flags. Both --title and --body are required.

Every session is confirmed individually before the message is sent;
declined sessions are skipped. Processing stops at the first broker
error.`,
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

		return internal.SendMessage(cmd.Context(), broker, newConfirmer(), audit, cmd.OutOrStdout(), records, messageTitle, messageBody)
	},
}

func init() {
	rootCmd.AddCommand(messageCmd)
	addFilterFlags(messageCmd)
	addTargetFlag(messageCmd)
	messageCmd.Flags().StringVar(&messageTitle, "title", "", "Message box title")
	messageCmd.Flags().StringVar(&messageBody, "body", "", "Message box body")
	_ = messageCmd.MarkFlagRequired("title")
	_ = messageCmd.MarkFlagRequired("body")
}
