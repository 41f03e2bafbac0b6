package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	brokerURL  string
	assumeYes  bool
	noAudit    bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rds-session",
	Short: "Query and manage RDS user sessions",
	Long: `An administrative CLI for Remote Desktop Services user sessions.

rds-session talks to an RDS management broker to enumerate user sessions
across host servers, filter them by state, idle time or user name, and
act on the filtered set: disconnect, force a logoff, or show the user an
interactive message. Every action is gated by a per-session confirmation
prompt (or --yes for scripting).

Quick Start:
  rds-session list                          # All sessions
  rds-session list --state Disconnected     # Only disconnected ones
  rds-session logoff --state Idle --min-idle 120
  rds-session message --user bob --title "Maintenance" --body "Save your work"

Executed actions are appended to a local audit trail.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file location (default ~/.rds-session.yaml)")
	rootCmd.PersistentFlags().StringVar(&brokerURL, "broker", "", "Management broker base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation prompt")
	rootCmd.PersistentFlags().BoolVar(&noAudit, "no-audit", false, "Disable the local audit trail for this invocation")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
