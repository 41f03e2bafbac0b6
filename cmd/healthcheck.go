package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check connectivity to the management broker",
	Long: `Check the health of rds-session by verifying:
  • Config file resolution
  • Broker reachability and caller identity
  • Session enumeration
  • Audit trail accessibility

This command is useful for debugging broker or credential issues before
running a destructive action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("RDS Session Health Check"))
		fmt.Println()

		// Step 1: Resolve config
		fmt.Println(infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to load config:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Configuration loaded"))
		if verbose {
			fmt.Printf("   Broker URL: %s\n", cfg.Broker.URL)
			fmt.Printf("   Timeout: %s\n", cfg.Broker.Timeout)
		}
		fmt.Println()

		broker := newBroker(cfg)

		// Step 2: Reach the broker
		fmt.Println(infoStyle.Render("Step 2: Contacting broker..."))
		identity, err := broker.WhoAmI(cmd.Context())
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Broker unreachable:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Broker reachable"))
		fmt.Printf("   Authenticated as: %s\n", identity)
		fmt.Println()

		// Step 3: Enumerate sessions
		fmt.Println(infoStyle.Render("Step 3: Enumerating sessions..."))
		records, err := broker.Sessions(cmd.Context())
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Session enumeration failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d session(s) visible", len(records))))
		fmt.Println()

		// Step 4: Audit trail
		fmt.Println(infoStyle.Render("Step 4: Checking audit trail..."))
		if noAudit || !cfg.Audit.Enabled {
			fmt.Println(warningStyle.Render("⚠ Audit trail disabled"))
			return nil
		}
		audit := openAudit(cfg)
		if audit == nil {
			fmt.Println(warningStyle.Render("⚠ Audit trail unavailable (actions will not be recorded)"))
			return nil
		}
		defer audit.Close()
		entries, err := audit.Entries()
		if err != nil {
			fmt.Println(warningStyle.Render("⚠ Audit trail unreadable:"), err)
			return nil
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Audit trail OK (%d recorded action(s))", len(entries))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
