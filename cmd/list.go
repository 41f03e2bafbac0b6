package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listOutput string

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stateActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	stateIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	stateDiscStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	hostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions across the managed hosts",
	Long: `List user sessions enumerated by the management broker.

By default your own sessions are excluded; pass --include-self to keep
them. --user switches to pure substring matching on the user name and
ignores the state, self and idle filters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter()
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		records, err := internal.List(cmd.Context(), newBroker(cfg), filter)
		if err != nil {
			return err
		}

		switch listOutput {
		case "table", "":
			displaySessions(records)
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		case "yaml":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(records)
		default:
			return fmt.Errorf("unknown output format %q (want table, json or yaml)", listOutput)
		}
	},
}

func displaySessions(records []internal.SessionRecord) {
	if len(records) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(records)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("Host")+"\t"+titleStyle.Render("Session")+"\t"+titleStyle.Render("User")+"\t"+titleStyle.Render("State")+"\t"+titleStyle.Render("Idle (min)")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, r := range records {
		state := renderState(r.State)
		idle := strconv.FormatInt(r.IdleMinutes, 10)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			hostStyle.Render(r.Host),
			idStyle.Render(r.SessionID),
			userStyle.Render(r.User),
			state,
			stateDiscStyle.Render(idle))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: the same filter flags work on `rds-session disconnect`, `logoff` and `message`"))
}

func renderState(s internal.SessionState) string {
	switch s {
	case internal.StateActive:
		return stateActiveStyle.Render(string(s))
	case internal.StateIdle:
		return stateIdleStyle.Render(string(s))
	case internal.StateDisconnected:
		return stateDiscStyle.Render(string(s))
	default:
		return userStyle.Render(string(s))
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	addFilterFlags(listCmd)
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table, json, yaml)")
}
