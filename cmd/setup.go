package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/rds-session/internal"
	"github.com/spf13/cobra"
)

// Filter flag values shared by list and the action commands. Exactly one
// of the two filter modes applies: --user switches to substring matching
// and the state/self/idle flags are ignored.
var (
	filterState    string
	filterUser     string
	includeSelf    bool
	minIdleMinutes int64
)

// targetSessions holds explicit host:id pairs passed to the action
// commands, typically piped back in from `list --output json`.
var targetSessions []string

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterState, "state", "Any", "Filter by session state (Active, Idle, Connected, Disconnected, Any)")
	cmd.Flags().StringVar(&filterUser, "user", "", "Filter by user name substring (case-insensitive; bypasses state/self/idle filters)")
	cmd.Flags().BoolVar(&includeSelf, "include-self", false, "Include your own sessions")
	cmd.Flags().Int64Var(&minIdleMinutes, "min-idle", 0, "Minimum idle time in minutes")
}

func addTargetFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&targetSessions, "session", nil, "Act on an explicit host:id session instead of the filter flags (repeatable)")
}

// selectRecords resolves the records an action command operates on:
// either the explicit --session targets or the filtered enumeration.
func selectRecords(cmd *cobra.Command, broker internal.Broker) ([]internal.SessionRecord, error) {
	if len(targetSessions) == 0 {
		filter, err := buildFilter()
		if err != nil {
			return nil, err
		}
		return internal.List(cmd.Context(), broker, filter)
	}

	all, err := broker.Sessions(cmd.Context())
	if err != nil {
		return nil, err
	}
	byTarget := make(map[string]internal.SessionRecord, len(all))
	for _, r := range all {
		byTarget[r.Target()] = r
	}

	records := make([]internal.SessionRecord, 0, len(targetSessions))
	for _, target := range targetSessions {
		r, ok := byTarget[target]
		if !ok {
			// The session may have ended since it was listed.
			internal.LogWarn("session %s not found, skipping", target)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func buildFilter() (internal.Filter, error) {
	if filterUser != "" {
		return internal.Filter{User: filterUser}, nil
	}
	if minIdleMinutes < 0 {
		return internal.Filter{}, fmt.Errorf("--min-idle must not be negative")
	}
	state, err := internal.ParseSessionState(filterState)
	if err != nil {
		return internal.Filter{}, err
	}
	return internal.Filter{
		State:          state,
		IncludeSelf:    includeSelf,
		MinIdleMinutes: minIdleMinutes,
	}, nil
}

func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if brokerURL != "" {
		cfg.Broker.URL = brokerURL
	}
	if cfg.Verbose {
		internal.SetVerbose(true)
	}
	return cfg, nil
}

func newBroker(cfg *internal.Config) internal.Broker {
	return internal.NewHTTPBroker(cfg.Broker.URL, cfg.Broker.Token, cfg.Broker.Timeout)
}

func newConfirmer() internal.Confirmer {
	if assumeYes {
		return internal.AutoConfirmer{Answer: true}
	}
	return internal.NewTerminalConfirmer(os.Stdin, os.Stdout)
}

// openAudit returns the audit log, or nil when auditing is off. A nil
// AuditLog records nothing, so failures here only cost the trail.
func openAudit(cfg *internal.Config) *internal.AuditLog {
	if noAudit || !cfg.Audit.Enabled {
		return nil
	}
	path := cfg.Audit.Path
	if path == "" {
		var err error
		path, err = internal.DefaultAuditPath()
		if err != nil {
			internal.LogWarn("Audit disabled: %v", err)
			return nil
		}
	}
	audit, err := internal.OpenAuditLog(path)
	if err != nil {
		internal.LogWarn("Audit disabled: %v", err)
		return nil
	}
	return audit
}
