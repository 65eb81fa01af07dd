package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/VincentSchmalor/WPAnalysis/internal/config"
	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
	"github.com/VincentSchmalor/WPAnalysis/internal/scraper"
	"github.com/VincentSchmalor/WPAnalysis/internal/snapshot"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagEnvFile  string
	flagURL      string
	flagFormat   string
	flagSort     string
	flagTimeout  time.Duration
	flagPolicy   string
	flagTimezone string
	flagLogLevel string
	flagVerbose  bool

	flagTeam   string
	flagStatus string
	flagOutput string

	flagPort            string
	flagRefreshInterval time.Duration
	flagNotify          string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpanalysis",
		Short: "Analyse a water polo league from its published results page",
		Long: `A tool to analyse a water polo league.
It scrapes the schedule and standings tables of the league page, derives
per-team schedules and statistics, and prints or serves them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Optional .env file with WPA_* settings")
	pf.StringVar(&flagURL, "url", "", "League results page (overrides WPA_LEAGUE_URL)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.DurationVar(&flagTimeout, "timeout", scraper.Timeout, "Timeout for fetching the league page")
	pf.StringVar(&flagPolicy, "shootout-policy", "", "Shootout handling: separate or merge (overrides WPA_SHOOTOUT_POLICY)")
	pf.StringVar(&flagTimezone, "timezone", "", "Time zone of the kickoff times (overrides WPA_TIMEZONE)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScheduleCmd(),
		newStandingsCmd(),
		newStatsCmd(),
		newTeamCmd(),
		newCalendarCmd(),
		newServeCmd(),
	)

	return cmd
}

// loadConfig reads the environment and applies the command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.LeagueURL = flagURL
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeout = flagTimeout
	}
	if flags.Changed("timezone") {
		cfg.Timezone = flagTimezone
	}
	if flags.Changed("shootout-policy") {
		if cfg.ShootoutPolicy, err = league.ParseShootoutPolicy(flagPolicy); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = logger.ParseLevel(flagLogLevel); err != nil {
			return nil, err
		}
	}
	if flagVerbose {
		cfg.LogLevel = logger.LevelDebug
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("refresh-interval") {
		cfg.RefreshInterval = flagRefreshInterval
	}
	if flags.Changed("notify") {
		cfg.Notify = strings.ToLower(flagNotify)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.SetDefault(logger.New(cfg.LogLevel, os.Stderr))
	return cfg, nil
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// fetchSnapshot fetches the league page once and runs the full pipeline.
func fetchSnapshot(ctx context.Context, cfg *config.Config) (*snapshot.Snapshot, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sc := scraper.New(cfg.LeagueURL, cfg.FetchTimeout)
	logger.Debug("fetching league page", logger.Fields{"url": sc.URL()})

	tables, err := sc.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching league page: %w", err)
	}

	snap := snapshot.Build(tables, snapshot.Options{
		Location: loc,
		Policy:   cfg.ShootoutPolicy,
		Source:   sc.URL(),
	}, time.Now().UTC())

	logger.Debug("league page parsed", logger.Fields{
		"games":     len(snap.Schedule),
		"standings": len(snap.Standings),
		"teams":     len(snap.Teams),
	})
	for _, a := range snap.Anomalies {
		logger.Warn("schedule anomaly", logger.Fields{
			"game":   a.Game,
			"kind":   string(a.Kind),
			"detail": a.Detail,
		})
	}

	return snap, nil
}

// prepare is the common start of every command that prints league data.
func prepare(cmd *cobra.Command) (*snapshot.Snapshot, OutputFormat, error) {
	format, err := outputFormat()
	if err != nil {
		return nil, "", err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	snap, err := fetchSnapshot(cmd.Context(), cfg)
	if err != nil {
		return nil, "", err
	}
	return snap, format, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
