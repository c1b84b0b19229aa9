package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"intel-terminal/internal/config"
	"intel-terminal/internal/earnings"
	"intel-terminal/internal/feeds"
	"intel-terminal/internal/intel"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/market"
	"intel-terminal/internal/portfolio"
	"intel-terminal/internal/store"
	"intel-terminal/internal/terminal"
)

// Version information
const (
	Version = "0.1.0"
)

// constituentsURL lists index members as CSV (Symbol,Name).
const constituentsURL = "https://datahub.io/core/s-and-p-500-companies/r/constituents.csv"

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Portfolio  *portfolio.Store
	Quotes     *market.YahooClient
	Membership *market.Membership
	Archive    store.AlertArchive
	Terminal   *terminal.Terminal
	Whale      *feeds.StaticWhaleAdapter
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := buildApp(cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "terminal",
		Short: "Institutional Intelligence Terminal",
		Long: `Institutional Intelligence Terminal tracks whale moves, political
trades, regulatory filings, and insider buys across your portfolio, and
derives valuation metrics for any ticker.

Use 'terminal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/intel-terminal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newWireCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newWatchCmd(app))

	return rootCmd
}

// buildApp wires the application components from configuration.
func buildApp(cfg *config.Config, logger zerolog.Logger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Portfolio = portfolio.NewStore(cfg.Terminal.PortfolioFile, logger)
	app.Quotes = market.NewYahooClient(cfg.Feeds.UserAgent, cfg.Feeds.FetchTimeout, logger)
	app.Membership = market.NewMembership(constituentsURL, cfg.Feeds.UserAgent, cfg.Feeds.MembershipTTL, cfg.Feeds.FetchTimeout, logger)

	// Alert archive is best-effort: warn and run with the no-op archive
	// when the database cannot be opened.
	app.Archive = store.NopArchive{}
	if cfg.Terminal.ArchiveEnabled {
		dbPath := filepath.Join(config.DefaultConfigDir(), "terminal.db")
		archive, err := store.NewSQLiteArchive(dbPath)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open alert archive, history disabled")
		} else {
			app.Archive = archive
		}
	}

	app.Whale = newWhaleAdapter(cfg, logger)
	sources := []feeds.AlertSource{
		app.Whale,
		feeds.NewRegulatoryFeedAdapter(cfg.Feeds.RegulatoryURL, cfg.Feeds.UserAgent, cfg.Overrides.CIK, cfg.Feeds.FetchTimeout, logger),
		feeds.NewInsiderTradeAdapter(cfg.Feeds.InsiderURL, cfg.Credentials.Insider.APIKey, cfg.Feeds.InsiderPerTick, cfg.Feeds.FetchTimeout, logger),
	}

	aggregator := intel.NewAggregator(sources, cfg.Terminal.DisplayLimit, logger)
	resolver := earnings.NewResolver(cfg.Overrides.EarningsDates, market.NewYahooCalendar(app.Quotes), logger)

	app.Terminal = terminal.New(app.Portfolio, aggregator, app.Quotes, resolver, app.Archive, cfg.Overrides.CEO, cfg.Terminal.HistoryPeriod, logger)

	return app
}

// output builds the command's Output with the configured color policy.
func (a *App) output(cmd *cobra.Command) *Output {
	o := NewOutput(cmd)
	if !a.Config.UI.ColorEnabled {
		o.colorEnabled = false
	}
	if a.Config.UI.DateFormat != "" {
		o.dateFormat = a.Config.UI.DateFormat
	}
	return o
}

func newWhaleAdapter(cfg *config.Config, logger zerolog.Logger) *feeds.StaticWhaleAdapter {
	if cfg.Feeds.WhaleWireFile == "" {
		return feeds.NewStaticWhaleAdapter()
	}
	adapter, err := feeds.NewStaticWhaleAdapterFromFile(cfg.Feeds.WhaleWireFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Feeds.WhaleWireFile).Msg("Whale wire file unusable, using built-in table")
	}
	return adapter
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Intel Terminal v%s\n", Version)
			}
		},
	}
}
