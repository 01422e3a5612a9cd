package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coastwatch/seawindow/internal/config"
	"github.com/coastwatch/seawindow/internal/feed"
	"github.com/coastwatch/seawindow/internal/observability"
	"github.com/coastwatch/seawindow/internal/render"
	"github.com/coastwatch/seawindow/internal/report"
)

var reportFlags struct {
	Dir         string
	URL         string
	Spots       []string
	Variant     string
	Format      string
	Concurrency int
	Timeout     time.Duration
	Verbose     bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Evaluate spot feeds once and print the go/no-go report",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.Dir, "dir", "", "directory holding <slug>.json feeds (default from FEED_DIR)")
	f.StringVar(&reportFlags.URL, "url", "", "base URL serving <slug>.json feeds (default from FEED_URL)")
	f.StringSliceVar(&reportFlags.Spots, "spots", nil, "spot slugs to evaluate (default: the registry's five spots)")
	f.StringVar(&reportFlags.Variant, "variant", "", "rule variant: classic or coastal (default from VARIANT)")
	f.StringVar(&reportFlags.Format, "format", render.FormatTable, "output format: table, json, or csv")
	f.IntVar(&reportFlags.Concurrency, "concurrency", 0, "parallel spot fetches (default from CONCURRENCY)")
	f.DurationVar(&reportFlags.Timeout, "timeout", 0, "per-fetch timeout for --url sources (default from FEED_TIMEOUT)")
	f.BoolVar(&reportFlags.Verbose, "verbose", false, "log per-spot fetch problems to stderr")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyReportFlags(cfg)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// The CLI is quiet by default: spot failures surface as rows, not logs.
	logWriter := io.Discard
	if reportFlags.Verbose {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, nil))

	var source report.Source
	if cfg.FeedURL != "" {
		source = feed.NewHTTPSource(cfg.FeedURL, cfg.FeedTimeout, logger)
	} else {
		source = feed.NewDirSource(cfg.FeedDir)
	}

	reporter := report.New(source, policy, logger, observability.NewMetrics(), cfg.Concurrency)
	rows := reporter.Run(cmd.Context(), cfg.Spots)

	return render.Render(os.Stdout, rows, reportFlags.Format)
}

// applyReportFlags lets explicit flags override environment configuration.
func applyReportFlags(cfg *config.Config) {
	if reportFlags.Dir != "" {
		cfg.FeedDir = reportFlags.Dir
		cfg.FeedURL = ""
	}
	if reportFlags.URL != "" {
		cfg.FeedURL = reportFlags.URL
	}
	if len(reportFlags.Spots) > 0 {
		cfg.Spots = reportFlags.Spots
	}
	if reportFlags.Variant != "" {
		cfg.Variant = reportFlags.Variant
	}
	if reportFlags.Concurrency > 0 {
		cfg.Concurrency = reportFlags.Concurrency
	}
	if reportFlags.Timeout > 0 {
		cfg.FeedTimeout = reportFlags.Timeout
	}
}
