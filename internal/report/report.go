// Package report runs the per-spot batch evaluation: fetch feed, extract
// series, evaluate windows, one summary row per spot. Spots are fully
// isolated from each other and output order always matches input order.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/coastwatch/seawindow/internal/domain"
	"github.com/coastwatch/seawindow/internal/observability"
	"github.com/coastwatch/seawindow/internal/spots"
)

// Row verdict sentinels.
const (
	ReadError    = "read error"
	NotEvaluated = "not evaluated"
)

// Source fetches the raw JSON payload for one spot. Implemented by the feed
// package's sources.
type Source interface {
	Fetch(ctx context.Context, slug string) ([]byte, error)
}

// Row is one spot's summary line in a batch report.
type Row struct {
	Slug   string `json:"slug"`
	Label  string `json:"label"`
	Family string `json:"family"`
	Expert string `json:"expert"`
}

// Reporter evaluates a list of spots against one rule policy.
type Reporter struct {
	source      Source
	evaluator   *domain.Evaluator
	logger      *slog.Logger
	metrics     *observability.Metrics
	concurrency int
}

// New creates a Reporter. Concurrency below 2 means strictly sequential
// processing; higher values fetch spots in parallel while preserving row
// order and per-spot isolation.
func New(source Source, policy domain.Policy, logger *slog.Logger, metrics *observability.Metrics, concurrency int) *Reporter {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Reporter{
		source:      source,
		evaluator:   domain.NewEvaluator(policy),
		logger:      logger,
		metrics:     metrics,
		concurrency: concurrency,
	}
}

// Run evaluates each slug and returns one row per slug, in input order. An
// empty slug list evaluates the registry's default spots. A spot's fetch or
// parse failure yields a "read error" row and never affects other spots.
func (r *Reporter) Run(ctx context.Context, slugs []string) []Row {
	if len(slugs) == 0 {
		slugs = spots.DefaultSlugs()
	}

	rows := make([]Row, len(slugs))
	if r.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, slug := range slugs {
			g.Go(func() error {
				rows[i] = r.evaluateSpot(gctx, slug)
				return nil
			})
		}
		// Workers never return errors; failures become rows.
		_ = g.Wait()
	} else {
		for i, slug := range slugs {
			rows[i] = r.evaluateSpot(ctx, slug)
		}
	}
	return rows
}

func (r *Reporter) evaluateSpot(ctx context.Context, slug string) Row {
	r.metrics.SpotsEvaluated.Inc()

	spot := spots.Lookup(slug)
	row := Row{Slug: spot.Slug, Label: spot.Name}

	payload, err := r.source.Fetch(ctx, spots.Normalize(slug))
	if err != nil {
		r.logger.Warn("spot feed unreadable", "slug", slug, "error", err)
		return r.readErrorRow(row)
	}

	series, meta, err := domain.ExtractSeries(payload)
	if err != nil {
		r.logger.Warn("spot payload malformed", "slug", slug, "error", err)
		return r.readErrorRow(row)
	}
	if meta.Name != "" {
		row.Label = meta.Name
	}

	tz := meta.TZ
	if tz == "" {
		tz = spot.TZ
	}
	loc := domain.LoadLocation(tz)

	policy := r.evaluator.Policy()
	onshore := spot.Classifier(policy.Variant)

	family := r.evaluator.Evaluate(series, loc, onshore, domain.ClassFamily)
	row.Family = verdictString(family)
	r.metrics.Verdicts.WithLabelValues(string(domain.ClassFamily), outcome(family)).Inc()

	if policy.Variant == domain.VariantClassic {
		expert := r.evaluator.Evaluate(series, loc, onshore, domain.ClassExpert)
		row.Expert = verdictString(expert)
		r.metrics.Verdicts.WithLabelValues(string(domain.ClassExpert), outcome(expert)).Inc()
	} else {
		row.Expert = NotEvaluated
	}

	return row
}

func (r *Reporter) readErrorRow(row Row) Row {
	r.metrics.FetchErrors.Inc()
	r.metrics.Verdicts.WithLabelValues(string(domain.ClassFamily), "read_error").Inc()
	row.Family = ReadError
	if r.evaluator.Policy().Variant == domain.VariantClassic {
		r.metrics.Verdicts.WithLabelValues(string(domain.ClassExpert), "read_error").Inc()
		row.Expert = ReadError
	} else {
		row.Expert = NotEvaluated
	}
	return row
}

func verdictString(v domain.Verdict) string {
	if v.OK {
		return fmt.Sprintf("GO %s → %s", v.Start, v.End)
	}
	return v.Message()
}

func outcome(v domain.Verdict) string {
	switch {
	case v.OK:
		return "go"
	case v.Failure != nil && v.Failure.Rule == "no_segment":
		return "no_segment"
	default:
		return "no_go"
	}
}
