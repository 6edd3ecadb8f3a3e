// Package pipeline wires the monitoring run end to end: collect the country
// listing, derive an overview per country, write the ranked report, then
// record the run and notify configured sinks. Everything runs sequentially;
// only one request is in flight at any time.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/umoja-labs/africa-pulse/internal/config"
	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/history"
	"github.com/umoja-labs/africa-pulse/internal/logger"
	"github.com/umoja-labs/africa-pulse/internal/report"
	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
	"github.com/umoja-labs/africa-pulse/pkg/listing"
	"github.com/umoja-labs/africa-pulse/pkg/overview"
	"github.com/umoja-labs/africa-pulse/pkg/publishers"
)

// ErrNoCountries is returned when the listing yielded nothing at all; the
// only fatal condition of a run.
var ErrNoCountries = errors.New("no country data available")

// Pipeline executes one full monitoring run.
type Pipeline struct {
	cfg config.Config
	log logger.Logger
	now func() time.Time
}

// New builds a Pipeline. A nil logger is replaced with a no-op one.
func New(cfg config.Config, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Pipeline{cfg: cfg, log: log, now: time.Now}
}

// Run executes the pipeline to completion. A run only fails when no country
// listing could be obtained or the report could not be written; overview
// generation, history and publishing all degrade instead of aborting.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logPreviousRun()

	client := httpclient.NewRestyClient(p.cfg.ListingTimeout)
	defer client.Close()

	fetcher := listing.NewFetcher(client, p.cfg.APIURL, p.cfg.MaxRetries, p.log)
	collector := listing.NewCollector(fetcher, p.cfg.MaxPage, p.cfg.PageSize, p.log)

	countries := collector.Collect(ctx)
	if len(countries) == 0 {
		p.log.ErrorObj("listing returned no countries, aborting run", "run_no_data", nil)
		return ErrNoCountries
	}

	gen, cleanup := p.newGenerator(fetcher)
	defer cleanup()

	enriched := make([]domain.EnrichedCountry, 0, len(countries))
	for i, country := range countries {
		p.log.InfoObj("generating country overview", "overview_start", map[string]any{
			"index":    i + 1,
			"total":    len(countries),
			"country":  country.Name,
			"mentions": country.Mentions.Int(),
		})
		ov := gen.Generate(ctx, country)
		enriched = append(enriched, report.Enrich(country, ov))
	}

	withTotal := p.cfg.OverviewMode == config.ModeHeadlines
	rep := report.Build(enriched, withTotal, p.now())

	path, err := report.NewWriter(p.cfg.OutputDir, p.log).Write(rep)
	if err != nil {
		return err
	}

	p.logTopCountries(rep)
	p.recordRun(rep, path)
	p.publishRun(ctx, rep, path)
	return nil
}

// newGenerator picks the overview strategy for this run. The AI generator
// gets its own client carrying the longer inference timeout.
func (p *Pipeline) newGenerator(fetcher *listing.Fetcher) (overview.Generator, func()) {
	if p.cfg.OverviewMode == config.ModeHeadlines {
		return overview.NewHeadlineGenerator(fetcher, p.log), func() {}
	}

	aiClient := httpclient.NewRestyClient(p.cfg.InferenceTimeout)
	gen := overview.NewAIGenerator(aiClient, p.cfg.OpenRouterURL, p.cfg.OpenRouterKey, p.cfg.Model, p.log)
	return gen, aiClient.Close
}

func (p *Pipeline) logPreviousRun() {
	if p.cfg.HistoryPath == "" {
		return
	}

	store, err := history.Open(p.cfg.HistoryPath)
	if err != nil {
		p.log.WarnObj("history store unavailable", "history_open_error", map[string]any{
			"error": err.Error(),
		})
		return
	}
	defer store.Close()

	if last, found, err := store.Last(); err == nil && found {
		p.log.InfoObj("previous run found", "history_last_run", map[string]any{
			"generated_at": last.GeneratedAt,
			"countries":    last.TotalCountries,
			"top_country":  last.TopCountry,
		})
	}
}

func (p *Pipeline) recordRun(rep domain.Report, path string) {
	if p.cfg.HistoryPath == "" {
		return
	}

	store, err := history.Open(p.cfg.HistoryPath)
	if err != nil {
		p.log.WarnObj("history store unavailable, run not recorded", "history_open_error", map[string]any{
			"error": err.Error(),
		})
		return
	}
	defer store.Close()

	rec := history.Record{
		GeneratedAt:    rep.GeneratedAt,
		TotalCountries: rep.TotalCountries,
		TotalMentions:  rep.TotalMentions,
		ReportPath:     path,
	}
	if len(rep.Countries) > 0 {
		rec.TopCountry = rep.Countries[0].Name
	}

	if err := store.Append(rec); err != nil {
		p.log.WarnObj("failed to record run", "history_append_error", map[string]any{
			"error": err.Error(),
		})
	}
}

func (p *Pipeline) publishRun(ctx context.Context, rep domain.Report, path string) {
	if p.cfg.PublishersFile == "" {
		return
	}

	cfgs, err := publishers.LoadConfigs(p.cfg.PublishersFile)
	if err != nil {
		p.log.ErrorObj("publishers file unreadable, skipping publish", "publishers_config_error", map[string]any{
			"error": err.Error(),
		})
		return
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), publishers.EnabledConfigs(cfgs), p.log)
	if err != nil {
		p.log.ErrorObj("publisher setup failed, skipping publish", "publishers_build_error", map[string]any{
			"error": err.Error(),
		})
		return
	}

	evt := publishers.Event{
		RunID:          rep.GeneratedAt,
		GeneratedAt:    rep.GeneratedAt,
		TotalCountries: rep.TotalCountries,
		TotalMentions:  rep.TotalMentions,
		ReportPath:     path,
		OverviewMode:   p.cfg.OverviewMode,
	}
	if len(rep.Countries) > 0 {
		evt.TopCountry = rep.Countries[0].Name
	}

	publishers.PublishAll(ctx, pubs, evt, p.log)
}

func (p *Pipeline) logTopCountries(rep domain.Report) {
	top := rep.Countries
	if len(top) > 3 {
		top = top[:3]
	}

	ranked := make([]map[string]any, 0, len(top))
	for i, c := range top {
		ranked = append(ranked, map[string]any{
			"rank":     i + 1,
			"country":  c.Name,
			"mentions": c.Mentions,
		})
	}

	p.log.InfoObj("monitoring run complete", "run_done", map[string]any{
		"countries": rep.TotalCountries,
		"top":       ranked,
	})
}
