package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/chart"
	"github.com/etnz/coinfolio/renderer"
	"github.com/rs/zerolog"
)

// Pipeline values a holdings file and writes the reports: load, resolve,
// fetch, value, then snapshot and chart.
type Pipeline struct {
	Holdings  string // holdings CSV file
	OutputDir string // snapshot directory
	ChartFile string // relative to OutputDir unless absolute, empty for no chart
	Symbols   coinfolio.Resolver
	Source    coinfolio.PriceSource
	Now       func() time.Time // time.Now if nil
	Log       zerolog.Logger
}

// Report is the outcome of a Pipeline run.
type Report struct {
	At        time.Time
	Valuation *coinfolio.Valuation
	Markdown  string
	Snapshot  string // snapshot file path, empty if not written
	Chart     string // chart file path, empty if not drawn
}

// Evaluate loads the holdings and values them at current prices. It writes nothing.
func (p *Pipeline) Evaluate(ctx context.Context) (*Report, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	holdings, err := coinfolio.LoadHoldings(p.Holdings)
	if err != nil {
		return nil, err
	}
	p.Log.Debug().Str("file", p.Holdings).Int("holdings", len(holdings)).Msg("holdings loaded")

	for _, h := range holdings {
		if _, ok := p.Symbols.Resolve(h.Symbol()); !ok {
			p.Log.Warn().Str("symbol", h.Symbol()).Msg("unknown symbol, no price")
		}
	}

	v, err := coinfolio.Evaluate(ctx, holdings, p.Source, p.Symbols)
	if err != nil {
		return nil, err
	}
	at := now()
	p.Log.Info().Int("holdings", len(v.Holdings)).Int("priced", v.Totals.Priced).Msg("portfolio valued")

	return &Report{
		At:        at,
		Valuation: v,
		Markdown:  renderer.ValuationMarkdown(v, at),
	}, nil
}

// Run evaluates the portfolio and writes the snapshot and the chart.
//
// Nothing is written when the valuation fails.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	r, err := p.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	r.Snapshot, err = coinfolio.WriteSnapshot(p.OutputDir, r.At, r.Valuation)
	if err != nil {
		return nil, err
	}
	p.Log.Info().Str("file", r.Snapshot).Msg("snapshot written")

	if p.ChartFile == "" {
		return r, nil
	}
	path := p.ChartFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.OutputDir, path)
	}
	drawn, err := chart.WritePie(path, r.Valuation)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s written, %w", r.Snapshot, err)
	}
	if !drawn {
		p.Log.Info().Msg("no positive value, chart skipped")
		return r, nil
	}
	r.Chart = path
	p.Log.Info().Str("file", path).Msg("chart written")
	return r, nil
}
