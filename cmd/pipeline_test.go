package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/chart"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

var now = time.Date(2025, time.October, 12, 14, 30, 5, 0, time.UTC)

// countingSource counts Fetch calls on top of fixed prices, or fails with err.
type countingSource struct {
	prices coinfolio.FixedPrices
	err    error
	calls  int
}

func (s *countingSource) Fetch(ctx context.Context, ids []coinfolio.ProviderID) (coinfolio.Quotes, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.prices.Fetch(ctx, ids)
}

// newPipeline returns a pipeline over a holdings file with content, writing into a temp dir.
func newPipeline(t *testing.T, content string, src coinfolio.PriceSource) *Pipeline {
	t.Helper()
	dir := t.TempDir()
	holdings := filepath.Join(dir, "holdings.csv")
	if err := os.WriteFile(holdings, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}
	return &Pipeline{
		Holdings:  holdings,
		OutputDir: out,
		ChartFile: chart.DefaultFile,
		Symbols:   coinfolio.DefaultSymbols(),
		Source:    src,
		Now:       func() time.Time { return now },
		Log:       zerolog.Nop(),
	}
}

// files lists the file names in dir.
func files(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

const example = `symbol,amount,buy_price_usd
ETH,2,1000
eth ,0.5,2000
XXX,1,10
SOL,10,100
`

func TestPipeline_Run(t *testing.T) {
	src := &countingSource{prices: coinfolio.FixedPrices{"ethereum": coinfolio.M(1500), "solana": coinfolio.M(150)}}
	p := newPipeline(t, example, src)

	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.calls != 1 {
		t.Errorf("Fetch calls = %d, want 1", src.calls)
	}

	want := []string{chart.DefaultFile, "report-20251012-143005.csv"}
	if diff := cmp.Diff(want, files(t, p.OutputDir)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if r.Snapshot != filepath.Join(p.OutputDir, "report-20251012-143005.csv") {
		t.Errorf("Snapshot = %q", r.Snapshot)
	}
	if r.Chart != filepath.Join(p.OutputDir, chart.DefaultFile) {
		t.Errorf("Chart = %q", r.Chart)
	}

	// 2*1500 + 0.5*1500 + 10*150 against 2000 + 1000 + 10 + 1000
	totals := r.Valuation.Totals
	if !totals.CostBasis.Equal(coinfolio.M(4010)) || !totals.ValueNow.Equal(coinfolio.M(5250)) {
		t.Errorf("totals = %v / %v, want $4,010.00 / $5,250.00", totals.CostBasis, totals.ValueNow)
	}
	for _, s := range []string{"$4,010.00", "$5,250.00", "XXX"} {
		if !strings.Contains(r.Markdown, s) {
			t.Errorf("report does not contain %q:\n%s", s, r.Markdown)
		}
	}

	f, err := os.Open(r.Snapshot)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := coinfolio.DecodeSnapshot(f)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(back.Holdings) != 4 || !back.Totals.ValueNow.Equal(totals.ValueNow) {
		t.Errorf("snapshot holds %d holdings valued %v, want 4 valued %v", len(back.Holdings), back.Totals.ValueNow, totals.ValueNow)
	}
}

func TestPipeline_FetchFailureWritesNothing(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	p := newPipeline(t, example, src)

	_, err := p.Run(context.Background())
	var ferr *coinfolio.PriceFetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("Run() error = %v, want a *PriceFetchError", err)
	}
	if got := files(t, p.OutputDir); len(got) != 0 {
		t.Errorf("output files = %v, want none", got)
	}
}

func TestPipeline_LoadFailureWritesNothing(t *testing.T) {
	src := &countingSource{}
	for name, content := range map[string]string{
		"missing column": "symbol,amount\nETH,1\n",
		"negative":       "symbol,amount,buy_price_usd\nETH,-1,10\n",
	} {
		t.Run(name, func(t *testing.T) {
			p := newPipeline(t, content, src)
			if _, err := p.Run(context.Background()); err == nil {
				t.Fatal("Run() error = nil, want an error")
			}
			if got := files(t, p.OutputDir); len(got) != 0 {
				t.Errorf("output files = %v, want none", got)
			}
		})
	}
	if src.calls != 0 {
		t.Errorf("Fetch calls = %d, want 0", src.calls)
	}

	p := newPipeline(t, "", src)
	p.Holdings = filepath.Join(t.TempDir(), "missing.csv")
	var lerr *coinfolio.LoadError
	if _, err := p.Run(context.Background()); !errors.As(err, &lerr) {
		t.Errorf("Run() with a missing file error = %v, want a *LoadError", err)
	}
}

func TestPipeline_NothingToPrice(t *testing.T) {
	src := &countingSource{}
	p := newPipeline(t, "symbol,amount,buy_price_usd\nXXX,1,10\n", src)

	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.calls != 0 {
		t.Errorf("Fetch calls = %d, want 0", src.calls)
	}
	if r.Chart != "" {
		t.Errorf("Chart = %q, want none", r.Chart)
	}
	want := []string{"report-20251012-143005.csv"}
	if diff := cmp.Diff(want, files(t, p.OutputDir)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_NoChart(t *testing.T) {
	src := &countingSource{prices: coinfolio.FixedPrices{"ethereum": coinfolio.M(1500)}}
	p := newPipeline(t, example, src)
	p.ChartFile = ""

	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Chart != "" {
		t.Errorf("Chart = %q, want none", r.Chart)
	}
	if got := files(t, p.OutputDir); len(got) != 1 {
		t.Errorf("output files = %v, want the snapshot only", got)
	}
}

func TestPipeline_SnapshotIsNeverOverwritten(t *testing.T) {
	src := &countingSource{prices: coinfolio.FixedPrices{"ethereum": coinfolio.M(1500)}}
	p := newPipeline(t, example, src)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("second Run() at the same time error = nil, want an error")
	}
}

func TestPipeline_Evaluate(t *testing.T) {
	src := &countingSource{prices: coinfolio.FixedPrices{"ethereum": coinfolio.M(1500)}}
	p := newPipeline(t, example, src)

	r, err := p.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !r.At.Equal(now) || r.Markdown == "" {
		t.Errorf("Evaluate() = %v %q, want a report at %v", r.At, r.Markdown, now)
	}
	if got := files(t, p.OutputDir); len(got) != 0 {
		t.Errorf("output files = %v, want none", got)
	}
}
