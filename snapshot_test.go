package coinfolio

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testValuation(t *testing.T) *Valuation {
	t.Helper()
	holdings := []Holding{
		mustHolding(t, "ETH", 2, 1000),
		mustHolding(t, "XXX", 1, 10),
		mustHolding(t, "SOL", 1, 0),
		mustHolding(t, "PENGU", 123456.789, 0.0123),
	}
	quotes := Quotes{"ethereum": usd(1500), "solana": usd(150.5), "pengu": usd(0.0311)}
	v, err := Value(holdings, quotes, DefaultSymbols())
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	return v
}

func TestSnapshotName(t *testing.T) {
	at := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	if got, want := SnapshotName(at), "report-20250304-040607.csv"; got != want {
		t.Errorf("SnapshotName() = %q, want %q", got, want)
	}
}

func TestEncodeSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, testValuation(t)); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"symbol,amount,buy_price_usd,price_now,cost_basis,value_now,roi_abs,roi_pct",
		"ETH,2,1000,1500,2000,3000,1000,50",
		"XXX,1,10,,10,,,",
		"SOL,1,0,150.5,0,150.5,150.5,",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], w)
		}
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	want := testValuation(t)
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, want); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	got, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(got.Holdings) != len(want.Holdings) {
		t.Fatalf("len(Holdings) = %d, want %d", len(got.Holdings), len(want.Holdings))
	}
	for i, w := range want.Holdings {
		g := got.Holdings[i]
		if g.Symbol() != w.Symbol() || !g.Amount().Equal(w.Amount()) || !g.BuyPrice().Equal(w.BuyPrice()) {
			t.Errorf("holding %d = %v %v %v, want %v %v %v", i, g.Symbol(), g.Amount(), g.BuyPrice().Decimal(), w.Symbol(), w.Amount(), w.BuyPrice().Decimal())
		}
		if !g.CostBasis.Equal(w.CostBasis) {
			t.Errorf("%s CostBasis = %v, want %v", w.Symbol(), g.CostBasis.Decimal(), w.CostBasis.Decimal())
		}
		for name, pair := range map[string][2]Optional[Money]{
			"PriceNow": {g.PriceNow, w.PriceNow},
			"ValueNow": {g.ValueNow, w.ValueNow},
			"ROIAbs":   {g.ROIAbs, w.ROIAbs},
		} {
			gv, gok := pair[0].Get()
			wv, wok := pair[1].Get()
			if gok != wok || !gv.Equal(wv) {
				t.Errorf("%s %s = %v (%v), want %v (%v)", w.Symbol(), name, gv.Decimal(), gok, wv.Decimal(), wok)
			}
		}
		gp, gok := g.ROIPct.Get()
		wp, wok := w.ROIPct.Get()
		if gok != wok || !gp.Equal(wp) {
			t.Errorf("%s ROIPct = %v (%v), want %v (%v)", w.Symbol(), gp, gok, wp, wok)
		}
	}
	if !got.Totals.ValueNow.Equal(want.Totals.ValueNow) || !got.Totals.CostBasis.Equal(want.Totals.CostBasis) {
		t.Errorf("Totals = %+v, want %+v", got.Totals, want.Totals)
	}
}

func TestDecodeSnapshot_BadHeader(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader("symbol,amount,buy_price_usd\nETH,1,1\n"))
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Errorf("DecodeSnapshot() error = %v, want *LoadError", err)
	}
}

func TestWriteSnapshot_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	v := testValuation(t)

	path, err := WriteSnapshot(dir, at, v)
	if err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}
	if want := filepath.Join(dir, "report-20250102-030405.csv"); path != want {
		t.Errorf("WriteSnapshot() path = %q, want %q", path, want)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = WriteSnapshot(dir, at, &Valuation{})
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("second WriteSnapshot() error = %v, want fs.ErrExist", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("snapshot was overwritten")
	}
}
