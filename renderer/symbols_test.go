package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/google/go-cmp/cmp"
)

func TestSymbolsMarkdown(t *testing.T) {
	m := coinfolio.SymbolMap{"ETH": "ethereum", "BTC": "bitcoin"}

	got := tables(t, SymbolsMarkdown(m))
	want := [][][]string{{
		{"Symbol", "CoinGecko id"},
		{"BTC", "bitcoin"},
		{"ETH", "ethereum"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SymbolsMarkdown() tables mismatch (-want +got):\n%s", diff)
	}
}

func TestCoinsMarkdown(t *testing.T) {
	coins := []coingecko.Coin{
		{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", Rank: 9},
		{ID: "doge-on-sol", Symbol: "DOGE", Name: "Doge on Sol"},
	}

	got := tables(t, CoinsMarkdown("doge", coins))
	want := [][][]string{{
		{"Symbol", "Id", "Name", "Rank"},
		{"DOGE", "dogecoin", "Dogecoin", "9"},
		{"DOGE", "doge-on-sol", "Doge on Sol", "-"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CoinsMarkdown() tables mismatch (-want +got):\n%s", diff)
	}
}

func TestCoinsMarkdown_NoMatch(t *testing.T) {
	got := CoinsMarkdown("zzz", nil)
	if !strings.Contains(got, "No match.") {
		t.Errorf("CoinsMarkdown() = %q, want a no match notice", got)
	}
	if n := len(tables(t, got)); n != 0 {
		t.Errorf("CoinsMarkdown() has %d tables, want 0", n)
	}
}
