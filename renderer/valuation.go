// Package renderer renders valuations as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// TablePlaces is the number of decimals displayed in the holdings table.
const TablePlaces = 4

// holdingsHeader lists the holdings table columns.
var holdingsHeader = []string{"Symbol", "Amount", "Buy price", "Price now", "Cost basis", "Value now", "ROI %"}

// ValuationMarkdown renders v, computed at the given time, as a markdown
// document: the holdings table, in portfolio order, then the totals.
func ValuationMarkdown(v *coinfolio.Valuation, at time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio valuation on %s", at.UTC().Format("2006-01-02 15:04 UTC")))

	if len(v.Holdings) == 0 {
		doc.PlainText("No holdings.")
	} else {
		doc.H2("Holdings")
		doc.Table(md.TableSet{Header: holdingsHeader, Rows: holdingRows(v.Holdings)})
	}

	doc.H2("Totals")
	doc.Table(md.TableSet{Header: []string{"Total", "USD"}, Rows: totalRows(v.Totals)})

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool { return writeUnpriced(w, v.Holdings) })
	return b.String()
}

func holdingRows(holdings []coinfolio.ValuedHolding) [][]string {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Symbol(),
			h.Amount().StringFixed(TablePlaces),
			h.BuyPrice().StringFixed(TablePlaces),
			fixed(h.PriceNow),
			h.CostBasis.StringFixed(TablePlaces),
			fixed(h.ValueNow),
			fixed(h.ROIPct),
		})
	}
	return rows
}

func totalRows(t coinfolio.Totals) [][]string {
	return [][]string{
		{"Cost basis", t.CostBasis.String()},
		{"Value now", t.ValueNow.String()},
		{"ROI", t.ROIAbs.SignedString()},
		{"ROI %", t.ROIPct.SignedString()},
	}
}

// writeUnpriced lists the holdings valued without a price and reports whether there was any.
func writeUnpriced(w io.Writer, holdings []coinfolio.ValuedHolding) bool {
	var symbols []string
	for _, h := range holdings {
		if !h.PriceNow.IsPresent() {
			symbols = append(symbols, h.Symbol())
		}
	}
	if len(symbols) == 0 {
		return false
	}
	fmt.Fprintf(w, "\nNo current price for %s: counted as $0 in the total value.\n", strings.Join(symbols, ", "))
	return true
}

// fixed renders a present value with TablePlaces decimals, or "n/a".
func fixed[T interface{ StringFixed(int32) string }](o coinfolio.Optional[T]) string {
	v, ok := o.Get()
	if !ok {
		return unavailable
	}
	return v.StringFixed(TablePlaces)
}
