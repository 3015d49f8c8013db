// Package chart draws the portfolio allocation pie chart.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/etnz/coinfolio"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	// DefaultFile is the chart file name.
	DefaultFile = "portfolio_allocation.png"

	// Size is the chart side in pixels: 6in at 160dpi.
	Size = 960

	title = "Portfolio allocation (by current value)"
)

// Label returns the slice label, e.g. "ETH 42.1%".
func Label(s coinfolio.Slice) string {
	return fmt.Sprintf("%s %s%%", s.Symbol, s.Share.StringFixed(1))
}

// RenderPie draws slices as a PNG pie chart into w.
func RenderPie(w io.Writer, slices []coinfolio.Slice) error {
	if len(slices) == 0 {
		return fmt.Errorf("cannot draw an empty pie chart")
	}
	values := make([]gochart.Value, len(slices))
	for i, s := range slices {
		values[i] = gochart.Value{Value: s.Value.InexactFloat64(), Label: Label(s)}
	}
	pie := gochart.PieChart{
		Title:  title,
		Width:  Size,
		Height: Size,
		Values: values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("cannot render pie chart: %w", err)
	}
	return nil
}

// WritePie writes the allocation of v to path. Only holdings with a positive
// current value are drawn. When there is none, no file is written and
// WritePie returns false.
func WritePie(path string, v *coinfolio.Valuation) (bool, error) {
	slices := v.Allocation()
	if len(slices) == 0 {
		return false, nil
	}
	// render first: a failed rendering must not leave an empty file behind.
	var buf bytes.Buffer
	if err := RenderPie(&buf, slices); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("cannot write chart: %w", err)
	}
	return true, nil
}
