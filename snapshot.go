package coinfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// snapshotHeader lists the snapshot columns, in order.
var snapshotHeader = []string{
	ColumnSymbol, ColumnAmount, ColumnBuyPrice,
	"price_now", "cost_basis", "value_now", "roi_abs", "roi_pct",
}

// SnapshotStampFormat is the time layout used in snapshot file names.
const SnapshotStampFormat = "20060102-150405"

// SnapshotName returns the snapshot file name for a run at t, in UTC:
// report-<YYYYMMDD-HHMMSS>.csv.
func SnapshotName(t time.Time) string {
	return "report-" + t.UTC().Format(SnapshotStampFormat) + ".csv"
}

// WriteSnapshot writes v into dir under SnapshotName(now) and returns the file path.
//
// An existing snapshot is never overwritten: WriteSnapshot fails instead.
func WriteSnapshot(dir string, now time.Time, v *Valuation) (path string, err error) {
	path = filepath.Join(dir, SnapshotName(now))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("cannot create snapshot: %w", err)
	}
	if err := EncodeSnapshot(f, v); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot close snapshot %q: %w", path, err)
	}
	return path, nil
}

// EncodeSnapshot writes the valued holdings as CSV, full precision.
// Absent values are written as empty cells.
func EncodeSnapshot(w io.Writer, v *Valuation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return fmt.Errorf("cannot write snapshot header: %w", err)
	}
	for _, h := range v.Holdings {
		record := []string{
			h.Symbol(),
			h.Amount().String(),
			h.BuyPrice().Decimal().String(),
			optionalString(h.PriceNow, Money.Decimal),
			h.CostBasis.Decimal().String(),
			optionalString(h.ValueNow, Money.Decimal),
			optionalString(h.ROIAbs, Money.Decimal),
			optionalString(h.ROIPct, Percent.Decimal),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write snapshot row for %q: %w", h.Symbol(), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	return nil
}

func optionalString[T any, D interface{ String() string }](o Optional[T], dec func(T) D) string {
	v, ok := o.Get()
	if !ok {
		return ""
	}
	return dec(v).String()
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
//
// The totals are recomputed from the holdings.
func DecodeSnapshot(r io.Reader) (*Valuation, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, &LoadError{Line: csvLine(err), Err: fmt.Errorf("cannot read snapshot header: %w", err)}
	}
	if strings.Join(header, ",") != strings.Join(snapshotHeader, ",") {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("unexpected snapshot header %q", header)}
	}

	v := &Valuation{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Line: csvLine(err), Err: err}
		}
		line, _ := cr.FieldPos(0)
		vh, err := decodeValuedHolding(record)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		v.Holdings = append(v.Holdings, vh)
	}
	v.Totals = total(v.Holdings)
	return v, nil
}

func decodeValuedHolding(record []string) (ValuedHolding, error) {
	amount, err := ParseQuantity(record[1])
	if err != nil {
		return ValuedHolding{}, err
	}
	buy, err := ParseMoney(record[2])
	if err != nil {
		return ValuedHolding{}, err
	}
	h, err := NewHolding(record[0], amount, buy)
	if err != nil {
		return ValuedHolding{}, err
	}
	vh := ValuedHolding{Holding: h}
	var errs []error
	vh.PriceNow = parseOptionalMoney(record[3], &errs)
	vh.CostBasis = parseOptionalMoney(record[4], &errs).Or(h.CostBasis())
	vh.ValueNow = parseOptionalMoney(record[5], &errs)
	vh.ROIAbs = parseOptionalMoney(record[6], &errs)
	if s := record[7]; s != "" {
		pct, err := ParsePercent(s)
		if err != nil {
			errs = append(errs, err)
		}
		vh.ROIPct = Some(pct)
	}
	return vh, errors.Join(errs...)
}

func parseOptionalMoney(s string, errs *[]error) Optional[Money] {
	if s == "" {
		return None[Money]()
	}
	m, err := ParseMoney(s)
	if err != nil {
		*errs = append(*errs, err)
		return None[Money]()
	}
	return Some(m)
}
