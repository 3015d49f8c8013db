package coinfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Holdings file columns.
const (
	ColumnSymbol   = "symbol"
	ColumnAmount   = "amount"
	ColumnBuyPrice = "buy_price_usd"
)

// LoadHoldings reads the holdings CSV file at path.
//
// See DecodeHoldings for the format.
func LoadHoldings(path string) ([]Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	holdings, err := DecodeHoldings(f)
	var lerr *LoadError
	if errors.As(err, &lerr) {
		lerr.Path = path
	}
	return holdings, err
}

// DecodeHoldings reads holdings in CSV format from r.
//
// The first record is a header that must name the columns "symbol", "amount"
// and "buy_price_usd", in any order and any case. Other columns are ignored.
// Symbols are trimmed and upper-cased. Holdings are returned in file order.
//
// Structural problems are reported as *LoadError, bad values as
// *InvalidHoldingError.
func DecodeHoldings(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: errors.New("empty file, missing header")}
	}
	if err != nil {
		return nil, &LoadError{Line: csvLine(err), Err: err}
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}

	var holdings []Holding
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Line: csvLine(err), Err: err}
		}
		line, _ := cr.FieldPos(0)
		h, err := decodeHolding(record, cols)
		if err != nil {
			var herr *InvalidHoldingError
			if errors.As(err, &herr) {
				herr.Line = line
			}
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

type columns struct{ symbol, amount, buyPrice int }

func columnIndex(header []string) (columns, error) {
	c := columns{-1, -1, -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnSymbol:
			c.symbol = i
		case ColumnAmount:
			c.amount = i
		case ColumnBuyPrice:
			c.buyPrice = i
		}
	}
	var missing []string
	if c.symbol < 0 {
		missing = append(missing, ColumnSymbol)
	}
	if c.amount < 0 {
		missing = append(missing, ColumnAmount)
	}
	if c.buyPrice < 0 {
		missing = append(missing, ColumnBuyPrice)
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("missing column(s) %s", strings.Join(missing, ", "))
	}
	return c, nil
}

func decodeHolding(record []string, cols columns) (Holding, error) {
	symbol := NormalizeSymbol(record[cols.symbol])
	rawAmount := strings.TrimSpace(record[cols.amount])
	rawPrice := strings.TrimSpace(record[cols.buyPrice])

	amount, err := ParseQuantity(rawAmount)
	if err != nil {
		return Holding{}, &InvalidHoldingError{Symbol: symbol, Field: ColumnAmount, Value: rawAmount, Reason: "is not a number", Err: err}
	}
	price, err := ParseMoney(rawPrice)
	if err != nil {
		return Holding{}, &InvalidHoldingError{Symbol: symbol, Field: ColumnBuyPrice, Value: rawPrice, Reason: "is not a number", Err: err}
	}
	return NewHolding(symbol, amount, price)
}

// csvLine extracts the line of a csv.ParseError, if any.
func csvLine(err error) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	return 0
}
