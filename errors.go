package coinfolio

import (
	"fmt"
	"net/http"
)

// LoadError reports a holdings file that cannot be read: missing file,
// malformed CSV or missing columns. It is raised before any network call.
type LoadError struct {
	Path string // file name, empty when reading from a stream
	Line int    // 1-based CSV line, 0 when not related to a line
	Err  error
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = "holdings"
	}
	if e.Line > 0 {
		return fmt.Sprintf("cannot load %s:%d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %v", src, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidHoldingError reports a holding whose amount or buy price is
// negative or not a number, or whose symbol is empty.
type InvalidHoldingError struct {
	Line   int // 1-based CSV line, 0 when the holding was not loaded from a file
	Symbol string
	Field  string // "symbol", "amount" or "buy_price_usd"
	Value  string
	Reason string
	Err    error // parse error, if any
}

func (e *InvalidHoldingError) Error() string {
	at := ""
	if e.Line > 0 {
		at = fmt.Sprintf("line %d: ", e.Line)
	}
	return fmt.Sprintf("%sinvalid holding %q: %s %q %s", at, e.Symbol, e.Field, e.Value, e.Reason)
}

func (e *InvalidHoldingError) Unwrap() error { return e.Err }

// PriceFetchError reports a failed price request: transport error, timeout,
// non-success status or an unreadable body. It aborts the whole valuation.
type PriceFetchError struct {
	Status int // HTTP status code, 0 if no response was received
	Err    error
}

func (e *PriceFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("cannot fetch prices: %d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("cannot fetch prices: %v", e.Err)
}

func (e *PriceFetchError) Unwrap() error { return e.Err }
