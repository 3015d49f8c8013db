package coinfolio

import "strings"

// Holding is a quantity of one coin acquired at a recorded USD price.
//
// It is immutable: build it with NewHolding.
type Holding struct {
	symbol   string
	amount   Quantity
	buyPrice Money
}

// NewHolding returns a validated holding. The symbol is trimmed and upper-cased.
func NewHolding(symbol string, amount Quantity, buyPrice Money) (Holding, error) {
	h := Holding{
		symbol:   NormalizeSymbol(symbol),
		amount:   amount,
		buyPrice: buyPrice,
	}
	if err := h.Validate(); err != nil {
		return Holding{}, err
	}
	return h, nil
}

// NormalizeSymbol returns the canonical form of a ticker symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

func (h Holding) Symbol() string   { return h.symbol }
func (h Holding) Amount() Quantity { return h.amount }
func (h Holding) BuyPrice() Money  { return h.buyPrice }

// CostBasis returns amount × buy price.
func (h Holding) CostBasis() Money { return h.buyPrice.Mul(h.amount) }

// Validate returns an *InvalidHoldingError if h cannot be valued.
func (h Holding) Validate() error {
	switch {
	case h.symbol == "":
		return &InvalidHoldingError{Field: "symbol", Reason: "is empty"}
	case h.amount.IsNegative():
		return &InvalidHoldingError{Symbol: h.symbol, Field: "amount", Value: h.amount.String(), Reason: "is negative"}
	case h.buyPrice.IsNegative():
		return &InvalidHoldingError{Symbol: h.symbol, Field: "buy_price_usd", Value: h.buyPrice.Decimal().String(), Reason: "is negative"}
	}
	return nil
}
