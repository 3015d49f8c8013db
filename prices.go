package coinfolio

import "context"

// Quotes maps provider identifiers to their current USD price.
type Quotes map[ProviderID]Money

// Price returns the quote for id, if any.
func (q Quotes) Price(id ProviderID) (Money, bool) {
	p, ok := q[id]
	return p, ok
}

// PriceSource retrieves current USD prices.
//
// Fetch is called once per valuation with every identifier at once.
// Identifiers the source does not know are absent from the result, this is
// not an error. Failures are reported as *PriceFetchError.
type PriceSource interface {
	Fetch(ctx context.Context, ids []ProviderID) (Quotes, error)
}

// FixedPrices is a PriceSource backed by a static map, for tests and offline runs.
type FixedPrices map[ProviderID]Money

// Fetch implements PriceSource.
func (f FixedPrices) Fetch(ctx context.Context, ids []ProviderID) (Quotes, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PriceFetchError{Err: err}
	}
	res := make(Quotes, len(ids))
	for _, id := range ids {
		if p, ok := f[id]; ok {
			res[id] = p
		}
	}
	return res, nil
}
