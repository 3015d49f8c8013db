package coinfolio

import (
	"context"
	"errors"
	"fmt"
)

// ValuedHolding is a Holding together with its valuation at current prices.
//
// Fields other than CostBasis are absent when the coin has no current price.
type ValuedHolding struct {
	Holding
	PriceNow  Optional[Money]
	CostBasis Money
	ValueNow  Optional[Money]
	ROIAbs    Optional[Money]
	ROIPct    Optional[Percent] // also absent when CostBasis is zero
}

// Totals aggregates a valuation.
type Totals struct {
	CostBasis Money
	ValueNow  Money   // sum of present values, unpriced holdings count as $0
	ROIAbs    Money   // sum of present ROIs
	ROIPct    Percent // 0 when CostBasis is zero
	Priced    int     // number of holdings with a current price
}

// Valuation is the result of valuing a portfolio.
type Valuation struct {
	Holdings []ValuedHolding // in input order
	Totals   Totals
}

// Value computes the valuation of holdings at quotes.
//
// Holdings are valued in input order. A holding whose symbol r cannot resolve,
// or whose identifier has no quote, is kept with an absent price. Value only
// fails on an invalid holding (*InvalidHoldingError).
func Value(holdings []Holding, quotes Quotes, r Resolver) (*Valuation, error) {
	v := &Valuation{Holdings: make([]ValuedHolding, 0, len(holdings))}
	for i, h := range holdings {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("holding #%d: %w", i+1, err)
		}
		v.Holdings = append(v.Holdings, valueHolding(h, quotes, r))
	}
	v.Totals = total(v.Holdings)
	return v, nil
}

func valueHolding(h Holding, quotes Quotes, r Resolver) ValuedHolding {
	price := None[Money]()
	if id, ok := r.Resolve(h.Symbol()); ok {
		if p, ok := quotes.Price(id); ok {
			price = Some(p)
		}
	}

	vh := ValuedHolding{
		Holding:   h,
		PriceNow:  price,
		CostBasis: h.CostBasis(),
	}
	vh.ValueNow = mapOptional(price, func(p Money) Money { return p.Mul(h.Amount()) })
	vh.ROIAbs = mapOptional(vh.ValueNow, func(v Money) Money { return v.Sub(vh.CostBasis) })
	vh.ROIPct = None[Percent]()
	if roi, ok := vh.ROIAbs.Get(); ok && vh.CostBasis.IsPositive() {
		vh.ROIPct = Some(percentOf(roi.Ratio(vh.CostBasis)))
	}
	return vh
}

func total(holdings []ValuedHolding) Totals {
	var t Totals
	values := make([]Optional[Money], 0, len(holdings))
	rois := make([]Optional[Money], 0, len(holdings))
	for _, h := range holdings {
		t.CostBasis = t.CostBasis.Add(h.CostBasis)
		values = append(values, h.ValueNow)
		rois = append(rois, h.ROIAbs)
	}
	t.ValueNow, t.Priced = SumPresent(values...)
	t.ROIAbs, _ = SumPresent(rois...)
	if t.CostBasis.IsPositive() {
		t.ROIPct = percentOf(t.ValueNow.Ratio(t.CostBasis).Sub(one))
	}
	return t
}

// Evaluate fetches the prices the holdings need from src, in a single call,
// and values them.
//
// A fetch failure aborts the valuation: no stale or partial prices are used.
func Evaluate(ctx context.Context, holdings []Holding, src PriceSource, r Resolver) (*Valuation, error) {
	quotes := Quotes{}
	if ids := ProviderIDs(holdings, r); len(ids) > 0 {
		var err error
		quotes, err = src.Fetch(ctx, ids)
		var ferr *PriceFetchError
		if err != nil && !errors.As(err, &ferr) {
			err = &PriceFetchError{Err: err}
		}
		if err != nil {
			return nil, err
		}
	}
	return Value(holdings, quotes, r)
}

// Slice is a share of the portfolio's current value.
type Slice struct {
	Symbol string
	Value  Money
	Share  Percent
}

// Allocation returns the portfolio split by current value, in holding order.
// Only holdings with a present, positive value are included.
func (v *Valuation) Allocation() []Slice {
	var res []Slice
	var sum Money
	for _, h := range v.Holdings {
		if val, ok := h.ValueNow.Get(); ok && val.IsPositive() {
			res = append(res, Slice{Symbol: h.Symbol(), Value: val})
			sum = sum.Add(val)
		}
	}
	for i := range res {
		res[i].Share = percentOf(res[i].Value.Ratio(sum))
	}
	return res
}
