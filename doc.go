// Package coinfolio values a cryptocurrency portfolio at current spot prices.
//
// A portfolio is a list of holdings: a ticker symbol, an amount of coins and
// the USD price paid for them. Valuing it takes three steps:
//   - Symbol resolution: a [Resolver] maps each ticker (e.g. "ETH") to the
//     price provider's own identifier (e.g. "ethereum"). Unknown tickers are
//     not an error, they are valued without a price.
//   - Price fetching: a [PriceSource] retrieves the USD price of every
//     identifier in a single call. A failed call aborts the valuation.
//   - Valuation: [Value] computes, per holding and in input order, cost basis,
//     current value and return on investment, then the portfolio totals.
//
// [Evaluate] chains the three steps. The result can be exported as a CSV
// snapshot with [WriteSnapshot].
//
// Amounts are exact decimals. Values that depend on a price are [Optional]
// and stay absent when the price is unknown.
package coinfolio
