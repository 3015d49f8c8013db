package coinfolio

import (
	"maps"
	"slices"
)

// ProviderID is the price provider's identifier for a coin (e.g. "ethereum"),
// distinct from the ticker symbol users write in their holdings.
type ProviderID string

// Resolver maps ticker symbols to provider identifiers.
//
// Resolve returns false for an unknown symbol. That is not an error: the
// holding is simply valued without a price.
type Resolver interface {
	Resolve(symbol string) (ProviderID, bool)
}

// SymbolMap is a static Resolver. Keys are normalized symbols.
type SymbolMap map[string]ProviderID

// DefaultSymbols returns a fresh copy of the built-in symbol table.
func DefaultSymbols() SymbolMap {
	return SymbolMap{
		"BTC":   "bitcoin",
		"ETH":   "ethereum",
		"SOL":   "solana",
		"BNB":   "binancecoin",
		"PENGU": "pengu",
		"LINEA": "linea",
		"USDC":  "usd-coin",
		"USDT":  "tether",
	}
}

// Resolve implements Resolver. The lookup is case-insensitive and ignores
// surrounding spaces.
func (m SymbolMap) Resolve(symbol string) (ProviderID, bool) {
	id, ok := m[NormalizeSymbol(symbol)]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// With returns a copy of m extended with entries. Entries win over m, and an
// empty id removes the symbol.
func (m SymbolMap) With(entries map[string]string) SymbolMap {
	res := make(SymbolMap, len(m)+len(entries))
	for s, id := range m {
		res[NormalizeSymbol(s)] = id
	}
	for s, id := range entries {
		if id == "" {
			delete(res, NormalizeSymbol(s))
			continue
		}
		res[NormalizeSymbol(s)] = ProviderID(id)
	}
	return res
}

// Symbols returns the known symbols in alphabetical order.
func (m SymbolMap) Symbols() []string {
	return slices.Sorted(maps.Keys(m))
}

// ProviderIDs returns the distinct, sorted provider identifiers of the
// holdings r can resolve. Unknown symbols are skipped.
func ProviderIDs(holdings []Holding, r Resolver) []ProviderID {
	seen := make(map[ProviderID]bool)
	for _, h := range holdings {
		if id, ok := r.Resolve(h.Symbol()); ok {
			seen[id] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
