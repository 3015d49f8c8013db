package coinfolio

import "testing"

// usd is a helper for test to create money from const
func usd(v float64) Money { return M(v) }

// mustHolding is a helper for test to create a valid holding.
func mustHolding(t *testing.T, symbol string, amount, buy float64) Holding {
	t.Helper()
	h, err := NewHolding(symbol, Q(amount), M(buy))
	if err != nil {
		t.Fatalf("NewHolding(%q, %v, %v) error = %v", symbol, amount, buy, err)
	}
	return h
}

// assertMoney checks that an optional money is present and equal to want.
func assertMoney(t *testing.T, name string, got Optional[Money], want Money) {
	t.Helper()
	v, ok := got.Get()
	if !ok {
		t.Errorf("%s is absent, want %v", name, want.Decimal())
		return
	}
	if !v.Equal(want) {
		t.Errorf("%s = %v, want %v", name, v.Decimal(), want.Decimal())
	}
}

// assertAbsent checks that an optional is absent.
func assertAbsent[T any](t *testing.T, name string, got Optional[T]) {
	t.Helper()
	if v, ok := got.Get(); ok {
		t.Errorf("%s = %v, want absent", name, v)
	}
}
