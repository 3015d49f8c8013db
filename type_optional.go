package coinfolio

// Optional holds a value that may be absent, such as the current price of a
// coin the provider does not know.
//
// Absent values are never folded into zero inside a ValuedHolding. Aggregations
// use SumPresent, which skips them.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, present: true} }

// None returns an absent optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// IsPresent reports whether the value is set.
func (o Optional[T]) IsPresent() bool { return o.present }

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// mapOptional applies f to a present value and keeps absent values absent.
func mapOptional[T, U any](o Optional[T], f func(T) U) Optional[U] {
	v, ok := o.Get()
	if !ok {
		return None[U]()
	}
	return Some(f(v))
}

// SumPresent adds up the present values and skips the absent ones.
// The second result counts how many values contributed.
func SumPresent(values ...Optional[Money]) (Money, int) {
	var total Money
	n := 0
	for _, v := range values {
		if m, ok := v.Get(); ok {
			total = total.Add(m)
			n++
		}
	}
	return total, n
}
