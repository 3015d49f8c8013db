package coinfolio

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{usd(1234.567), "$1,234.57"},
		{usd(0.004), "$0.00"},
		{usd(-12.5), "-$12.50"},
		{M(0), "$0.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Money(%v).String() = %q, want %q", tt.m.Decimal(), got, tt.want)
		}
	}
}

func TestMoney_StringFixed(t *testing.T) {
	if got := usd(0.123456).StringFixed(4); got != "0.1235" {
		t.Errorf("StringFixed(4) = %q, want 0.1235", got)
	}
	if got := M(3000).StringFixed(4); got != "3000.0000" {
		t.Errorf("StringFixed(4) = %q, want 3000.0000", got)
	}
}

func TestPercent_SignedString(t *testing.T) {
	tests := []struct {
		p    Percent
		want string
	}{
		{P(12.345), "+12.35%"},
		{P(-3), "-3.00%"},
		{P(0), "-"},
		{P(0.001), "-"},
	}
	for _, tt := range tests {
		if got := tt.p.SignedString(); got != tt.want {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", tt.p.Decimal(), got, tt.want)
		}
	}
}

func TestSumPresent(t *testing.T) {
	got, n := SumPresent(Some(usd(1)), None[Money](), Some(usd(2.5)))
	if !got.Equal(usd(3.5)) || n != 2 {
		t.Errorf("SumPresent() = %v, %d, want 3.5, 2", got.Decimal(), n)
	}
	got, n = SumPresent()
	if !got.IsZero() || n != 0 {
		t.Errorf("SumPresent() = %v, %d, want 0, 0", got.Decimal(), n)
	}
}
