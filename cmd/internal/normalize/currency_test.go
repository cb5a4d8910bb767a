package normalize

import (
	"math"
	"testing"
)

func TestBRLToCents(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"R$ 12,50", 1250, true},
		{"12,50", 1250, true},
		{"1.234,56", 123456, true},
		{"R$ 1.234,56", 123456, true},
		{"1200", 120000, true},
		{"0,99", 99, true},
		{"-5,00", -500, true},

		// Without a comma, a trailing ".NN" is the decimal point; any
		// other dot pattern is a thousands separator.
		{"12.50", 1250, true},
		{"12.5", 12500, true},
		{"1.234", 123400, true},
		{"1.234.567", 123456700, true},

		{"", 0, false},
		{"abc", 0, false},
		{"R$ ", 0, false},
		{"grátis", 0, false},
	}

	for _, tc := range cases {
		got, ok := BRLToCents(tc.input)
		if ok != tc.ok {
			t.Errorf("BRLToCents(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("BRLToCents(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFloatToCents(t *testing.T) {
	if got, ok := FloatToCents(12.5); !ok || got != 1250 {
		t.Errorf("FloatToCents(12.5) = %d, %v, want 1250, true", got, ok)
	}
	if got, ok := FloatToCents(0.004); !ok || got != 0 {
		t.Errorf("FloatToCents(0.004) = %d, %v, want 0, true", got, ok)
	}
	if _, ok := FloatToCents(math.NaN()); ok {
		t.Error("FloatToCents(NaN) should not be ok")
	}
	if _, ok := FloatToCents(math.Inf(1)); ok {
		t.Error("FloatToCents(+Inf) should not be ok")
	}
}

func TestCentsToBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{123456, "R$ 1.234,56"},
		{1250, "R$ 12,50"},
		{5, "R$ 0,05"},
		{0, "R$ 0,00"},
		{-1250, "R$ -12,50"},
		{100000000, "R$ 1.000.000,00"},
	}

	for _, tc := range cases {
		if got := CentsToBRL(tc.cents); got != tc.want {
			t.Errorf("CentsToBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
