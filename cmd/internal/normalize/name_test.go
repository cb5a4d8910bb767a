package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Loja São João - Unidade #1", "loja sao joao unidade 1"},
		{"ÁGUA MINERAL", "agua mineral"},
		{"  Empório--Água  ", "emporio agua"},
		{"Depósito 2000", "deposito 2000"},
		{"(Mercado) [Central]!", "mercado central"},
		{"", ""},
		{"---", ""},
	}

	for _, tc := range cases {
		got := Name(tc.input)
		if got != tc.want {
			t.Errorf("Name(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"Loja São João - Unidade #1",
		"Águas Claras LTDA.",
		"already normalized text",
	}

	for _, input := range inputs {
		once := Name(input)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
