package normalize

import "testing"

func TestParseAddressFull(t *testing.T) {
	addr := ParseAddress("Av. Paulista, 1000 - Bela Vista, São Paulo - SP, 01310-000")

	if addr.Street != "Av. Paulista" {
		t.Errorf("Street = %q, want %q", addr.Street, "Av. Paulista")
	}
	if addr.Number != "1000" {
		t.Errorf("Number = %q, want %q", addr.Number, "1000")
	}
	if addr.District != "Bela Vista" {
		t.Errorf("District = %q, want %q", addr.District, "Bela Vista")
	}
	if addr.PostalCode != "01310000" {
		t.Errorf("PostalCode = %q, want %q", addr.PostalCode, "01310000")
	}
	if addr.City != "São Paulo" {
		t.Errorf("City = %q, want %q", addr.City, "São Paulo")
	}
	if addr.State != "SP" {
		t.Errorf("State = %q, want %q", addr.State, "SP")
	}
}

func TestParseAddress(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Address
	}{
		{
			name:  "empty input",
			input: "",
			want:  Address{},
		},
		{
			name:  "street only",
			input: "Rua das Acácias",
			want:  Address{Street: "Rua das Acácias"},
		},
		{
			name:  "number marker without comma",
			input: "Rua A Nº 10 - Centro",
			want: Address{
				Street:   "Rua A Nº 10 - Centro",
				Number:   "10",
				District: "Centro",
			},
		},
		{
			name:  "unformatted postal code",
			input: "Rua Sete de Setembro, 55 - Centro, Curitiba - PR, 80010010",
			want: Address{
				Street:     "Rua Sete de Setembro",
				Number:     "55",
				District:   "Centro",
				City:       "Curitiba",
				State:      "PR",
				PostalCode: "80010010",
			},
		},
		{
			name:  "complement after number",
			input: "Av. Rio Branco, 500 Sala 301 - Centro, Rio de Janeiro - RJ",
			want: Address{
				Street:     "Av. Rio Branco",
				Number:     "500",
				Complement: "Sala 301",
				District:   "Centro",
				City:       "Rio de Janeiro",
				State:      "RJ",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAddress(tc.input)
			if got != tc.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}
