package spreadsheet

import "testing"

func TestMapRows(t *testing.T) {
	cells := [][]string{
		{"MARCA", "LOJA", "VALOR UN.", ""},
		{"Aquarius", "Loja Centro", "12,50"},
		{"", "", ""},
		{"Aquarius", "Loja Norte", "13,00", "extra cell"},
		{"  ", "   "},
	}

	rows := MapRows(cells)
	if len(rows) != 2 {
		t.Fatalf("MapRows returned %d rows, want 2", len(rows))
	}

	if got := rows[0].Get("LOJA"); got != "Loja Centro" {
		t.Errorf("rows[0][LOJA] = %q, want %q", got, "Loja Centro")
	}
	if got := rows[0].Get("VALOR UN."); got != "12,50" {
		t.Errorf("rows[0][VALOR UN.] = %q, want %q", got, "12,50")
	}
	if got := rows[1].Get("MARCA"); got != "Aquarius" {
		t.Errorf("rows[1][MARCA] = %q, want %q", got, "Aquarius")
	}

	// Cells past the header width have no key and must be dropped.
	if _, ok := rows[1][""]; ok {
		t.Error("row kept a cell under an empty header")
	}
}

func TestMapRowsEmpty(t *testing.T) {
	if rows := MapRows(nil); rows != nil {
		t.Errorf("MapRows(nil) = %v, want nil", rows)
	}
	if rows := MapRows([][]string{{"A", "B"}}); len(rows) != 0 {
		t.Errorf("header-only grid produced %d rows, want 0", len(rows))
	}
}

func TestRowGetTrims(t *testing.T) {
	row := Row{"LOJA": "  Loja Sul  "}
	if got := row.Get("LOJA"); got != "Loja Sul" {
		t.Errorf("Get = %q, want %q", got, "Loja Sul")
	}
	if got := row.Get("MISSING"); got != "" {
		t.Errorf("Get of missing column = %q, want empty", got)
	}
}

func TestRowFirst(t *testing.T) {
	row := Row{"VALOR 20L": "", "20L": "14,00"}

	if got := row.First("VALOR 20L", "20L"); got != "14,00" {
		t.Errorf("First = %q, want %q", got, "14,00")
	}
	if got := row.First("VALOR 10L", "10L"); got != "" {
		t.Errorf("First of absent columns = %q, want empty", got)
	}
}
