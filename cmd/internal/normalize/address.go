package normalize

import (
	"regexp"
	"strings"
)

// Address holds the fields extracted from a free-text Brazilian address line.
// Every field is optional; empty means the heuristic found nothing.
type Address struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
}

var (
	cepRegex        = regexp.MustCompile(`(\d{5})-?(\d{3})`)
	numberRegex     = regexp.MustCompile(`,\s*(\d{1,6})\b`)
	numberMarkRegex = regexp.MustCompile(`(?i)\bN[º°]?\s*(\d{1,6})\b`)
	complementRegex = regexp.MustCompile(`(?i)\b(ap|apt|apto|sala|loja|bloco|bl|cj|conj)\.?\s+([0-9A-Za-z/-]+)`)
	cityStateRegex  = regexp.MustCompile(`,\s*([^,\-]+?)\s*-\s*([A-Za-z]{2})\s*(?:,|$)`)
)

// ParseAddress extracts structured fields from one address line following the
// common Brazilian convention "<street>, <number> - <district>, <city> - <UF>,
// <CEP>". Real data is highly irregular, so this is best-effort: the function
// never fails, it just leaves fields empty. City and state in particular are
// unreliable here; callers that know them from a dedicated column must prefer
// that column and use this output only as a fallback.
func ParseAddress(raw string) Address {
	var addr Address

	line := strings.TrimSpace(raw)
	if line == "" {
		return addr
	}

	if m := cepRegex.FindStringSubmatch(line); m != nil {
		addr.PostalCode = m[1] + m[2]
	}

	if m := numberRegex.FindStringSubmatch(line); m != nil {
		addr.Number = m[1]
	} else if m := numberMarkRegex.FindStringSubmatch(line); m != nil {
		addr.Number = m[1]
	}

	// The matched label is kept verbatim ("Apto 12", "sala 3B").
	if m := complementRegex.FindStringSubmatch(line); m != nil {
		addr.Complement = m[1] + " " + m[2]
	}

	if idx := strings.Index(line, " - "); idx >= 0 {
		rest := line[idx+3:]
		if comma := strings.Index(rest, ","); comma >= 0 {
			rest = rest[:comma]
		}
		addr.District = strings.TrimSpace(rest)
	}

	if comma := strings.Index(line, ","); comma >= 0 {
		addr.Street = strings.TrimSpace(line[:comma])
	} else {
		addr.Street = line
	}

	if m := cityStateRegex.FindStringSubmatch(line); m != nil {
		addr.City = strings.TrimSpace(m[1])
		addr.State = strings.ToUpper(m[2])
	}

	return addr
}
