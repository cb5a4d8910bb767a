package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalDotRegex = regexp.MustCompile(`^-?\d+\.\d{2}$`)

// BRLToCents parses a Brazilian-formatted currency string ("R$ 1.234,56",
// "12,50", "1200") into integer cents. The second return is false when the
// input is empty or not numeric after cleanup.
//
// When a ',' is present it is the decimal separator and every '.' is a
// thousands separator. Without a comma, a single trailing ".NN" is read as
// the decimal point ("12.50" is R$ 12,50), while any other dot pattern is
// grouping — so "12.5" parses as 125 reais. The import files have always
// relied on this; changing it would silently rewrite stored prices.
func BRLToCents(value string) (int64, bool) {
	var b strings.Builder
	for _, ch := range value {
		switch {
		case ch >= '0' && ch <= '9', ch == ',', ch == '.', ch == '-':
			b.WriteRune(ch)
		}
	}

	s := b.String()
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if !decimalDotRegex.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}

// FloatToCents converts a plain numeric amount in reais to integer cents.
// NaN and infinities are rejected.
func FloatToCents(value float64) (int64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return int64(math.Round(value * 100)), true
}

// CentsToBRL formats integer cents as a BRL string, e.g. 123456 -> "R$ 1.234,56".
// It is the numeric inverse of BRLToCents, not a string round-trip.
func CentsToBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100
	return "R$ " + sign + groupThousands(whole) + "," + pad2(frac)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "." + strings.Join(parts, ".")
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
