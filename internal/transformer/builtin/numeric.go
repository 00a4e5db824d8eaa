package builtin

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotNumber is returned when a cell is not a number in the accepted grammar.
var ErrNotNumber = errors.New("not a number")

// ParseReal parses s as a decimal real number. Surrounding whitespace is
// ignored, single underscores between digits are allowed, and inf, infinity
// and nan are accepted in any case with an optional sign. Hexadecimal forms
// are rejected. A value too large to represent yields ±Inf, not an error.
func ParseReal(s string) (float64, error) {
	t := strings.TrimSpace(s)
	body := strings.TrimLeft(t, "+-")
	if len(t)-len(body) > 1 || body == "" {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	lb := strings.ToLower(body)
	if strings.HasPrefix(lb, "0x") {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	if lb == "nan" {
		return math.NaN(), nil
	}

	t, ok := stripDigitUnderscores(t)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return f, nil
}

// ParseInteger parses s as a base-10 integer of arbitrary size. Surrounding
// whitespace is ignored and single underscores between digits are allowed.
// Fractions and exponents ("5.0", "1e3") are rejected.
func ParseInteger(s string) (*big.Int, error) {
	t, ok := stripDigitUnderscores(strings.TrimSpace(s))
	if !ok || t == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	n, ok := new(big.Int).SetString(t, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return n, nil
}

// stripDigitUnderscores removes underscores that sit between two ASCII
// digits. Any other underscore makes the input invalid.
func stripDigitUnderscores(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
