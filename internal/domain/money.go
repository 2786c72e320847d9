package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value in sen (hundredths of a ringgit). Keeping
// amounts integral makes the plan-total-equals-bid check an exact
// comparison instead of a float one.
type Amount int64

// AmountFromRM converts a ringgit value to sen, rounding half away
// from zero.
func AmountFromRM(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// RM returns the value in ringgit.
func (a Amount) RM() float64 {
	return float64(a) / 100
}

// String renders the amount as "RM 1,250.00".
func (a Amount) String() string {
	neg := a < 0
	if neg {
		a = -a
	}
	whole := int64(a) / 100
	cents := int64(a) % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sRM %s.%02d", sign, b.String(), cents)
}

// MarshalJSON writes the amount as a ringgit number, the shape the
// backend expects.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.RM())
}

// UnmarshalJSON accepts a ringgit number or a numeric string; older
// records serialize amounts both ways.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", s, err)
	}
	*a = AmountFromRM(v)
	return nil
}

// ParseAmount parses user input such as "1000", "1,000.50" or
// "RM 250" into sen.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToUpper(s), "RM")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount must not be negative")
	}
	return AmountFromRM(v), nil
}
