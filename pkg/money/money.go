package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SubunitFactor is the number of subunits in one display unit.
const SubunitFactor = 100

var (
	ErrInvalidAmount  = errors.New("amount must be a valid decimal number")
	ErrNegativeAmount = errors.New("amount must be non-negative")
	ErrTooPrecise     = errors.New("amount must have at most 2 decimal places")
)

// ToSubunits converts a decimal amount string to integer subunits.
//
// Parsing works on the decimal text directly, never through a binary float,
// so values like "10.10" always map to exactly 1010. Amounts with more than
// two fractional digits are rejected rather than rounded.
func ToSubunits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}
	s = strings.TrimPrefix(s, "+")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}

	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	if !isASCIIDigits(intPart) || !isASCIIDigits(fracPart) {
		return 0, ErrInvalidAmount
	}

	if len(fracPart) > 2 {
		return 0, ErrTooPrecise
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var fracSubunits int64
	if len(fracPart) > 0 {
		fracSubunits = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracSubunits += int64(fracPart[1] - '0')
		}
	}

	const maxSubunits = 1<<63 - 1
	if units > (maxSubunits-fracSubunits)/SubunitFactor {
		return 0, ErrInvalidAmount
	}

	return units*SubunitFactor + fracSubunits, nil
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToDecimal is the exact inverse of ToSubunits: it renders subunits as a
// decimal string with exactly two fractional digits.
func ToDecimal(subunits int64) string {
	return fmt.Sprintf("%d.%02d", subunits/SubunitFactor, subunits%SubunitFactor)
}
