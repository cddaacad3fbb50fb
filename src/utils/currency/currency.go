package currency

import (
	"errors"
	"math/big"
	"strings"
	"time"
)

// Base-unit decimals of the platform currency
const Decimals = 18

const secondsPerDay = 86400

var (
	ErrMalformedAmount = errors.New("malformed decimal amount")
	ErrTooManyDecimals = errors.New("too many decimal places")
)

// ParseUnits converts a human decimal amount into integer base units.
// Pure integer arithmetic, amounts never touch a float.
func ParseUnits(amount string, decimals int) (out *big.Int, err error) {
	amount = strings.TrimSpace(amount)
	// No signs: big.Int.SetString would accept a leading "+"
	if amount == "" || amount == "." || strings.HasPrefix(amount, "-") || strings.HasPrefix(amount, "+") {
		return nil, ErrMalformedAmount
	}

	whole, fraction, _ := strings.Cut(amount, ".")
	if strings.Contains(fraction, ".") {
		return nil, ErrMalformedAmount
	}
	if len(fraction) > decimals {
		return nil, ErrTooManyDecimals
	}
	if whole == "" {
		whole = "0"
	}

	// Right-pad the fraction up to the full precision
	fraction += strings.Repeat("0", decimals-len(fraction))

	out, ok := new(big.Int).SetString(whole+fraction, 10)
	if !ok {
		return nil, ErrMalformedAmount
	}
	return out, nil
}

// FormatUnits is the inverse of ParseUnits, trailing fraction zeros are trimmed
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	s := amount.String()
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	whole := s[:len(s)-decimals]
	fraction := strings.TrimRight(s[len(s)-decimals:], "0")
	if fraction == "" {
		return whole
	}
	return whole + "." + fraction
}

// DeadlineFromDuration computes the campaign deadline timestamp
func DeadlineFromDuration(now time.Time, durationDays int64) int64 {
	return now.Unix() + durationDays*secondsPerDay
}
