// Package currencyutils provides common currency and decimal operations used throughout the application.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles currency symbols, thousands separators and parenthesized
// negatives, e.g. "HK$1,234.56", "-54.35", "(54.35)".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts an amount string to a form decimal.NewFromString
// accepts. Currency symbols and thousands separators are stripped and
// accounting style parentheses become a leading minus.
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)

	// Accounting notation: (54.35) means -54.35
	negative := false
	if strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")") {
		negative = true
		amountStr = amountStr[1 : len(amountStr)-1]
	}

	// Strip currency symbols, codes and whitespace
	re := regexp.MustCompile(`(?i)(HK\$|US\$|HKD|USD|[€$£¥]|\s)`)
	amountStr = re.ReplaceAllString(amountStr, "")

	// Thousands separators
	amountStr = strings.ReplaceAll(amountStr, ",", "")

	if negative && !strings.HasPrefix(amountStr, "-") {
		amountStr = "-" + amountStr
	}

	return amountStr
}

// FormatAmount formats a decimal amount for statement display with the
// given currency, e.g. FormatAmount(1234.5, "HKD") returns "HK$1,234.50".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := GroupThousands(amount)

	switch strings.ToUpper(currency) {
	case "HKD":
		return "HK$" + formatted
	case "USD":
		return "$" + formatted
	case "EUR":
		return "€" + formatted
	case "GBP":
		return "£" + formatted
	case "":
		return formatted
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}

// GroupThousands renders an amount with two decimal places and comma
// grouped thousands, e.g. "1,234.56" or "-2,636.78".
func GroupThousands(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + grouped.String() + "." + parts[1]
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
