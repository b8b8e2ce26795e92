package connectors

import (
	"context"
	"strings"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/shopspring/decimal"
)

// Gateway is the slice of the gateway client the connectors depend on.
type Gateway interface {
	Do(ctx context.Context, method, path string, opts gateway.RequestOptions, body, out any) error
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// formatDOBMMYY renders a 2006-01-02 date of birth the way the account
// detail endpoint wants it: month and two-digit year.
func formatDOBMMYY(dob string) string {
	t, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return ""
	}
	return t.Format("0106")
}

// nationalSignificantDigits strips formatting and a leading country code
// from a North American phone number.
func nationalSignificantDigits(phone string) string {
	digits := domain.DigitsOnly(phone)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return digits[1:]
	}
	return digits
}
