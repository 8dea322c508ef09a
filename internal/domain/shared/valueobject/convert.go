package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidRateError is returned when a conversion is attempted with a
// non-positive exchange rate.
type InvalidRateError struct {
	From Currency
	To   Currency
	Rate decimal.Decimal
}

// Error implements the error interface
func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid exchange rate %s for %s->%s: rate must be greater than zero", e.Rate, e.From, e.To)
}

// Convert converts an amount between currencies using the supplied rate.
// Rates are always expressed as "1 unit of from-currency = rate units of
// to-currency", so conversion is a single multiplication. No rounding is
// applied here; callers round at presentation or storage boundaries.
func Convert(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &InvalidRateError{From: from, To: to, Rate: rate}
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(rate), nil
}

// ConvertMoney converts a Money value into the target currency
func ConvertMoney(m Money, to Currency, rate decimal.Decimal) (Money, error) {
	amount, err := Convert(m.Amount(), m.Currency(), to, rate)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: to}, nil
}
