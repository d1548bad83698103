package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// DefaultCurrency is used when a tenant did not configure one
const DefaultCurrency = USD

// moneyPlaces is the number of decimal places money is rounded to
const moneyPlaces = 2

var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidRate      = errors.New("rate must be between 0 and 100")
)

// Money is an immutable non-negative monetary amount
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money rounded to cents
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount.Round(moneyPlaces), currency: currency}, nil
}

// NewMoneyFromString parses a decimal string
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// Zero returns a zero amount in the currency
func Zero(currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code
func (m Money) Currency() Currency { return m.currency }

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Add sums two amounts of the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// ApplyRate returns the share of m given by a percentage rate, rounded half up to cents
func (m Money) ApplyRate(rate Percentage) Money {
	share := m.amount.Mul(rate.value).Div(decimal.NewFromInt(100)).Round(moneyPlaces)
	return Money{amount: share, currency: m.currency}
}

// String renders the amount with two decimal places
func (m Money) String() string {
	return m.amount.StringFixed(moneyPlaces) + " " + string(m.currency)
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON encodes the amount as a fixed two-place string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.StringFixed(moneyPlaces), Currency: m.currency})
}

// UnmarshalJSON decodes {"amount":"12.50","currency":"USD"}
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoneyFromString(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Percentage is a rate between 0 and 100 inclusive
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage validates the range
func NewPercentage(value decimal.Decimal) (Percentage, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return Percentage{}, ErrInvalidRate
	}
	return Percentage{value: value}, nil
}

// MustPercentage panics on an invalid rate. For constants only.
func MustPercentage(value string) Percentage {
	p, err := NewPercentage(decimal.RequireFromString(value))
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal returns the raw value
func (p Percentage) Decimal() decimal.Decimal { return p.value }

func (p Percentage) String() string { return p.value.String() + "%" }
