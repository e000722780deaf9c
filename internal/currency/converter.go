package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ReferenceCurrency is the currency all amounts are normalized into.
const ReferenceCurrency = "USD"

// UnknownPolicy decides what Convert does with a currency code that is not
// in the rate table.
type UnknownPolicy string

const (
	// PolicyPassthrough applies rate 1.0, keeping ingestion available for
	// unsupported currencies at the cost of mislabeling the converted amount.
	PolicyPassthrough UnknownPolicy = "passthrough"
	// PolicyReject fails the conversion.
	PolicyReject UnknownPolicy = "reject"
	// PolicyZero converts to zero.
	PolicyZero UnknownPolicy = "zero"
)

// ParsePolicy parses an unknown-currency policy, defaulting to passthrough.
func ParsePolicy(s string) UnknownPolicy {
	switch UnknownPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyReject:
		return PolicyReject
	case PolicyZero:
		return PolicyZero
	default:
		return PolicyPassthrough
	}
}

// defaultRates is the static conversion table. The reference currency has
// rate 1.0. TODO: source rates from configuration once more currencies are
// needed.
var defaultRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"ZAR": decimal.RequireFromString("0.054"),
	"EUR": decimal.RequireFromString("1.08"),
}

// Converter converts amounts into the reference currency using a fixed rate
// table. Pure: no side effects, no I/O.
type Converter struct {
	rates  map[string]decimal.Decimal
	policy UnknownPolicy
}

// NewConverter creates a Converter with the default rate table.
func NewConverter(policy UnknownPolicy) *Converter {
	return &Converter{
		rates:  defaultRates,
		policy: policy,
	}
}

// Convert returns amount expressed in the reference currency. Currency codes
// are matched case-insensitively. Unknown codes are handled per the
// configured policy.
func (c *Converter) Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		switch c.policy {
		case PolicyReject:
			return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, code)
		case PolicyZero:
			return decimal.Zero, nil
		default:
			rate = decimal.NewFromInt(1)
		}
	}

	return amount.Mul(rate), nil
}
