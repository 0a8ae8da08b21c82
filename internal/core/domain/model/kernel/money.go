package kernel

import (
	"strings"

	"github.com/shopspring/decimal"
)

// salesTaxRate is the fixed 5% sales-tax rate applied to the quoted price.
var salesTaxRate = decimal.New(5, -2)

// SalesTaxRate returns the fixed sales-tax rate as a decimal (0.05).
func SalesTaxRate() decimal.Decimal {
	return salesTaxRate
}

// SalesTax computes the sales tax for a quoted price, rounded to cents.
func SalesTax(quoted decimal.Decimal) decimal.Decimal {
	return RoundMoney(quoted.Mul(salesTaxRate))
}

// CoerceAmount parses a monetary amount from free-form input. Any input that
// does not parse as a number (empty, whitespace, junk) coerces to zero.
// This is the engine-wide policy for monetary fields: an unparsable value
// degrades to zero and computation continues, it never fails or corrupts a
// total.
func CoerceAmount(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// RoundMoney rounds an amount to two decimal places, the precision every
// persisted and published GP figure carries.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// EstimateGP computes the creation-time gross-profit estimate:
//
//	quoted − yardCostEstimate − shippingEstimate − salesTax
//
// The estimates are the operator's initial figures, not yet backed by real
// yard legs.
func EstimateGP(quoted, yardCostEstimate, shippingEstimate decimal.Decimal) decimal.Decimal {
	return RoundMoney(quoted.Sub(yardCostEstimate).Sub(shippingEstimate).Sub(SalesTax(quoted)))
}
