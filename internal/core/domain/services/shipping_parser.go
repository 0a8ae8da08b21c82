package services

import (
	"regexp"

	"partsdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// shippingDetailPattern matches the legacy free-text shipping encoding:
// "Own shipping: 42.50" or "Yard shipping:20", case-insensitive, decimals
// and surrounding whitespace tolerated. Only the explicit labels are
// accepted; a bare "label:number" split admits junk.
var shippingDetailPattern = regexp.MustCompile(`(?i)(own shipping|yard shipping):\s*([0-9]+(?:\.[0-9]+)?)`)

// ParseShippingDetail extracts the shipping charge from a legacy
// shipping-detail string. Absent, malformed, or non-matching input degrades
// to zero; by policy this function never fails. The input is not mutated.
func ParseShippingDetail(detail string) decimal.Decimal {
	match := shippingDetailPattern.FindStringSubmatch(detail)
	if match == nil {
		return decimal.Zero
	}
	return kernel.CoerceAmount(match[2])
}
