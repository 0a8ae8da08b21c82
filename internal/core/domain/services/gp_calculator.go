package services

import (
	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// GPCalculator is the domain service that aggregates an order's commercial
// fields and its yard ledger into gross-profit figures.
//
// Two calculations share the same cost-summation core but differ in timing:
//
//   - Estimated GP is computed once at order creation from the operator's
//     initial estimates (no real yard legs yet)
//   - Current GP is recomputed on every yard-ledger or refund mutation from
//     the full ledger snapshot; it is never persisted as an independently
//     editable value
//
// Both calculations are deterministic and side-effect free.
type GPCalculator struct{}

// NewGPCalculator creates a GPCalculator.
func NewGPCalculator() GPCalculator {
	return GPCalculator{}
}

// EstimatedGP computes the creation-time estimate:
//
//	quoted − yardCostEstimate − shippingEstimate − salesTax
//
// with salesTax fixed at 5% of the quoted price.
func (GPCalculator) EstimatedGP(quoted, yardCostEstimate, shippingEstimate decimal.Decimal) decimal.Decimal {
	return kernel.EstimateGP(quoted, yardCostEstimate, shippingEstimate)
}

// CurrentGP recomputes the live gross profit from an order snapshot:
//
//	(quoted − salesTax − customerRefundedAmount) − totalYardSpend
func (c GPCalculator) CurrentGP(o *order.Order) decimal.Decimal {
	revenue := o.QuotedPrice().Sub(o.SalesTax()).Sub(o.RefundAmount())
	return kernel.RoundMoney(revenue.Sub(c.TotalYardSpend(o.YardEntries())))
}

// TotalYardSpend sums the spend contribution of every yard leg. A
// PO-cancelled leg whose card was never charged contributes zero regardless
// of its cost fields.
func (c GPCalculator) TotalYardSpend(entries []order.YardEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(c.YardSpend(&entries[i]))
	}
	return total
}

// YardSpend computes one leg's spend contribution:
//
//	partPrice + shipping + others + custShippingReturn +
//	custShippingReplacement + yardShippingReplacement − refundedAmount
//
// The shipping value comes from the structured cost when one is recorded,
// otherwise from parsing the legacy shipping-detail string (zero when that
// does not match).
func (GPCalculator) YardSpend(entry *order.YardEntry) decimal.Decimal {
	if !entry.CountsTowardSpend() {
		return decimal.Zero
	}

	shipping := entry.ShippingCost()
	if entry.ShippingPayer() == order.ShippingUnspecified {
		shipping = ParseShippingDetail(entry.ShippingDetail())
	}

	costs := entry.Costs()
	return costs.PartPrice.
		Add(shipping).
		Add(costs.Others).
		Add(costs.CustShippingReturn).
		Add(costs.CustShippingReplacement).
		Add(costs.YardShippingReplacement).
		Sub(costs.RefundedAmount)
}
