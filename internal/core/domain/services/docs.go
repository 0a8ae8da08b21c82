// Package services provides stateless domain services for the order engine:
// the calculations that read an order snapshot but don't naturally belong to
// the aggregate itself.
//
// The package includes:
//   - ParseShippingDetail: extraction of a shipping charge from the legacy
//     free-text shipping-detail string
//   - GPCalculator: the gross-profit aggregator over the yard ledger
//   - EscalationClassifier: bucketing of orders into operational
//     escalation queues
//
// All services here are pure: given the same order snapshot they return the
// same result and have no side effects. Callers decide whether and when to
// persist the values.
package services
