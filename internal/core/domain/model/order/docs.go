// Package order provides domain entities and business logic for auto-parts
// sales orders. It implements the Order aggregate root with lifecycle
// management, the per-yard cost ledger, and the append-only audit history.
//
// The package includes:
//   - Order: the aggregate root managing identity, commercial fields,
//     refund state, history and the yard ledger
//   - Status: a state machine that enforces valid lifecycle transitions
//   - YardEntry: one supplier-side cost/status sub-record with its own
//     transaction status, payment status and escalation flag
//
// Key business rules:
//   - Status follows the pipeline Placed -> Customer Approved ->
//     Yard Processing -> In Transit, branching into terminal outcomes
//   - A cancellation/refund event requires both an amount and a reason
//   - A PO-cancelled yard leg contributes to spend only if the card was
//     actually charged
//   - History entries are immutable once written and keep insertion order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
