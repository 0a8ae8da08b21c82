package services

import (
	"partsdesk/internal/core/domain/model/order"
)

// EscalationBucket is the operational queue an order's escalation state
// routes it into.
type EscalationBucket int

const (
	// EscalationNone means no yard leg is flagged.
	EscalationNone EscalationBucket = iota

	// EscalationOngoing means the primary yard is flagged and the order has
	// not yet reached a resolving status.
	EscalationOngoing

	// EscalationOverallResolved means the primary yard is flagged and the
	// order reached a resolving status.
	EscalationOverallResolved
)

// String returns the display form of the bucket.
func (b EscalationBucket) String() string {
	switch b {
	case EscalationOngoing:
		return "Ongoing"
	case EscalationOverallResolved:
		return "Overall Resolved"
	default:
		return "None"
	}
}

// EscalationClassifier derives an order's escalation bucket from its status
// and the escalation flags of its yard ledger. The headline bucket is driven
// by the primary (first) yard's flag; the full per-yard flag set is exposed
// separately for reporting.
//
// The bucket is always computed from the live snapshot, never cached, so a
// status transition or yard edit cannot leave a stale bucket behind.
type EscalationClassifier struct{}

// NewEscalationClassifier creates an EscalationClassifier.
func NewEscalationClassifier() EscalationClassifier {
	return EscalationClassifier{}
}

// resolvingStatuses are the statuses under which a flagged escalation counts
// as overall-resolved rather than ongoing.
func resolvingStatuses() []order.Status {
	return []order.Status{
		order.OrderFulfilled,
		order.Dispute,
		order.Refunded,
		order.OrderCancelled,
	}
}

// Classify buckets an order from its status and yard ledger snapshot.
func (c EscalationClassifier) Classify(status order.Status, entries []order.YardEntry) EscalationBucket {
	primaryFlagged := len(entries) > 0 && entries[0].Escalation()
	return c.ClassifyPrimary(status, primaryFlagged)
}

// ClassifyPrimary buckets an order from its status and the primary yard's
// escalation flag alone. Read paths that already hold the flag use this to
// avoid restoring the full ledger.
func (c EscalationClassifier) ClassifyPrimary(status order.Status, primaryFlagged bool) EscalationBucket {
	if !primaryFlagged {
		return EscalationNone
	}

	for _, resolved := range resolvingStatuses() {
		if status == resolved {
			return EscalationOverallResolved
		}
	}
	return EscalationOngoing
}

// ClassifyOrder buckets an order aggregate.
func (c EscalationClassifier) ClassifyOrder(o *order.Order) EscalationBucket {
	return c.Classify(o.Status(), o.YardEntries())
}

// YardFlags returns the escalation flag of every yard leg, in ledger order.
// Reporting surfaces show the full set even though only the primary yard
// drives the headline bucket.
func (c EscalationClassifier) YardFlags(o *order.Order) []bool {
	entries := o.YardEntries()
	flags := make([]bool, len(entries))
	for i := range entries {
		flags[i] = entries[i].Escalation()
	}
	return flags
}
