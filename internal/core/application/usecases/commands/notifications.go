package commands

import (
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// publishSnapshot sends the post-commit state of an order to its topic.
// Publishing is fire-and-forget relative to the mutation's own success: it
// runs only after commit and its outcome never reaches the caller.
//
// The payload always carries orderNo plus the fields this mutation touched;
// consumers must tolerate partial payloads.
func publishSnapshot(
	notifier ports.Notifier,
	classifier services.EscalationClassifier,
	o *order.Order,
	extra ports.Payload,
) {
	if notifier == nil {
		return
	}

	payload := ports.Payload{
		"orderNo":    o.OrderNo().String(),
		"status":     o.Status().String(),
		"currentGP":  o.CurrentGP().String(),
		"escalation": classifier.ClassifyOrder(o).String(),
	}
	for k, v := range extra {
		payload[k] = v
	}

	notifier.Publish(o.OrderNo().Topic(), payload)
}
