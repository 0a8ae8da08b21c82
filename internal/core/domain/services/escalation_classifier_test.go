package services_test

import (
	"testing"
	"time"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escalatedOrder(t *testing.T, primaryFlag bool) *order.Order {
	t.Helper()
	no, err := kernel.NewOrderNumber("ESC100")
	require.NoError(t, err)

	o, err := order.NewOrder(no, "c", "p",
		decimal.NewFromInt(100), decimal.Zero, decimal.Zero, "jane", time.Now())
	require.NoError(t, err)

	entry, err := order.NewYardEntry("A1 Salvage", order.YardCosts{})
	require.NoError(t, err)
	_, err = o.AppendYardEntry(entry, "jane", time.Now())
	require.NoError(t, err)

	if primaryFlag {
		require.NoError(t, o.SetYardEscalation(0, true, "jane", time.Now()))
	}
	return o
}

func TestEscalationClassifier_Classify(t *testing.T) {
	classifier := services.NewEscalationClassifier()

	t.Run("no yards classifies as none", func(t *testing.T) {
		assert.Equal(t, services.EscalationNone, classifier.Classify(order.Placed, nil))
	})

	t.Run("unflagged primary yard classifies as none", func(t *testing.T) {
		o := escalatedOrder(t, false)
		assert.Equal(t, services.EscalationNone, classifier.ClassifyOrder(o))
	})

	t.Run("flagged primary yard on active order is ongoing", func(t *testing.T) {
		o := escalatedOrder(t, true)
		assert.Equal(t, services.EscalationOngoing,
			classifier.Classify(order.YardProcessing, o.YardEntries()))
	})

	t.Run("flagged primary yard on fulfilled order is overall resolved", func(t *testing.T) {
		o := escalatedOrder(t, true)
		assert.Equal(t, services.EscalationOverallResolved,
			classifier.Classify(order.OrderFulfilled, o.YardEntries()))
	})

	t.Run("resolving statuses", func(t *testing.T) {
		o := escalatedOrder(t, true)
		entries := o.YardEntries()

		for _, s := range []order.Status{
			order.OrderFulfilled, order.Dispute, order.Refunded, order.OrderCancelled,
		} {
			assert.Equal(t, services.EscalationOverallResolved, classifier.Classify(s, entries), s.String())
		}

		for _, s := range []order.Status{
			order.Placed, order.CustomerApproved, order.YardProcessing, order.InTransit, order.Voided,
		} {
			assert.Equal(t, services.EscalationOngoing, classifier.Classify(s, entries), s.String())
		}
	})

	t.Run("secondary yard flag alone does not drive the bucket", func(t *testing.T) {
		o := escalatedOrder(t, false)
		second, err := order.NewYardEntry("Budget Auto", order.YardCosts{})
		require.NoError(t, err)
		_, err = o.AppendYardEntry(second, "jane", time.Now())
		require.NoError(t, err)
		require.NoError(t, o.SetYardEscalation(1, true, "jane", time.Now()))

		assert.Equal(t, services.EscalationNone, classifier.ClassifyOrder(o))
		assert.Equal(t, []bool{false, true}, classifier.YardFlags(o))
	})
}

func TestEscalationBucket_String(t *testing.T) {
	assert.Equal(t, "None", services.EscalationNone.String())
	assert.Equal(t, "Ongoing", services.EscalationOngoing.String())
	assert.Equal(t, "Overall Resolved", services.EscalationOverallResolved.String())
}
