package services_test

import (
	"testing"

	"partsdesk/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseShippingDetail(t *testing.T) {
	t.Run("matches own shipping with space and decimals", func(t *testing.T) {
		got := services.ParseShippingDetail("Own shipping: 42.50")
		assert.True(t, decimal.RequireFromString("42.5").Equal(got))
	})

	t.Run("matches yard shipping case-insensitively without space", func(t *testing.T) {
		got := services.ParseShippingDetail("yard shipping:42.5")
		assert.True(t, decimal.RequireFromString("42.5").Equal(got))
	})

	t.Run("matches inside surrounding text", func(t *testing.T) {
		got := services.ParseShippingDetail("  OWN SHIPPING:   20  ")
		assert.True(t, decimal.NewFromInt(20).Equal(got))
	})

	t.Run("empty input degrades to zero", func(t *testing.T) {
		assert.True(t, services.ParseShippingDetail("").IsZero())
	})

	t.Run("non-matching input degrades to zero", func(t *testing.T) {
		for _, detail := range []string{
			"shipping: 20",
			"Own freight: 20",
			"Own shipping twenty",
			"Own shipping:",
			"just a note",
		} {
			assert.True(t, services.ParseShippingDetail(detail).IsZero(), detail)
		}
	})

	t.Run("integer amounts parse", func(t *testing.T) {
		got := services.ParseShippingDetail("Yard shipping: 20")
		assert.True(t, decimal.NewFromInt(20).Equal(got))
	})
}
