package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/domain/model/order"
)

func TestNewAddYardEntryCommand_ValidInput(t *testing.T) {
	orderNo := mustOrderNo(t, "50STARS4956")
	costs := order.YardCosts{PartPrice: decimal.NewFromInt(250)}
	cmd, err := commands.NewAddYardEntryCommand(orderNo, "LKQ Tampa", costs, "agent.kelly")
	require.NoError(t, err)
	assert.Equal(t, orderNo, cmd.OrderNo())
	assert.Equal(t, "LKQ Tampa", cmd.YardName())
	assert.True(t, decimal.NewFromInt(250).Equal(cmd.Costs().PartPrice))
	assert.Equal(t, "agent.kelly", cmd.Actor())
}

func TestNewAddYardEntryCommand_EmptyYardName(t *testing.T) {
	_, err := commands.NewAddYardEntryCommand(
		mustOrderNo(t, "50STARS4956"), "", order.YardCosts{}, "agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrYardNameIsRequired)
}

func TestNewAddYardEntryCommand_NegativeCostComponent(t *testing.T) {
	_, err := commands.NewAddYardEntryCommand(
		mustOrderNo(t, "50STARS4956"),
		"LKQ Tampa",
		order.YardCosts{Others: decimal.NewFromInt(-3)},
		"agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrYardCostsAreInvalid)
}

func TestNewAddYardEntryCommand_EmptyActor(t *testing.T) {
	_, err := commands.NewAddYardEntryCommand(
		mustOrderNo(t, "50STARS4956"), "LKQ Tampa", order.YardCosts{}, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrActorIsRequired)
}
