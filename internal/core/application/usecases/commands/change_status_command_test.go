package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/domain/model/order"
)

func TestNewChangeStatusCommand_ValidInput(t *testing.T) {
	orderNo := mustOrderNo(t, "50STARS4956")
	cmd, err := commands.NewChangeStatusCommand(orderNo, order.CustomerApproved, nil, "agent.kelly")
	require.NoError(t, err)
	assert.Equal(t, orderNo, cmd.OrderNo())
	assert.Equal(t, order.CustomerApproved, cmd.Target())
	assert.Nil(t, cmd.Cancellation())
	assert.Equal(t, "agent.kelly", cmd.Actor())
}

func TestNewChangeStatusCommand_WithCancellation(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"),
		order.Refunded,
		&commands.Cancellation{
			Amount: decimal.NewFromInt(365),
			Reason: "part arrived damaged",
			Date:   &date,
		},
		"agent.kelly",
	)
	require.NoError(t, err)
	cancellation := cmd.Cancellation()
	require.NotNil(t, cancellation)
	assert.True(t, decimal.NewFromInt(365).Equal(cancellation.Amount))
	assert.Equal(t, "part arrived damaged", cancellation.Reason)
	assert.Equal(t, date, *cancellation.Date)
}

func TestNewChangeStatusCommand_UnknownTarget(t *testing.T) {
	_, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"), order.Unknown, nil, "agent.kelly",
	)
	require.Error(t, err)
}

func TestNewChangeStatusCommand_CancellationTargetWithoutDetails(t *testing.T) {
	_, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"), order.OrderCancelled, nil, "agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCancellationIsIncomplete)
}

func TestNewChangeStatusCommand_CancellationWithoutReason(t *testing.T) {
	_, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"),
		order.Refunded,
		&commands.Cancellation{Amount: decimal.NewFromInt(100)},
		"agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCancellationIsIncomplete)
}

func TestNewChangeStatusCommand_CancellationOnPlainTarget(t *testing.T) {
	_, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"),
		order.InTransit,
		&commands.Cancellation{Amount: decimal.NewFromInt(100), Reason: "wrong part"},
		"agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCancellationNotAccepted)
}

func TestNewChangeStatusCommand_NegativeRefundAmount(t *testing.T) {
	_, err := commands.NewChangeStatusCommand(
		mustOrderNo(t, "50STARS4956"),
		order.Refunded,
		&commands.Cancellation{Amount: decimal.NewFromInt(-5), Reason: "wrong part"},
		"agent.kelly",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRefundAmountIsInvalid)
}
