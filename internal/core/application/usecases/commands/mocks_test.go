package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, orderNo kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveUpdatedSince(
	ctx context.Context, since time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Subscribe(topic string) ports.Subscription {
	args := m.Called(topic)
	return args.Get(0).(ports.Subscription)
}

func (m *MockNotifier) Publish(topic string, payload ports.Payload) {
	m.Called(topic, payload)
}

func mustOrderNo(t *testing.T, value string) kernel.OrderNumber {
	t.Helper()
	orderNo, err := kernel.NewOrderNumber(value)
	require.NoError(t, err)
	return orderNo
}

// newStoredOrder builds the aggregate the mocked repository hands back from
// Get: quoted 365, estimates 250 and 20, in Placed status.
func newStoredOrder(t *testing.T, orderNo kernel.OrderNumber) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		orderNo,
		"J. Smith",
		"2014 F-150 tailgate",
		decimal.NewFromInt(365),
		decimal.NewFromInt(250),
		decimal.NewFromInt(20),
		"importer",
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return aggregate
}
