package http

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"partsdesk/internal/adapters/out/notify"
	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/application/usecases/queries"
	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/ports"
	"partsdesk/internal/pkg/errs"
)

type MockOrderRepository struct {
	mock.Mock
}

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
	ctx context.Context,
	since time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct {
	mock.Mock
}

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

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// testFixture wires a Server onto mocked persistence so transport behavior
// can be exercised without a database. Query endpoints are not backed here;
// tests for them stop at parameter validation.
type testFixture struct {
	server *Server
	echo   *echo.Echo
	repo   *MockOrderRepository
	uow    *MockOrderUoW
	hub    *notify.Hub
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	repo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow).Maybe()

	hub := notify.NewHub(slog.Default())

	server := NewServer(
		commands.NewCreateOrderCommandHandler(factory, hub),
		commands.NewChangeStatusCommandHandler(factory, hub),
		commands.NewAddYardEntryCommandHandler(factory, hub),
		commands.NewUpdateYardEntryCommandHandler(factory, hub),
		commands.NewAddNoteCommandHandler(factory, hub),
		queries.GetOrderQueryHandler{},
		queries.ListOrdersQueryHandler{},
		hub,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &testFixture{server: server, echo: e, repo: repo, uow: uow, hub: hub}
}

// expectMutation arranges the happy-path unit of work sequence around a
// stored aggregate. A nil stored order skips the Get expectation for
// creation flows.
func (f *testFixture) expectMutation(stored *order.Order) {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo)
	if stored != nil {
		f.repo.On("Get", mock.Anything, mock.Anything).Return(stored, nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	} else {
		f.repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	}
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func (f *testFixture) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()

	orderNo, err := kernel.NewOrderNumber("50STARS4956")
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		orderNo,
		"J. Smith",
		"2014 F-150 tailgate",
		decimal.NewFromInt(365),
		decimal.NewFromInt(250),
		decimal.NewFromInt(20),
		"importer",
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return aggregate
}

func TestServer_CreateOrder(t *testing.T) {
	t.Run("persists a valid order", func(t *testing.T) {
		f := newTestFixture(t)
		f.expectMutation(nil)

		rec := f.request(http.MethodPost, "/api/v1/orders", `{
			"orderNo": "50STARS4956",
			"customerName": "J. Smith",
			"partDescription": "2014 F-150 tailgate",
			"quotedPrice": "365",
			"yardCostEstimate": "250",
			"shippingEstimate": "20",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		f.repo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an invalid order number", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders", `{
			"orderNo": "",
			"customerName": "J. Smith",
			"partDescription": "tailgate",
			"quotedPrice": "365",
			"yardCostEstimate": "250",
			"shippingEstimate": "20",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a negative quoted price", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders", `{
			"orderNo": "50STARS4956",
			"customerName": "J. Smith",
			"partDescription": "tailgate",
			"quotedPrice": "-1",
			"yardCostEstimate": "250",
			"shippingEstimate": "20",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ChangeStatus(t *testing.T) {
	t.Run("applies a legal transition", func(t *testing.T) {
		f := newTestFixture(t)
		f.expectMutation(storedOrder(t))

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/status", `{
			"status": "Customer Approved",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status name", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/status", `{
			"status": "Shipped",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps an illegal transition to 422", func(t *testing.T) {
		f := newTestFixture(t)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo)
		f.repo.On("Get", mock.Anything, mock.Anything).Return(storedOrder(t), nil).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/status", `{
			"status": "Order Fulfilled",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("maps an unknown order to 404", func(t *testing.T) {
		f := newTestFixture(t)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo)
		f.repo.On("Get", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("orderNo", "50STARS4956")).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/status", `{
			"status": "Customer Approved",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("maps a stale write to 409", func(t *testing.T) {
		f := newTestFixture(t)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo)
		f.repo.On("Get", mock.Anything, mock.Anything).Return(storedOrder(t), nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything).
			Return(errs.NewConcurrencyConflictError("orderNo", "50STARS4956")).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/status", `{
			"status": "Customer Approved",
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_AddYardEntry(t *testing.T) {
	t.Run("appends a leg to the ledger", func(t *testing.T) {
		f := newTestFixture(t)
		f.expectMutation(storedOrder(t))

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/yards", `{
			"yardName": "LKQ Tampa",
			"costs": {
				"partPrice": "250",
				"others": "0",
				"custShippingReturn": "0",
				"custShippingReplacement": "0",
				"yardShippingReplacement": "0",
				"refundedAmount": "0"
			},
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		f.repo.AssertExpectations(t)
	})

	t.Run("rejects a missing yard name", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/yards", `{
			"yardName": "",
			"costs": {"partPrice": "250"},
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_UpdateYardEntry(t *testing.T) {
	t.Run("rejects a non-numeric index", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPatch, "/api/v1/orders/50STARS4956/yards/first", `{
			"escalation": true,
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an empty change set", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPatch, "/api/v1/orders/50STARS4956/yards/0", `{
			"actor": "agent.kelly"
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AddNote(t *testing.T) {
	t.Run("records an order level note", func(t *testing.T) {
		f := newTestFixture(t)
		f.expectMutation(storedOrder(t))

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/notes", `{
			"note": "customer prefers afternoon delivery"
		}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rejects an empty note", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodPost, "/api/v1/orders/50STARS4956/notes", `{"note": ""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ListOrdersParams(t *testing.T) {
	t.Run("rejects an unknown status filter", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodGet, "/api/v1/orders?status=Shipped", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an unknown escalation bucket", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodGet, "/api/v1/orders?escalation=Maybe", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an oversized page", func(t *testing.T) {
		f := newTestFixture(t)

		rec := f.request(http.MethodGet, "/api/v1/orders?limit=500", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_StreamOrderEvents(t *testing.T) {
	f := newTestFixture(t)

	srv := httptest.NewServer(f.echo)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/orders/50STARS4956/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	reader := bufio.NewReader(resp.Body)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"orderNo":"50STARS4956"`)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)

	f.hub.Publish("order.50STARS4956", ports.Payload{"status": "Placed"})

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: order\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"status":"Placed"`)
}
