// Package http exposes the order engine over REST plus an SSE stream of
// change notifications. Handlers translate transport concerns and delegate
// all business behavior to the application layer.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/application/usecases/queries"
	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
	"partsdesk/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	changeStatusHandler    commands.ChangeStatusCommandHandler
	addYardEntryHandler    commands.AddYardEntryCommandHandler
	updateYardEntryHandler commands.UpdateYardEntryCommandHandler
	addNoteHandler         commands.AddNoteCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	notifier ports.Notifier
}

// NewServer creates an HTTP server with the required command and query
// handlers. The notifier feeds the SSE event stream.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeStatusCommandHandler,
	addYardEntryHandler commands.AddYardEntryCommandHandler,
	updateYardEntryHandler commands.UpdateYardEntryCommandHandler,
	addNoteHandler commands.AddNoteCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	notifier ports.Notifier,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		addYardEntryHandler:    addYardEntryHandler,
		updateYardEntryHandler: updateYardEntryHandler,
		addNoteHandler:         addNoteHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		notifier:               notifier,
	}
}

// RegisterRoutes mounts the health probe and the /api/v1 surface.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderNo", s.GetOrder)
	api.POST("/orders/:orderNo/status", s.ChangeStatus)
	api.POST("/orders/:orderNo/yards", s.AddYardEntry)
	api.PATCH("/orders/:orderNo/yards/:index", s.UpdateYardEntry)
	api.POST("/orders/:orderNo/notes", s.AddOrderNote)
	api.POST("/orders/:orderNo/yards/:index/notes", s.AddYardNote)
	api.GET("/orders/:orderNo/events", s.StreamOrderEvents)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderNo, err := kernel.NewOrderNumber(req.OrderNo)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderNo,
		req.CustomerName,
		req.PartDescription,
		req.QuotedPrice,
		req.YardCostEstimate,
		req.ShippingEstimate,
		req.Actor,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:orderNo.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderNo)
	if err != nil {
		return errorResponse(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(snapshot))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter, limit, offset, err := listParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListOrdersQuery(filter, limit, offset)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryResponseFrom(summary))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeStatus handles POST /api/v1/orders/:orderNo/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req StatusChangeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var cancellation *commands.Cancellation
	if req.Cancellation != nil {
		cancellation = &commands.Cancellation{
			Amount: req.Cancellation.Amount,
			Reason: req.Cancellation.Reason,
		}
		if req.Cancellation.Date != nil {
			date := req.Cancellation.Date.Time
			cancellation.Date = &date
		}
	}

	cmd, err := commands.NewChangeStatusCommand(orderNo, target, cancellation, req.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddYardEntry handles POST /api/v1/orders/:orderNo/yards.
func (s *Server) AddYardEntry(ctx echo.Context) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req NewYardEntryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddYardEntryCommand(orderNo, req.YardName, costsFrom(req.Costs), req.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addYardEntryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateYardEntry handles PATCH /api/v1/orders/:orderNo/yards/:index.
func (s *Server) UpdateYardEntry(ctx echo.Context) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return badRequest(ctx, "yard index must be an integer")
	}

	var req UpdateYardEntryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var costs *order.YardCosts
	if req.Costs != nil {
		mapped := costsFrom(*req.Costs)
		costs = &mapped
	}
	var shipping *commands.ShippingChange
	if req.Shipping != nil {
		shipping = &commands.ShippingChange{
			Payer: order.ShippingPayerFromString(req.Shipping.Payer),
			Cost:  req.Shipping.Cost,
		}
	}
	var statusChange *commands.YardStatusChange
	if req.Status != nil {
		statusChange = &commands.YardStatusChange{
			Status:  order.YardStatusFromString(req.Status.Status),
			Payment: order.PaymentStatusFromString(req.Status.PaymentStatus),
		}
	}

	cmd, err := commands.NewUpdateYardEntryCommand(
		orderNo, index, costs, shipping, req.ShippingDetail, statusChange, req.Escalation, req.Actor,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateYardEntryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderNote handles POST /api/v1/orders/:orderNo/notes.
func (s *Server) AddOrderNote(ctx echo.Context) error {
	return s.addNote(ctx, nil)
}

// AddYardNote handles POST /api/v1/orders/:orderNo/yards/:index/notes.
func (s *Server) AddYardNote(ctx echo.Context) error {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return badRequest(ctx, "yard index must be an integer")
	}
	return s.addNote(ctx, &index)
}

func (s *Server) addNote(ctx echo.Context, yardIndex *int) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req NoteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddNoteCommand(orderNo, yardIndex, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addNoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func listParams(ctx echo.Context) (queries.ListOrdersFilter, int, int, error) {
	var filter queries.ListOrdersFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("escalation"); raw != "" {
		bucket, err := escalationBucketFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.Escalation = &bucket
	}
	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.CreatedFrom = &from
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.CreatedTo = &to
	}
	filter.Search = ctx.QueryParam("q")

	limit, err := intParam(ctx, "limit")
	if err != nil {
		return filter, 0, 0, err
	}
	offset, err := intParam(ctx, "offset")
	if err != nil {
		return filter, 0, 0, err
	}

	return filter, limit, offset, nil
}

func intParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func escalationBucketFromString(raw string) (services.EscalationBucket, error) {
	for _, bucket := range []services.EscalationBucket{
		services.EscalationNone,
		services.EscalationOngoing,
		services.EscalationOverallResolved,
	} {
		if bucket.String() == raw {
			return bucket, nil
		}
	}
	return services.EscalationNone, errors.New("unknown escalation bucket: " + raw)
}

func costsFrom(req YardCostsRequest) order.YardCosts {
	return order.YardCosts{
		PartPrice:               req.PartPrice,
		Others:                  req.Others,
		CustShippingReturn:      req.CustShippingReturn,
		CustShippingReplacement: req.CustShippingReplacement,
		YardShippingReplacement: req.YardShippingReplacement,
		RefundedAmount:          req.RefundedAmount,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain and infrastructure errors onto HTTP statuses:
// validation failures are 400, unknown orders 404, optimistic concurrency
// losses 409, and illegal lifecycle transitions 422.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
