package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/queries"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	processOrderHandler      commands.ProcessOrderCommandHandler
	pullOrdersHandler        commands.PullOrdersCommandHandler
	refreshTrackingHandler   commands.RefreshTrackingCommandHandler
	generateBatchHandler     commands.GenerateBatchCommandHandler
	completeBatchHandler     commands.CompleteBatchCommandHandler
	recordBatchUploadHandler commands.RecordBatchUploadCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getBatchesHandler           queries.GetBatchesQueryHandler
	getBatchOrdersHandler       queries.GetBatchOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	processOrderHandler commands.ProcessOrderCommandHandler,
	pullOrdersHandler commands.PullOrdersCommandHandler,
	refreshTrackingHandler commands.RefreshTrackingCommandHandler,
	generateBatchHandler commands.GenerateBatchCommandHandler,
	completeBatchHandler commands.CompleteBatchCommandHandler,
	recordBatchUploadHandler commands.RecordBatchUploadCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getBatchesHandler queries.GetBatchesQueryHandler,
	getBatchOrdersHandler queries.GetBatchOrdersQueryHandler,
) *Server {
	return &Server{
		processOrderHandler:         processOrderHandler,
		pullOrdersHandler:           pullOrdersHandler,
		refreshTrackingHandler:      refreshTrackingHandler,
		generateBatchHandler:        generateBatchHandler,
		completeBatchHandler:        completeBatchHandler,
		recordBatchUploadHandler:    recordBatchUploadHandler,
		getOrderHandler:             getOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getBatchesHandler:           getBatchesHandler,
		getBatchOrdersHandler:       getBatchOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")
	api.POST("/orders/pull", s.PullOrders)
	api.GET("/orders", s.GetUncompletedOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/process", s.ProcessOrder)
	api.POST("/orders/:orderId/tracking/refresh", s.RefreshTracking)
	api.POST("/batches", s.GenerateBatch)
	api.GET("/batches", s.GetBatches)
	api.GET("/batches/:batchId/orders", s.GetBatchOrders)
	api.POST("/batches/:batchId/complete", s.CompleteBatch)
	api.POST("/batches/:batchId/upload", s.RecordBatchUpload)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PullOrders handles POST /api/v1/orders/pull - imports pending orders from
// sales channels. An empty channel pulls every active channel account.
func (s *Server) PullOrders(ctx echo.Context) error {
	var req PullOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewPullOrdersCommand(req.Channel)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid pull request: " + err.Error(),
		})
	}

	reports, err := s.pullOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to pull orders",
		})
	}

	response := make([]PullReport, len(reports))
	for i, r := range reports {
		response[i] = PullReport{
			Channel:   r.Channel,
			AccountID: r.AccountID,
			Pulled:    r.Pulled,
			Created:   r.Created,
			Skipped:   r.Skipped,
		}
		if r.Err != nil {
			response[i].Error = r.Err.Error()
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUncompletedOrders handles GET /api/v1/orders - lists orders still in
// flight, optionally filtered by ?channel=.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery(ctx.QueryParam("channel"))

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:             o.ID.String(),
			OrderNumber:    o.OrderNumber,
			Channel:        o.Channel,
			AccountID:      o.AccountID,
			Status:         o.Status,
			TrackingNumber: o.TrackingNumber,
			BatchID:        o.BatchID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order with its
// full status and error trail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	response := OrderDetail{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		Channel:        o.Channel,
		AccountID:      o.AccountID,
		Status:         o.Status,
		CarrierCode:    o.CarrierCode,
		TrackingNumber: o.TrackingNumber,
		TrackingURL:    o.TrackingURL,
		LabelRetries:   o.LabelRetries,
		SyncRetries:    o.SyncRetries,
		BatchID:        o.BatchID,
		StatusLogs:     make([]StatusLogEntry, len(o.StatusLogs)),
		ErrorLogs:      make([]ErrorLogEntry, len(o.ErrorLogs)),
	}
	response.ShippingAddress = addressFromQuery(o.ShippingAddress)
	response.BillingAddress = addressFromQuery(o.BillingAddress)
	for i, l := range o.StatusLogs {
		response.StatusLogs[i] = StatusLogEntry{
			FromStatus: l.FromStatus,
			ToStatus:   l.ToStatus,
			Remarks:    l.Remarks,
			CreatedAt:  l.CreatedAt,
		}
	}
	for i, l := range o.ErrorLogs {
		response.ErrorLogs[i] = ErrorLogEntry{
			Operation:  l.Operation,
			Message:    l.Message,
			RetryCount: l.RetryCount,
			CreatedAt:  l.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ProcessOrder handles POST /api/v1/orders/:orderId/process - advances the
// order by one fulfillment stage.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req ProcessOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewProcessOrderCommand(orderID, req.ParcelWeights)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid process request: " + err.Error(),
		})
	}

	if handleErr := s.processOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process order",
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}

// RefreshTracking handles POST /api/v1/orders/:orderId/tracking/refresh -
// fetches the latest carrier tracking snapshot for a shipped order.
func (s *Server) RefreshTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewRefreshTrackingCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid refresh request: " + err.Error(),
		})
	}

	if handleErr := s.refreshTrackingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(handleErr, commands.ErrOrderHasNoTrackingNumber):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order has no tracking number yet",
			})
		default:
			return ctx.JSON(http.StatusBadGateway, Error{
				Code:    http.StatusBadGateway,
				Message: "Failed to refresh tracking",
			})
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateBatch handles POST /api/v1/batches - groups all synced, unbatched
// orders of a channel account into a new batch.
func (s *Server) GenerateBatch(ctx echo.Context) error {
	var req GenerateBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewGenerateBatchCommand(req.Channel, req.AccountID, req.Operator)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid batch request: " + err.Error(),
		})
	}

	batchID, err := s.generateBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrNoEligibleOrders) {
			return ctx.JSON(http.StatusOK, GenerateBatchResponse{
				Message: "No orders eligible for batching",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to generate batch",
		})
	}

	return ctx.JSON(http.StatusCreated, GenerateBatchResponse{BatchID: &batchID})
}

// GetBatches handles GET /api/v1/batches - lists batches, newest first,
// optionally filtered by ?channel=.
func (s *Server) GetBatches(ctx echo.Context) error {
	query := queries.NewGetBatchesQuery(ctx.QueryParam("channel"))

	batches, err := s.getBatchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve batches",
		})
	}

	response := make([]BatchSummary, len(batches))
	for i, b := range batches {
		response[i] = BatchSummary{
			BatchID:     b.BatchID,
			Channel:     b.Channel,
			OrderCount:  b.OrderCount,
			Status:      b.Status,
			Operator:    b.Operator,
			CreatedAt:   b.CreatedAt,
			CompletedAt: b.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetBatchOrders handles GET /api/v1/batches/:batchId/orders - lists the
// orders stamped with a batch.
func (s *Server) GetBatchOrders(ctx echo.Context) error {
	query, err := queries.NewGetBatchOrdersQuery(ctx.Param("batchId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid batch id",
		})
	}

	orders, err := s.getBatchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve batch orders",
		})
	}

	response := make([]BatchOrder, len(orders))
	for i, o := range orders {
		response[i] = BatchOrder{
			ID:             o.ID.String(),
			OrderNumber:    o.OrderNumber,
			Status:         o.Status,
			CarrierCode:    o.CarrierCode,
			TrackingNumber: o.TrackingNumber,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CompleteBatch handles POST /api/v1/batches/:batchId/complete - finalizes a
// batch and completes its eligible orders.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	var req CompleteBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCompleteBatchCommand(ctx.Param("batchId"), req.Operator)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid complete request: " + err.Error(),
		})
	}

	completed, err := s.completeBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Batch not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to complete batch",
		})
	}

	return ctx.JSON(http.StatusOK, CompleteBatchResponse{CompletedOrders: completed})
}

// RecordBatchUpload handles POST /api/v1/batches/:batchId/upload - records
// the outcome of shipping a batch file to the print shop.
func (s *Server) RecordBatchUpload(ctx echo.Context) error {
	var req RecordBatchUploadRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRecordBatchUploadCommand(ctx.Param("batchId"), req.Succeeded, req.Remarks)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid upload request: " + err.Error(),
		})
	}

	if handleErr := s.recordBatchUploadHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Batch not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to record batch upload",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Error is the JSON error envelope returned on failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PullOrdersRequest selects which channel to pull. Empty pulls all channels.
type PullOrdersRequest struct {
	Channel string `json:"channel"`
}

// PullReport summarizes the pull outcome for one channel account.
type PullReport struct {
	Channel   string `json:"channel"`
	AccountID string `json:"account_id"`
	Pulled    int    `json:"pulled"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// ProcessOrderRequest carries optional parcel weights for label creation.
type ProcessOrderRequest struct {
	ParcelWeights []float64 `json:"parcel_weights"`
}

// OrderSummary is one row of the uncompleted orders listing.
type OrderSummary struct {
	ID             string  `json:"id"`
	OrderNumber    string  `json:"order_number"`
	Channel        string  `json:"channel"`
	AccountID      string  `json:"account_id"`
	Status         string  `json:"status"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
	BatchID        *string `json:"batch_id"`
}

// OrderDetail is the full view of one order including its audit trail.
type OrderDetail struct {
	ID              string           `json:"id"`
	OrderNumber     string           `json:"order_number"`
	Channel         string           `json:"channel"`
	AccountID       string           `json:"account_id"`
	Status          string           `json:"status"`
	CarrierCode     string           `json:"carrier_code,omitempty"`
	TrackingNumber  string           `json:"tracking_number,omitempty"`
	TrackingURL     string           `json:"tracking_url,omitempty"`
	LabelRetries    int              `json:"label_retries"`
	SyncRetries     int              `json:"sync_retries"`
	BatchID         *string          `json:"batch_id"`
	ShippingAddress *Address         `json:"shipping_address,omitempty"`
	BillingAddress  *Address         `json:"billing_address,omitempty"`
	StatusLogs      []StatusLogEntry `json:"status_logs"`
	ErrorLogs       []ErrorLogEntry  `json:"error_logs"`
}

// Address is an order address as captured at ingestion.
type Address struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number,omitempty"`
	City        string `json:"city"`
	ZipCode     string `json:"zip_code"`
	CountryCode string `json:"country_code"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func addressFromQuery(a *queries.AddressResponse) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Name:        a.Name,
		Company:     a.Company,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		City:        a.City,
		ZipCode:     a.ZipCode,
		CountryCode: a.CountryCode,
		Email:       a.Email,
		Phone:       a.Phone,
	}
}

// StatusLogEntry is one recorded status transition.
type StatusLogEntry struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Remarks    string    `json:"remarks,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ErrorLogEntry is one recorded operation failure.
type ErrorLogEntry struct {
	Operation  string    `json:"operation"`
	Message    string    `json:"message"`
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerateBatchRequest selects the channel account to batch.
type GenerateBatchRequest struct {
	Channel   string `json:"channel"`
	AccountID string `json:"account_id"`
	Operator  string `json:"operator"`
}

// GenerateBatchResponse carries the allocated batch identifier. BatchID is
// null when no order qualified.
type GenerateBatchResponse struct {
	BatchID *string `json:"batch_id"`
	Message string  `json:"message,omitempty"`
}

// BatchSummary is one row of the batch listing.
type BatchSummary struct {
	BatchID     string     `json:"batch_id"`
	Channel     string     `json:"channel"`
	OrderCount  int        `json:"order_count"`
	Status      string     `json:"status"`
	Operator    string     `json:"operator,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// BatchOrder is one order row within a batch.
type BatchOrder struct {
	ID             string `json:"id"`
	OrderNumber    string `json:"order_number"`
	Status         string `json:"status"`
	CarrierCode    string `json:"carrier_code,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// CompleteBatchRequest names the operator finalizing the batch.
type CompleteBatchRequest struct {
	Operator string `json:"operator"`
}

// CompleteBatchResponse reports how many orders reached completion.
type CompleteBatchResponse struct {
	CompletedOrders int `json:"completed_orders"`
}

// RecordBatchUploadRequest records the print shop upload outcome.
type RecordBatchUploadRequest struct {
	Succeeded bool   `json:"succeeded"`
	Remarks   string `json:"remarks"`
}
