package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orders-ms/internal/orders/application"
	"orders-ms/internal/orders/domain"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/middleware"
)

// HTTPHandler is the read-only ops surface for orders. Order creation
// and status changes happen over the bus; this surface serves
// dashboards and the payment-session reconciliation path.
type HTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the order routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/payment-session", h.CreatePaymentSession)
	}
}

// ListOrders handles GET /orders
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	status := domain.OrderStatus(c.Query("status"))

	if status != "" && !domain.ValidStatus(status) {
		c.Error(domain.NewInvalidStatus(status))
		return
	}

	output, err := h.useCase.FindAll(c.Request.Context(), application.FindAllInput{
		Page:   application.PageRequest{Page: page, Limit: limit},
		Status: status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	data := make([]orderDTO, len(output.Data))
	for i, order := range output.Data {
		data[i] = toOrderDTO(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     data,
		"meta":     output.Meta,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetOrder handles GET /orders/:id
func (h *HTTPHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(errors.NewValidation("id must be a valid uuid", nil))
		return
	}

	order, err := h.useCase.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     order,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// CreatePaymentSession handles POST /orders/:id/payment-session.
// Reconciliation for orders persisted without a session after a
// payment fault during creation.
func (h *HTTPHandler) CreatePaymentSession(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(errors.NewValidation("id must be a valid uuid", nil))
		return
	}

	session, err := h.useCase.CreatePaymentSession(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     session,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
