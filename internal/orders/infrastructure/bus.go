package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orders-ms/internal/orders/application"
	"orders-ms/internal/orders/domain"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/events"
	"orders-ms/pkg/logger"
	"orders-ms/pkg/rabbitmq"
)

// BusHandler exposes the order workflows as request/reply operations
// on the message bus
type BusHandler struct {
	useCase *application.OrderUseCase
	log     *logger.Logger
}

// NewBusHandler creates a new bus handler
func NewBusHandler(useCase *application.OrderUseCase, log *logger.Logger) *BusHandler {
	return &BusHandler{
		useCase: useCase,
		log:     log,
	}
}

// Register registers all order operations on the bus server
func (h *BusHandler) Register(server *rabbitmq.Server) {
	server.Handle(events.OpCreateOrder, h.createOrder)
	server.Handle(events.OpFindAllOrders, h.findAllOrders)
	server.Handle(events.OpFindOneOrder, h.findOneOrder)
	server.Handle(events.OpChangeOrderStatus, h.changeOrderStatus)
}

// orderItemDTO is the wire shape of a requested line item
type orderItemDTO struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// createOrderRequest is the payload of create_order
type createOrderRequest struct {
	Items []orderItemDTO `json:"items"`
}

// createOrderResponse pairs the enriched order with its payment session
type createOrderResponse struct {
	Order          *application.OrderView `json:"order"`
	PaymentSession json.RawMessage        `json:"paymentSession"`
}

func (h *BusHandler) createOrder(ctx context.Context, body []byte) (interface{}, error) {
	var req createOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.NewValidation("invalid create_order payload", err.Error())
	}

	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return nil, domain.ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	items := make([]application.CreateOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = application.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	output, err := h.useCase.CreateOrder(ctx, application.CreateOrderInput{Items: items})
	if err != nil {
		return nil, err
	}

	return createOrderResponse{
		Order:          output.Order,
		PaymentSession: output.PaymentSession,
	}, nil
}

// findAllOrdersRequest is the payload of find_all_orders
type findAllOrdersRequest struct {
	Page   int                `json:"page"`
	Limit  int                `json:"limit"`
	Status domain.OrderStatus `json:"status"`
}

// findAllOrdersResponse is a page of raw orders plus pagination metadata
type findAllOrdersResponse struct {
	Data []orderDTO           `json:"data"`
	Meta application.PageMeta `json:"meta"`
}

func (h *BusHandler) findAllOrders(ctx context.Context, body []byte) (interface{}, error) {
	var req findAllOrdersRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, errors.NewValidation("invalid find_all_orders payload", err.Error())
		}
	}

	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, domain.NewInvalidStatus(req.Status)
	}

	output, err := h.useCase.FindAll(ctx, application.FindAllInput{
		Page:   application.PageRequest{Page: req.Page, Limit: req.Limit},
		Status: req.Status,
	})
	if err != nil {
		return nil, err
	}

	data := make([]orderDTO, len(output.Data))
	for i, order := range output.Data {
		data[i] = toOrderDTO(order)
	}

	return findAllOrdersResponse{
		Data: data,
		Meta: output.Meta,
	}, nil
}

// findOneOrderRequest is the payload of find_one_order
type findOneOrderRequest struct {
	ID string `json:"id"`
}

func (h *BusHandler) findOneOrder(ctx context.Context, body []byte) (interface{}, error) {
	var req findOneOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.NewValidation("invalid find_one_order payload", err.Error())
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, errors.NewValidation("id must be a valid uuid", nil)
	}

	return h.useCase.FindOne(ctx, req.ID)
}

// changeOrderStatusRequest is the payload of change_order_status
type changeOrderStatusRequest struct {
	ID     string             `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

func (h *BusHandler) changeOrderStatus(ctx context.Context, body []byte) (interface{}, error) {
	var req changeOrderStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.NewValidation("invalid change_order_status payload", err.Error())
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, errors.NewValidation("id must be a valid uuid", nil)
	}
	if !domain.ValidStatus(req.Status) {
		return nil, domain.NewInvalidStatus(req.Status)
	}

	order, err := h.useCase.ChangeStatus(ctx, req.ID, req.Status)
	if err != nil {
		return nil, err
	}

	return toOrderDTO(order), nil
}

// orderDTO is the wire shape of a raw order record (no items)
type orderDTO struct {
	ID          string             `json:"id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount float64            `json:"totalAmount"`
	TotalItems  int                `json:"totalItems"`
	Paid        bool               `json:"paid"`
	PaidAt      *time.Time         `json:"paidAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func toOrderDTO(order *domain.Order) orderDTO {
	return orderDTO{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Paid:        order.Paid,
		PaidAt:      order.PaidAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
