package events

import "time"

// Bus operations exposed by this service
const (
	OpCreateOrder       = "create_order"
	OpFindAllOrders     = "find_all_orders"
	OpFindOneOrder      = "find_one_order"
	OpChangeOrderStatus = "change_order_status"
)

// Bus operations consumed from other services
const (
	OpValidateProduct      = "validate_product"
	OpCreatePaymentSession = "create.payment.session"
)

// Exchange names
const (
	ExchangeOrders   = "orders.events"
	ExchangePayments = "payments.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated     = "order.created"
	RoutingKeyPaymentSucceeded = "payment.succeeded"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	Version   string              `json:"version"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id"`
	Payload   OrderCreatedPayload `json:"payload"`
}

// OrderCreatedPayload contains order data
type OrderCreatedPayload struct {
	ID          string    `json:"id"`
	TotalAmount float64   `json:"totalAmount"`
	TotalItems  int       `json:"totalItems"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(id string, totalAmount float64, totalItems int, status string, createdAt time.Time, traceID string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		Version:   "1.0",
		EventType: "order.created",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderCreatedPayload{
			ID:          id,
			TotalAmount: totalAmount,
			TotalItems:  totalItems,
			Status:      status,
			CreatedAt:   createdAt,
		},
	}
}

// PaymentSucceededEvent arrives when the payment service confirms a
// charge for an order. Fire-and-forget: there is no caller to reply to.
type PaymentSucceededEvent struct {
	OrderID    string `json:"orderId"`
	ChargeID   string `json:"chargeId,omitempty"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
}
