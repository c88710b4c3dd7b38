package ports

import (
	"context"
	"encoding/json"

	"orders-ms/internal/orders/domain"
)

// ListFilter narrows and pages an order listing
type ListFilter struct {
	Status domain.OrderStatus // empty means no status filter
	Offset int
	Limit  int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create persists an order and all of its items atomically
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns a page of orders (without items) plus the total
	// count matching the filter
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)

	// UpdateStatus sets the status of an existing order
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)

	// MarkPaid records a payment confirmation on an existing order
	MarkPaid(ctx context.Context, order *domain.Order) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// Product is the catalog's view of a product
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CatalogClient validates products against the external catalog
type CatalogClient interface {
	// ValidateProducts resolves ids to catalog products; a missing id
	// is reported by its absence from the result, not by an error
	ValidateProducts(ctx context.Context, ids []int64) ([]Product, error)
}

// SessionItem is a line item sent to the payment service
type SessionItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// SessionRequest asks the payment service for a checkout session
type SessionRequest struct {
	OrderID  string        `json:"orderId"`
	Currency string        `json:"currency"`
	Items    []SessionItem `json:"items"`
}

// PaymentClient obtains payment sessions from the external payment service
type PaymentClient interface {
	// CreateSession returns an opaque payment session handle
	CreateSession(ctx context.Context, req SessionRequest) (json.RawMessage, error)
}
