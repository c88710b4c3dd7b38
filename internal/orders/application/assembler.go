package application

import (
	"time"

	"orders-ms/internal/orders/domain"
	"orders-ms/internal/orders/ports"
)

// OrderView is the outward-facing order shape: the persisted snapshot
// merged with freshly fetched catalog names.
type OrderView struct {
	ID          string             `json:"id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount float64            `json:"totalAmount"`
	TotalItems  int                `json:"totalItems"`
	Paid        bool               `json:"paid"`
	PaidAt      *time.Time         `json:"paidAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Items       []OrderItemView    `json:"items"`
}

// OrderItemView carries the persisted price/quantity snapshot plus the
// catalog name looked up at read time.
type OrderItemView struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// AssembleOrder merges a persisted order with a catalog response.
// A product missing from the catalog (deleted after order creation)
// leaves its item name empty instead of failing the assembly, so
// historical orders stay retrievable.
func AssembleOrder(order *domain.Order, products []ports.Product) *OrderView {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	items := make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      names[item.ProductID],
		}
	}

	return &OrderView{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Paid:        order.Paid,
		PaidAt:      order.PaidAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Items:       items,
	}
}
