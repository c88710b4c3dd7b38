package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the aggregate root for a customer purchase. TotalAmount and
// TotalItems are computed once at creation from catalog prices and are
// never recomputed afterwards.
type Order struct {
	ID          string
	Status      OrderStatus
	TotalAmount float64
	TotalItems  int
	Paid        bool
	PaidAt      *time.Time
	ChargeID    string
	ReceiptURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem is a line item owned by exactly one order. Price is a
// snapshot of the catalog price at order-creation time; it must never
// be re-derived from the catalog.
type OrderItem struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// Validate validates a line item
func (i OrderItem) Validate() error {
	if i.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// NewOrder creates a pending order from priced line items. Items must
// already carry their catalog price snapshot.
func NewOrder(items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	order := &Order{
		ID:     uuid.New().String(),
		Status: StatusPending,
		Items:  items,
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		order.TotalAmount += item.Price * float64(item.Quantity)
		order.TotalItems += item.Quantity
	}

	return order, nil
}

// ProductIDs returns the distinct product ids referenced by the order
func (o *Order) ProductIDs() []int64 {
	seen := make(map[int64]bool, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// MarkPaid transitions the order to the terminal paid status and
// records the payment metadata. This is the only paid transition;
// it is reserved for payment confirmation.
func (o *Order) MarkPaid(chargeID, receiptURL string) {
	now := time.Now()
	o.Status = StatusPaid
	o.Paid = true
	o.PaidAt = &now
	o.ChargeID = chargeID
	o.ReceiptURL = receiptURL
	o.UpdatedAt = now
}
