package domain

import (
	"testing"

	"orders-ms/pkg/errors"
)

func TestNewOrder_ComputesTotals(t *testing.T) {
	// Arrange
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: 10},
		{ProductID: 2, Quantity: 1, Price: 5},
	}

	// Act
	order, err := NewOrder(items)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.TotalAmount != 25 {
		t.Errorf("expected TotalAmount 25, got %f", order.TotalAmount)
	}

	if order.TotalItems != 3 {
		t.Errorf("expected TotalItems 3, got %d", order.TotalItems)
	}

	if order.Status != StatusPending {
		t.Errorf("expected status PENDING, got %s", order.Status)
	}

	if order.ID == "" {
		t.Error("expected a generated order id")
	}
}

func TestNewOrder_EmptyItems(t *testing.T) {
	_, err := NewOrder(nil)

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestNewOrder_InvalidItem(t *testing.T) {
	tests := []struct {
		name string
		item OrderItem
	}{
		{"zero product id", OrderItem{ProductID: 0, Quantity: 1, Price: 10}},
		{"zero quantity", OrderItem{ProductID: 1, Quantity: 0, Price: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder([]OrderItem{tt.item})

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.CodeValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestOrder_ProductIDs_Distinct(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 1, Price: 10},
			{ProductID: 2, Quantity: 1, Price: 5},
			{ProductID: 1, Quantity: 3, Price: 10},
		},
	}

	ids := order.ProductIDs()

	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct ids, got %d", len(ids))
	}
	if ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected [1 2], got %v", ids)
	}
}

func TestOrder_MarkPaid(t *testing.T) {
	order, _ := NewOrder([]OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})

	order.MarkPaid("ch_123", "https://receipts.example/123")

	if order.Status != StatusPaid {
		t.Errorf("expected status PAID, got %s", order.Status)
	}
	if !order.Paid {
		t.Error("expected paid flag set")
	}
	if order.PaidAt == nil {
		t.Error("expected PaidAt to be set")
	}
	if order.ChargeID != "ch_123" {
		t.Errorf("expected charge id ch_123, got %s", order.ChargeID)
	}
	if order.ReceiptURL != "https://receipts.example/123" {
		t.Errorf("unexpected receipt url %s", order.ReceiptURL)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusPaid, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}

	if ValidStatus("SHIPPED") {
		t.Error("expected SHIPPED to be invalid")
	}
	if ValidStatus("") {
		t.Error("expected empty status to be invalid")
	}
}
