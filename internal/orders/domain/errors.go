package domain

import (
	"fmt"

	"orders-ms/pkg/errors"
)

// Domain-specific errors
var (
	ErrEmptyItems       = errors.NewValidation("order must contain at least one item", nil)
	ErrInvalidProductID = errors.NewValidation("productId must be a positive integer", nil)
	ErrInvalidQuantity  = errors.NewValidation("quantity must be a positive integer", nil)
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id string) error {
	return errors.NewNotFound("order", id)
}

// NewInvalidStatus creates a validation error listing the legal statuses
func NewInvalidStatus(s OrderStatus) error {
	return errors.NewValidation(
		fmt.Sprintf("status must be a valid status: %s", StatusNames()),
		map[string]interface{}{"status": string(s)},
	)
}

// NewProductsNotValidated creates the client fault for a create request
// referencing products the catalog could not resolve
func NewProductsNotValidated(ids []int64) error {
	return errors.NewValidation("some products were not found in the catalog",
		map[string]interface{}{"product_ids": ids},
	)
}
