package adapters

import (
	"context"
	"encoding/json"
	"time"

	"orders-ms/internal/orders/ports"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/events"
	"orders-ms/pkg/rabbitmq"
)

// BusCatalogClient implements CatalogClient over the message bus
type BusCatalogClient struct {
	requester *rabbitmq.Requester
	timeout   time.Duration
}

// NewBusCatalogClient creates a catalog client with an explicit
// round-trip timeout
func NewBusCatalogClient(requester *rabbitmq.Requester, timeout time.Duration) *BusCatalogClient {
	return &BusCatalogClient{
		requester: requester,
		timeout:   timeout,
	}
}

// ValidateProducts resolves product ids against the catalog service
func (c *BusCatalogClient) ValidateProducts(ctx context.Context, ids []int64) ([]ports.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.requester.Request(ctx, events.OpValidateProduct, ids)
	if err != nil {
		return nil, errors.Wrap(err, "product validation failed")
	}

	var products []ports.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, errors.NewInternal("malformed catalog reply", err)
	}

	return products, nil
}
