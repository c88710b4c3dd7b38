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

// BusPaymentClient implements PaymentClient over the message bus
type BusPaymentClient struct {
	requester *rabbitmq.Requester
	timeout   time.Duration
}

// NewBusPaymentClient creates a payment client with an explicit
// round-trip timeout
func NewBusPaymentClient(requester *rabbitmq.Requester, timeout time.Duration) *BusPaymentClient {
	return &BusPaymentClient{
		requester: requester,
		timeout:   timeout,
	}
}

// CreateSession requests a checkout session from the payment service.
// The session is opaque to this service and passed through verbatim.
func (c *BusPaymentClient) CreateSession(ctx context.Context, req ports.SessionRequest) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.requester.Request(ctx, events.OpCreatePaymentSession, req)
	if err != nil {
		return nil, errors.Wrap(err, "payment session request failed")
	}

	return json.RawMessage(body), nil
}
