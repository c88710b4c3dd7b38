package adapters

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"orders-ms/internal/orders/application"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/events"
	"orders-ms/pkg/logger"
	"orders-ms/pkg/rabbitmq"
)

// PaymentSucceededConsumer consumes payment.succeeded events and
// drives the order's paid transition
type PaymentSucceededConsumer struct {
	consumer *rabbitmq.Consumer
	useCase  *application.OrderUseCase
	log      *logger.Logger
}

// NewPaymentSucceededConsumer creates a consumer bound to the payments
// exchange
func NewPaymentSucceededConsumer(conn *rabbitmq.Connection, useCase *application.OrderUseCase, log *logger.Logger) (*PaymentSucceededConsumer, error) {
	consumer, err := rabbitmq.NewConsumer(
		conn,
		"orders.payment-succeeded", // queue name
		events.ExchangePayments,    // exchange
		[]string{events.RoutingKeyPaymentSucceeded},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &PaymentSucceededConsumer{
		consumer: consumer,
		useCase:  useCase,
		log:      log,
	}, nil
}

// Start starts consuming payment.succeeded events
func (c *PaymentSucceededConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *PaymentSucceededConsumer) handleMessage(ctx context.Context, body []byte) error {
	var event events.PaymentSucceededEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.WithContext(ctx).Error("failed to unmarshal PaymentSucceededEvent",
			zap.Error(err),
		)
		// Poison message, requeueing cannot fix it.
		return nil
	}

	err := c.useCase.HandlePaymentSucceeded(ctx, application.PaymentSucceededInput{
		OrderID:    event.OrderID,
		ChargeID:   event.ChargeID,
		ReceiptURL: event.ReceiptURL,
	})
	if err != nil {
		// There is no caller to reply to; surface the fault here. A
		// confirmation for an unknown order will never succeed, so it
		// is logged and dropped rather than requeued.
		if errors.Is(err, errors.CodeNotFound) {
			c.log.WithContext(ctx).Error("payment confirmation for unknown order",
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
			return nil
		}
		return err
	}

	return nil
}
