package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"orders-ms/pkg/errors"
	"orders-ms/pkg/logger"
	"orders-ms/pkg/metrics"
)

const (
	// replyToQueue is RabbitMQ's direct reply-to pseudo-queue.
	replyToQueue = "amq.rabbitmq.reply-to"

	// faultHeader marks a reply body as a FaultReply instead of a result.
	faultHeader = "x-fault"
)

// Requester performs request/reply calls over the bus. Each call is
// single-flight: it suspends until exactly one reply arrives or the
// context expires, with no retry.
type Requester struct {
	conn    *Connection
	log     *logger.Logger
	mu      sync.Mutex
	pending map[string]chan amqp.Delivery
}

// NewRequester creates a requester and starts its reply dispatcher
func NewRequester(conn *Connection, log *logger.Logger) (*Requester, error) {
	r := &Requester{
		conn:    conn,
		log:     log,
		pending: make(map[string]chan amqp.Delivery),
	}

	// Direct reply-to requires auto-ack.
	replies, err := conn.Channel().Consume(
		replyToQueue,
		"",    // consumer
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume reply queue: %w", err)
	}

	go r.dispatch(replies)

	return r, nil
}

func (r *Requester) dispatch(replies <-chan amqp.Delivery) {
	for d := range replies {
		r.mu.Lock()
		ch, ok := r.pending[d.CorrelationId]
		if ok {
			delete(r.pending, d.CorrelationId)
		}
		r.mu.Unlock()

		if !ok {
			// Reply arrived after the caller gave up.
			r.log.Warn("dropping unmatched reply",
				zap.String("correlation_id", d.CorrelationId),
			)
			continue
		}
		ch <- d
	}
}

// Request sends a payload to an operation queue and waits for the reply.
// The context must carry a deadline; remote faults come back as AppErrors.
func (r *Requester) Request(ctx context.Context, operation string, payload interface{}) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.NewInternal("bus request without deadline", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewInternal("failed to marshal request", err)
	}

	corrID := uuid.New().String()
	replyCh := make(chan amqp.Delivery, 1)

	r.mu.Lock()
	r.pending[corrID] = replyCh
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, corrID)
		r.mu.Unlock()
	}()

	err = r.conn.Channel().PublishWithContext(
		ctx,
		"",        // default exchange
		operation, // operation queue
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			Body:          body,
			CorrelationId: corrID,
			ReplyTo:       replyToQueue,
			Headers: amqp.Table{
				"x-trace-id": logger.GetTraceID(ctx),
			},
		},
	)
	if err != nil {
		return nil, errors.NewUnavailable("failed to publish request", err)
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewUnavailable(
			fmt.Sprintf("no reply for %s", operation), ctx.Err())
	case d := <-replyCh:
		if isFault(d) {
			var fault errors.FaultReply
			if err := json.Unmarshal(d.Body, &fault); err != nil {
				return nil, errors.NewInternal("malformed fault reply", err)
			}
			return nil, errors.FromFaultReply(fault)
		}
		return d.Body, nil
	}
}

func isFault(d amqp.Delivery) bool {
	v, ok := d.Headers[faultHeader].(bool)
	return ok && v
}

// HandlerFunc handles one bus operation. The returned value is
// marshalled as the reply; a returned error becomes a fault reply.
type HandlerFunc func(ctx context.Context, body []byte) (interface{}, error)

// Server consumes operation queues and replies to requesters
type Server struct {
	conn     *Connection
	log      *logger.Logger
	timeout  time.Duration
	handlers map[string]HandlerFunc
}

// NewServer creates a bus server. timeout bounds each handler call.
func NewServer(conn *Connection, timeout time.Duration, log *logger.Logger) *Server {
	return &Server{
		conn:     conn,
		log:      log,
		timeout:  timeout,
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers a handler for an operation queue
func (s *Server) Handle(operation string, h HandlerFunc) {
	s.handlers[operation] = h
}

// Start declares one queue per registered operation and begins
// consuming, one goroutine per operation
func (s *Server) Start(ctx context.Context) error {
	ch := s.conn.Channel()

	if err := ch.Qos(50, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	for operation, handler := range s.handlers {
		_, err := ch.QueueDeclare(
			operation,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", operation, err)
		}

		deliveries, err := ch.Consume(
			operation,
			"",    // consumer
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to consume %s: %w", operation, err)
		}

		go s.serve(ctx, operation, handler, deliveries)
	}

	s.log.Info("bus server started", zap.Int("operations", len(s.handlers)))
	return nil
}

func (s *Server) serve(ctx context.Context, operation string, handler HandlerFunc, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			s.handleDelivery(ctx, operation, handler, d)
		}
	}
}

func (s *Server) handleDelivery(ctx context.Context, operation string, handler HandlerFunc, d amqp.Delivery) {
	traceID := ""
	if tid, ok := d.Headers["x-trace-id"].(string); ok {
		traceID = tid
	}
	msgCtx := logger.WithTraceIDContext(ctx, traceID)
	msgCtx, cancel := context.WithTimeout(msgCtx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := handler(msgCtx, d.Body)
	metrics.BusDuration.WithLabelValues(operation).
		Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.BusRequests.WithLabelValues(operation, "fault").Inc()
		s.log.WithContext(msgCtx).Warn("operation fault",
			zap.String("operation", operation),
			zap.Error(err),
		)
		s.reply(msgCtx, d, errors.ToFaultReply(err), true)
	} else {
		metrics.BusRequests.WithLabelValues(operation, "ok").Inc()
		s.reply(msgCtx, d, result, false)
	}

	// The reply carries the outcome either way; the request is done.
	d.Ack(false)
}

func (s *Server) reply(ctx context.Context, d amqp.Delivery, payload interface{}, fault bool) {
	if d.ReplyTo == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.log.WithContext(ctx).Error("failed to marshal reply", zap.Error(err))
		return
	}

	headers := amqp.Table{}
	if fault {
		headers[faultHeader] = true
	}

	err = s.conn.Channel().PublishWithContext(
		ctx,
		"",        // default exchange
		d.ReplyTo, // requester's reply queue
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			Body:          body,
			CorrelationId: d.CorrelationId,
			Headers:       headers,
		},
	)
	if err != nil {
		s.log.WithContext(ctx).Error("failed to publish reply", zap.Error(err))
	}
}
