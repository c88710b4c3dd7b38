package application

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"orders-ms/internal/orders/domain"
	"orders-ms/internal/orders/ports"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/logger"
)

// OrderUseCase orchestrates the order workflows. The store, catalog
// and payment collaborators are injected so the orchestrator stays
// testable with fakes.
type OrderUseCase struct {
	repo      ports.OrderRepository
	catalog   ports.CatalogClient
	payment   ports.PaymentClient
	publisher ports.EventPublisher
	currency  string
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	catalog ports.CatalogClient,
	payment ports.PaymentClient,
	publisher ports.EventPublisher,
	currency string,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		catalog:   catalog,
		payment:   payment,
		publisher: publisher,
		currency:  currency,
		log:       log,
	}
}

// CreateOrderItemInput is a requested line item. Price is advisory
// only: the catalog's price is authoritative and the client value is
// discarded.
type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// CreateOrderInput represents the input for creating an order
type CreateOrderInput struct {
	Items []CreateOrderItemInput
}

// CreateOrderOutput represents the output of creating an order
type CreateOrderOutput struct {
	Order          *OrderView
	PaymentSession json.RawMessage
}

// CreateOrder validates the requested products against the catalog,
// computes totals from catalog prices, persists the order atomically
// and requests a payment session. A catalog failure aborts with zero
// side effects; a payment failure leaves the persisted order in place
// and surfaces the fault to the caller.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}

	ids := distinctProductIDs(input.Items)

	products, err := uc.catalog.ValidateProducts(ctx, ids)
	if err != nil {
		return nil, errors.NewValidation("failed to validate order products",
			map[string]interface{}{"cause": err.Error()})
	}

	prices := make(map[int64]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewProductsNotValidated(missing)
	}

	items := make([]domain.OrderItem, len(input.Items))
	for i, in := range input.Items {
		items[i] = domain.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     prices[in.ProductID],
		}
	}

	order, err := domain.NewOrder(items)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to create order", err)
	}

	// Publish event (async, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order created event",
				zap.Error(err),
				zap.String("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order created",
		zap.String("order_id", order.ID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("total_items", order.TotalItems),
	)

	view := AssembleOrder(order, products)

	session, err := uc.createSession(ctx, view)
	if err != nil {
		// The order is already persisted; it survives without a
		// session and can be reconciled later.
		uc.log.WithContext(ctx).Error("failed to create payment session",
			zap.Error(err),
			zap.String("order_id", order.ID),
		)
		return nil, errors.Wrap(err, "failed to create payment session")
	}

	return &CreateOrderOutput{
		Order:          view,
		PaymentSession: session,
	}, nil
}

// FindOne retrieves an order by id with its items enriched by a fresh
// catalog lookup. A catalog failure here is surfaced, never a
// half-enriched result.
func (uc *OrderUseCase) FindOne(ctx context.Context, id string) (*OrderView, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := uc.catalog.ValidateProducts(ctx, order.ProductIDs())
	if err != nil {
		return nil, errors.NewValidation("failed to fetch order products",
			map[string]interface{}{"cause": err.Error()})
	}

	return AssembleOrder(order, products), nil
}

// FindAllInput represents the input for listing orders
type FindAllInput struct {
	Page   PageRequest
	Status domain.OrderStatus
}

// FindAllOutput is a page of raw order records plus pagination metadata
type FindAllOutput struct {
	Data []*domain.Order
	Meta PageMeta
}

// FindAll lists orders by the pagination policy with an optional
// status filter. No catalog enrichment happens on the listing path.
func (uc *OrderUseCase) FindAll(ctx context.Context, input FindAllInput) (*FindAllOutput, error) {
	if input.Status != "" && !domain.ValidStatus(input.Status) {
		return nil, domain.NewInvalidStatus(input.Status)
	}

	page := input.Page.Normalize()

	orders, total, err := uc.repo.List(ctx, ports.ListFilter{
		Status: input.Status,
		Offset: page.Offset(),
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, errors.NewInternal("failed to list orders", err)
	}

	return &FindAllOutput{
		Data: orders,
		Meta: page.Meta(total),
	}, nil
}

// ChangeStatus moves an order to a new status. Requesting the current
// status is idempotent: the order is returned unchanged with no store
// write.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.NewInvalidStatus(status)
	}

	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}

	updated, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
	)

	return updated, nil
}

// PaymentSucceededInput carries a payment confirmation
type PaymentSucceededInput struct {
	OrderID    string
	ChargeID   string
	ReceiptURL string
}

// HandlePaymentSucceeded transitions the referenced order to the
// terminal paid status and records the payment metadata. The event is
// fire-and-forget, so a fault is returned for the consumer to surface
// out of band.
func (uc *OrderUseCase) HandlePaymentSucceeded(ctx context.Context, input PaymentSucceededInput) error {
	order, err := uc.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return err
	}

	if order.Paid {
		// Redelivered confirmation for an already-paid order.
		uc.log.WithContext(ctx).Info("order already paid, skipping",
			zap.String("order_id", order.ID),
		)
		return nil
	}

	order.MarkPaid(input.ChargeID, input.ReceiptURL)

	if err := uc.repo.MarkPaid(ctx, order); err != nil {
		return errors.NewInternal("failed to mark order paid", err)
	}

	uc.log.WithContext(ctx).Info("order paid",
		zap.String("order_id", order.ID),
		zap.String("charge_id", input.ChargeID),
	)

	return nil
}

// CreatePaymentSession requests a fresh payment session for an order
// stuck without one (the reconciliation path for a payment failure
// during creation).
func (uc *OrderUseCase) CreatePaymentSession(ctx context.Context, orderID string) (json.RawMessage, error) {
	view, err := uc.FindOne(ctx, orderID)
	if err != nil {
		return nil, err
	}

	session, err := uc.createSession(ctx, view)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment session")
	}

	return session, nil
}

func (uc *OrderUseCase) createSession(ctx context.Context, view *OrderView) (json.RawMessage, error) {
	items := make([]ports.SessionItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = ports.SessionItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return uc.payment.CreateSession(ctx, ports.SessionRequest{
		OrderID:  view.ID,
		Currency: uc.currency,
		Items:    items,
	})
}

func distinctProductIDs(items []CreateOrderItemInput) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
