package application

import (
	"context"
	"encoding/json"
	"testing"

	"orders-ms/internal/orders/domain"
	"orders-ms/internal/orders/ports"
	"orders-ms/pkg/errors"
	"orders-ms/pkg/logger"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	orders        []*domain.Order
	byID          map[string]*domain.Order
	updateCalls   int
	markPaidCalls int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		byID: make(map[string]*domain.Order),
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.orders = append(m.orders, order)
	m.byID[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := m.byID[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	return order, nil
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	var matching []*domain.Order
	for _, order := range m.orders {
		if filter.Status == "" || order.Status == filter.Status {
			matching = append(matching, order)
		}
	}

	total := int64(len(matching))

	if filter.Offset >= len(matching) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[filter.Offset:end], total, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := m.byID[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	m.updateCalls++
	order.Status = status
	return order, nil
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, order *domain.Order) error {
	stored, ok := m.byID[order.ID]
	if !ok {
		return domain.NewOrderNotFound(order.ID)
	}
	m.markPaidCalls++
	*stored = *order
	return nil
}

// MockCatalogClient is a mock implementation of CatalogClient
type MockCatalogClient struct {
	products map[int64]ports.Product
	err      error
}

func NewMockCatalogClient(products ...ports.Product) *MockCatalogClient {
	byID := make(map[int64]ports.Product)
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MockCatalogClient{products: byID}
}

func (m *MockCatalogClient) ValidateProducts(ctx context.Context, ids []int64) ([]ports.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []ports.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockPaymentClient is a mock implementation of PaymentClient
type MockPaymentClient struct {
	session  json.RawMessage
	err      error
	requests []ports.SessionRequest
}

func (m *MockPaymentClient) CreateSession(ctx context.Context, req ports.SessionRequest) (json.RawMessage, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// MockEventPublisher records published order events
type MockEventPublisher struct {
	published []*domain.Order
	err       error
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	m.published = append(m.published, order)
	return m.err
}

func newTestUseCase(repo *MockOrderRepository, catalog *MockCatalogClient, payment *MockPaymentClient) *OrderUseCase {
	log := logger.New("test", "debug", "json")
	return NewOrderUseCase(repo, catalog, payment, &MockEventPublisher{}, "usd", log)
}

func TestCreateOrder_Success(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(
		ports.Product{ID: 1, Name: "A", Price: 10},
		ports.Product{ID: 2, Name: "B", Price: 5},
	)
	payment := &MockPaymentClient{session: json.RawMessage(`{"url":"https://pay.example/s1"}`)}
	useCase := newTestUseCase(repo, catalog, payment)

	// Client-supplied prices are zero and must be ignored.
	input := CreateOrderInput{
		Items: []CreateOrderItemInput{
			{ProductID: 1, Quantity: 2, Price: 0},
			{ProductID: 2, Quantity: 1, Price: 0},
		},
	}

	// Act
	output, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Order.TotalAmount != 25 {
		t.Errorf("expected totalAmount 25, got %f", output.Order.TotalAmount)
	}
	if output.Order.TotalItems != 3 {
		t.Errorf("expected totalItems 3, got %d", output.Order.TotalItems)
	}
	if output.Order.Items[0].Name != "A" {
		t.Errorf("expected first item enriched with name A, got %q", output.Order.Items[0].Name)
	}
	if output.Order.Items[0].Price != 10 {
		t.Errorf("expected catalog price snapshot 10, got %f", output.Order.Items[0].Price)
	}
	if string(output.PaymentSession) != `{"url":"https://pay.example/s1"}` {
		t.Errorf("unexpected payment session %s", output.PaymentSession)
	}

	if len(repo.orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(repo.orders))
	}
	if repo.orders[0].Status != domain.StatusPending {
		t.Errorf("expected persisted status PENDING, got %s", repo.orders[0].Status)
	}

	if len(payment.requests) != 1 {
		t.Fatalf("expected 1 payment session request, got %d", len(payment.requests))
	}
	req := payment.requests[0]
	if req.OrderID != repo.orders[0].ID {
		t.Errorf("expected session for order %s, got %s", repo.orders[0].ID, req.OrderID)
	}
	if req.Currency != "usd" {
		t.Errorf("expected currency usd, got %s", req.Currency)
	}
	if req.Items[0].Name != "A" || req.Items[0].Price != 10 {
		t.Errorf("expected enriched session items, got %+v", req.Items[0])
	}
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	payment := &MockPaymentClient{session: json.RawMessage(`{}`)}
	publisher := &MockEventPublisher{}
	log := logger.New("test", "debug", "json")
	useCase := NewOrderUseCase(repo, catalog, payment, publisher, "usd", log)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: 1, Quantity: 2}},
	}

	// Act
	output, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	if publisher.published[0].ID != output.Order.ID {
		t.Errorf("expected event for order %s, got %s", output.Order.ID, publisher.published[0].ID)
	}
}

func TestCreateOrder_ValidationFailureDoesNotPublish(t *testing.T) {
	// Arrange: catalog has no products, so validation fails
	repo := NewMockOrderRepository()
	publisher := &MockEventPublisher{}
	log := logger.New("test", "debug", "json")
	useCase := NewOrderUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{}, publisher, "usd", log)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: 1, Quantity: 1}},
	}

	// Act
	_, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(publisher.published) != 0 {
		t.Errorf("expected no published events, got %d", len(publisher.published))
	}
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	// Arrange: the publisher errors but the order must still be created
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	payment := &MockPaymentClient{session: json.RawMessage(`{}`)}
	publisher := &MockEventPublisher{err: errors.NewUnavailable("broker down", nil)}
	log := logger.New("test", "debug", "json")
	useCase := NewOrderUseCase(repo, catalog, payment, publisher, "usd", log)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: 1, Quantity: 1}},
	}

	// Act
	output, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.Order.ID == "" {
		t.Error("expected a persisted order despite publish failure")
	}
	if len(repo.orders) != 1 {
		t.Errorf("expected 1 persisted order, got %d", len(repo.orders))
	}
}

func TestCreateOrder_MissingProduct(t *testing.T) {
	// Arrange: catalog knows product 1 but not product 2
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	payment := &MockPaymentClient{}
	useCase := newTestUseCase(repo, catalog, payment)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}

	// Act
	_, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	if len(repo.orders) != 0 {
		t.Errorf("expected zero persisted orders, got %d", len(repo.orders))
	}
	if len(payment.requests) != 0 {
		t.Errorf("expected no payment session request, got %d", len(payment.requests))
	}
}

func TestCreateOrder_CatalogFailure(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient()
	catalog.err = errors.NewUnavailable("no reply for validate_product", nil)
	payment := &MockPaymentClient{}
	useCase := newTestUseCase(repo, catalog, payment)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: 1, Quantity: 1}},
	}

	// Act
	_, err := useCase.CreateOrder(context.Background(), input)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected client-fault classification, got %v", err)
	}

	if len(repo.orders) != 0 {
		t.Errorf("expected zero persisted orders, got %d", len(repo.orders))
	}
}

func TestCreateOrder_PaymentFailureKeepsOrder(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	payment := &MockPaymentClient{err: errors.NewUnavailable("payment service down", nil)}
	useCase := newTestUseCase(repo, catalog, payment)

	input := CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: 1, Quantity: 1}},
	}

	// Act
	_, err := useCase.CreateOrder(context.Background(), input)

	// Assert: the fault reaches the caller but the order survives
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeUnavailable) {
		t.Errorf("expected unavailable error, got %v", err)
	}

	if len(repo.orders) != 1 {
		t.Fatalf("expected the order to remain persisted, got %d orders", len(repo.orders))
	}
}

func TestFindOne_Success(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	useCase := newTestUseCase(repo, catalog, &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 2, Price: 10}})
	repo.Create(context.Background(), order)

	// Act
	view, err := useCase.FindOne(context.Background(), order.ID)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view.ID != order.ID {
		t.Errorf("expected id %s, got %s", order.ID, view.ID)
	}
	if view.Items[0].Name != "A" {
		t.Errorf("expected enriched name A, got %q", view.Items[0].Name)
	}
}

func TestFindOne_NotFound(t *testing.T) {
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	_, err := useCase.FindOne(context.Background(), "b2c7f482-0000-0000-0000-000000000000")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestFindOne_CatalogFailure(t *testing.T) {
	// Arrange: the order exists but the catalog is down; the result
	// must be a fault, never a half-enriched order.
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient()
	catalog.err = errors.NewUnavailable("no reply for validate_product", nil)
	useCase := newTestUseCase(repo, catalog, &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	repo.Create(context.Background(), order)

	// Act
	view, err := useCase.FindOne(context.Background(), order.ID)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if view != nil {
		t.Error("expected no partial result")
	}
}

func TestFindAll_Pagination(t *testing.T) {
	// Arrange: 25 orders, limit 10
	repo := NewMockOrderRepository()
	for i := 0; i < 25; i++ {
		order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: int64(i + 1), Quantity: 1, Price: 1}})
		repo.Create(context.Background(), order)
	}
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	// Act
	first, err := useCase.FindAll(context.Background(), FindAllInput{
		Page: PageRequest{Page: 1, Limit: 10},
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(first.Data) != 10 {
		t.Errorf("expected 10 records on page 1, got %d", len(first.Data))
	}
	if first.Meta.Total != 25 {
		t.Errorf("expected total 25, got %d", first.Meta.Total)
	}
	if first.Meta.LastPage != 3 {
		t.Errorf("expected lastPage 3, got %d", first.Meta.LastPage)
	}

	// A page beyond the last yields an empty page, not an error.
	beyond, err := useCase.FindAll(context.Background(), FindAllInput{
		Page: PageRequest{Page: 4, Limit: 10},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(beyond.Data) != 0 {
		t.Errorf("expected empty page, got %d records", len(beyond.Data))
	}
	if beyond.Meta.Total != 25 {
		t.Errorf("expected total 25 on empty page, got %d", beyond.Meta.Total)
	}
}

func TestFindAll_StatusFilter(t *testing.T) {
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	for i := 0; i < 3; i++ {
		order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: int64(i + 1), Quantity: 1, Price: 1}})
		repo.Create(context.Background(), order)
	}
	paid, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 9, Quantity: 1, Price: 1}})
	paid.MarkPaid("ch_1", "")
	repo.Create(context.Background(), paid)

	output, err := useCase.FindAll(context.Background(), FindAllInput{
		Status: domain.StatusPaid,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.Meta.Total != 1 {
		t.Errorf("expected total 1, got %d", output.Meta.Total)
	}
	if len(output.Data) != 1 || output.Data[0].ID != paid.ID {
		t.Errorf("expected only the paid order, got %+v", output.Data)
	}
}

func TestFindAll_InvalidStatus(t *testing.T) {
	useCase := newTestUseCase(NewMockOrderRepository(), NewMockCatalogClient(), &MockPaymentClient{})

	_, err := useCase.FindAll(context.Background(), FindAllInput{Status: "SHIPPED"})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestChangeStatus_Idempotent(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	repo.Create(context.Background(), order)

	// Act: request the status the order already has
	returned, err := useCase.ChangeStatus(context.Background(), order.ID, domain.StatusPending)

	// Assert: no store write, order returned unchanged
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Errorf("expected no store write, got %d", repo.updateCalls)
	}
	if returned.ID != order.ID || returned.Status != domain.StatusPending {
		t.Errorf("expected unchanged order, got %+v", returned)
	}
}

func TestChangeStatus_Transition(t *testing.T) {
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	repo.Create(context.Background(), order)

	returned, err := useCase.ChangeStatus(context.Background(), order.ID, domain.StatusCancelled)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if returned.Status != domain.StatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", returned.Status)
	}
	if repo.updateCalls != 1 {
		t.Errorf("expected 1 store write, got %d", repo.updateCalls)
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	useCase := newTestUseCase(NewMockOrderRepository(), NewMockCatalogClient(), &MockPaymentClient{})

	_, err := useCase.ChangeStatus(context.Background(), "missing", domain.StatusCancelled)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestChangeStatus_InvalidStatus(t *testing.T) {
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	repo.Create(context.Background(), order)

	_, err := useCase.ChangeStatus(context.Background(), order.ID, "SHIPPED")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Errorf("expected no store write, got %d", repo.updateCalls)
	}
}

func TestHandlePaymentSucceeded(t *testing.T) {
	// Arrange: two orders; the event references only the first
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	target, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	other, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 2, Quantity: 1, Price: 5}})
	repo.Create(context.Background(), target)
	repo.Create(context.Background(), other)

	// Act
	err := useCase.HandlePaymentSucceeded(context.Background(), PaymentSucceededInput{
		OrderID:    target.ID,
		ChargeID:   "ch_42",
		ReceiptURL: "https://receipts.example/42",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), target.ID)
	if stored.Status != domain.StatusPaid {
		t.Errorf("expected status PAID, got %s", stored.Status)
	}
	if stored.ChargeID != "ch_42" {
		t.Errorf("expected charge id recorded, got %q", stored.ChargeID)
	}
	if stored.PaidAt == nil {
		t.Error("expected PaidAt to be set")
	}

	untouched, _ := repo.GetByID(context.Background(), other.ID)
	if untouched.Status != domain.StatusPending {
		t.Errorf("expected other order untouched, got %s", untouched.Status)
	}
}

func TestHandlePaymentSucceeded_NotFound(t *testing.T) {
	useCase := newTestUseCase(NewMockOrderRepository(), NewMockCatalogClient(), &MockPaymentClient{})

	err := useCase.HandlePaymentSucceeded(context.Background(), PaymentSucceededInput{
		OrderID: "b2c7f482-0000-0000-0000-000000000000",
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestHandlePaymentSucceeded_AlreadyPaid(t *testing.T) {
	// Arrange: redelivered confirmation for an already-paid order
	repo := NewMockOrderRepository()
	useCase := newTestUseCase(repo, NewMockCatalogClient(), &MockPaymentClient{})

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	order.MarkPaid("ch_1", "")
	repo.Create(context.Background(), order)

	// Act
	err := useCase.HandlePaymentSucceeded(context.Background(), PaymentSucceededInput{
		OrderID:  order.ID,
		ChargeID: "ch_2",
	})

	// Assert: no error, no second write, original charge kept
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.markPaidCalls != 0 {
		t.Errorf("expected no store write, got %d", repo.markPaidCalls)
	}
	stored, _ := repo.GetByID(context.Background(), order.ID)
	if stored.ChargeID != "ch_1" {
		t.Errorf("expected original charge id kept, got %q", stored.ChargeID)
	}
}

func TestCreatePaymentSession_Reconciliation(t *testing.T) {
	// Arrange: an order persisted without a session
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 1, Name: "A", Price: 10})
	payment := &MockPaymentClient{session: json.RawMessage(`{"url":"https://pay.example/s2"}`)}
	useCase := newTestUseCase(repo, catalog, payment)

	order, _ := domain.NewOrder([]domain.OrderItem{{ProductID: 1, Quantity: 2, Price: 10}})
	repo.Create(context.Background(), order)

	// Act
	session, err := useCase.CreatePaymentSession(context.Background(), order.ID)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(session) != `{"url":"https://pay.example/s2"}` {
		t.Errorf("unexpected session %s", session)
	}
	if len(payment.requests) != 1 {
		t.Fatalf("expected 1 payment request, got %d", len(payment.requests))
	}
	if payment.requests[0].Items[0].Name != "A" {
		t.Errorf("expected enriched item name, got %+v", payment.requests[0].Items[0])
	}
}

func TestCreateOrder_DuplicateProductIDs(t *testing.T) {
	// Two lines for the same product validate once and both get the
	// catalog price.
	repo := NewMockOrderRepository()
	catalog := NewMockCatalogClient(ports.Product{ID: 7, Name: "G", Price: 3})
	payment := &MockPaymentClient{session: json.RawMessage(`{}`)}
	useCase := newTestUseCase(repo, catalog, payment)

	output, err := useCase.CreateOrder(context.Background(), CreateOrderInput{
		Items: []CreateOrderItemInput{
			{ProductID: 7, Quantity: 1},
			{ProductID: 7, Quantity: 2},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.Order.TotalAmount != 9 {
		t.Errorf("expected totalAmount 9, got %f", output.Order.TotalAmount)
	}
	if output.Order.TotalItems != 3 {
		t.Errorf("expected totalItems 3, got %d", output.Order.TotalItems)
	}
}
