package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"orders-ms/internal/orders/domain"
	"orders-ms/internal/orders/ports"
	"orders-ms/pkg/db"
	apperrors "orders-ms/pkg/errors"
)

// OrderModel is the GORM model for orders (persistence layer)
type OrderModel struct {
	ID          string             `gorm:"type:uuid;primaryKey"`
	Status      domain.OrderStatus `gorm:"size:20;not null;default:'PENDING';index"`
	TotalAmount float64            `gorm:"not null"`
	TotalItems  int                `gorm:"not null"`
	Paid        bool               `gorm:"not null;default:false"`
	PaidAt      *time.Time
	ChargeID    string           `gorm:"size:255"`
	ReceiptURL  string           `gorm:"size:512"`
	CreatedAt   time.Time        `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for order line items
type OrderItemModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   string  `gorm:"type:uuid;index;not null"`
	ProductID int64   `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *gorm.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate runs auto-migration for the order models
func (r *PostgresOrderRepository) Migrate() error {
	return r.db.AutoMigrate(&OrderModel{}, &OrderItemModel{})
}

// Create persists an order and its items in a single transaction.
// An order is never observable with a partial item set.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	err := db.Transaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return apperrors.NewInternal("failed to create order", err)
	}

	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves an order with its items
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// List returns a page of orders plus the total count matching the
// filter, in creation order. Items are not loaded on the listing path.
func (r *PostgresOrderRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewInternal("failed to count orders", err)
	}

	var models []OrderModel
	err := query.
		Order("created_at").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to list orders", err)
	}

	orders := make([]*domain.Order, len(models))
	for i := range models {
		orders[i] = toDomain(&models[i])
	}

	return orders, total, nil
}

// UpdateStatus sets the status of an existing order
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewOrderNotFound(id)
	}

	var model OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, apperrors.NewInternal("failed to reload order", err)
	}

	return toDomain(&model), nil
}

// MarkPaid records a payment confirmation with targeted column updates
func (r *PostgresOrderRepository) MarkPaid(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":      order.Status,
			"paid":        order.Paid,
			"paid_at":     order.PaidAt,
			"charge_id":   order.ChargeID,
			"receipt_url": order.ReceiptURL,
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to mark order paid", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewOrderNotFound(order.ID)
	}

	return nil
}

// toModel converts a domain entity to GORM models
func toModel(order *domain.Order) *OrderModel {
	items := make([]OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemModel{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderModel{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Paid:        order.Paid,
		PaidAt:      order.PaidAt,
		ChargeID:    order.ChargeID,
		ReceiptURL:  order.ReceiptURL,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Items:       items,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *OrderModel) *domain.Order {
	items := make([]domain.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &domain.Order{
		ID:          model.ID,
		Status:      model.Status,
		TotalAmount: model.TotalAmount,
		TotalItems:  model.TotalItems,
		Paid:        model.Paid,
		PaidAt:      model.PaidAt,
		ChargeID:    model.ChargeID,
		ReceiptURL:  model.ReceiptURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		Items:       items,
	}
}
