package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/orders-service/internal/app/orders/entity"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const metricsService = "orders-service"

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository репозиторий заказов в PostgreSQL
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "orders")
	defer timer.ObserveDuration()

	// GORM сохраняет ассоциации Items в той же транзакции
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpInsert)
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []entity.Order
	if err := query.Find(&orders).Error; err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, "orders")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if count == 0 {
			return ErrOrderNotFound
		}
		return ErrStatusConflict
	}
	return nil
}
