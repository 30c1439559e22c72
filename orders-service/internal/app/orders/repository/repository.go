package repository

import (
	"context"
	"errors"

	"bikeshop/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями в одной транзакции
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
	// List все заказы, пустой status означает без фильтра
	List(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
	// UpdateStatus меняет статус, только если текущий равен from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}
