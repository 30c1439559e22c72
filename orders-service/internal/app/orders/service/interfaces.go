package service

import (
	"context"

	"bikeshop/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

type OrderServiceInterface interface {
	Checkout(ctx context.Context, userID uuid.UUID, authToken string) (*entity.Order, error)
	GetOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*entity.Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
	ListOrders(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
	CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
