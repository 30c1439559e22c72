package service

import (
	"context"

	"bikeshop/inventory-worker/internal/app/inventory/entity"
)

// InventoryServiceInterface применяет события склада к остаткам
type InventoryServiceInterface interface {
	ProcessEvent(ctx context.Context, event *entity.InventoryEvent) error
}

// CartCleanupServiceInterface удаляет брошенные корзины
type CartCleanupServiceInterface interface {
	PurgeAbandoned(ctx context.Context) (int64, error)
}
