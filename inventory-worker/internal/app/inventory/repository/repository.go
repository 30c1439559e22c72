package repository

import (
	"context"
	"errors"
	"time"

	"bikeshop/inventory-worker/internal/app/inventory/entity"

	"github.com/google/uuid"
)

var ErrOptionNotFound = errors.New("product option not found")

// InventoryRepository складские остатки в PostgreSQL
type InventoryRepository interface {
	// SetStock заменяет остаток опции, создавая запись при необходимости
	SetStock(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error)

	// AdjustStock прибавляет delta к остатку в одной транзакции
	AdjustStock(ctx context.Context, optionID uuid.UUID, delta int) (*entity.InventoryItem, error)
}

// CartRepository корзины покупателей в MongoDB
type CartRepository interface {
	// DeleteStale удаляет корзины, не обновлявшиеся с before
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
