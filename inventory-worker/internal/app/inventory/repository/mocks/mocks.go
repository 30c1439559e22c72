package mocks

import (
	"context"
	"time"

	"bikeshop/inventory-worker/internal/app/inventory/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockInventoryRepository мок для InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) SetStock(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error) {
	args := m.Called(ctx, optionID, quantity, outOfStock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) AdjustStock(ctx context.Context, optionID uuid.UUID, delta int) (*entity.InventoryItem, error) {
	args := m.Called(ctx, optionID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InventoryItem), args.Error(1)
}

// MockCartRepository мок для CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
