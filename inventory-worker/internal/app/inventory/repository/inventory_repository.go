package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/inventory-worker/internal/app/inventory/entity"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const metricsService = "inventory-worker"

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository работает с inventory_items через GORM
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// SetStock upsert по product_option_id; нулевой остаток всегда помечается outOfStock
func (r *inventoryRepository) SetStock(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "inventory_items")
	defer timer.ObserveDuration()

	if err := r.ensureOption(r.db.WithContext(ctx), optionID); err != nil {
		return nil, err
	}

	quantity = entity.ClampQuantity(quantity)
	now := time.Now()
	item := &entity.InventoryItem{
		ID:              uuid.New(),
		Quantity:        quantity,
		OutOfStock:      outOfStock || quantity == 0,
		ProductOptionID: optionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "product_option_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity", "out_of_stock", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(item).Error
	if err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpInsert)
		return nil, fmt.Errorf("failed to upsert inventory item: %w", err)
	}
	return item, nil
}

// AdjustStock блокирует строку остатка и применяет delta.
// Флаг outOfStock, выставленный вручную при ненулевом остатке, сохраняется;
// выставленный из-за нулевого остатка снимается при пополнении.
func (r *inventoryRepository) AdjustStock(ctx context.Context, optionID uuid.UUID, delta int) (*entity.InventoryItem, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, "inventory_items")
	defer timer.ObserveDuration()

	var result entity.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.InventoryItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_option_id = ?", optionID).
			First(&item).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := r.ensureOption(tx, optionID); err != nil {
				return err
			}
			quantity := entity.ClampQuantity(delta)
			now := time.Now()
			result = entity.InventoryItem{
				ID:              uuid.New(),
				Quantity:        quantity,
				OutOfStock:      quantity == 0,
				ProductOptionID: optionID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			return tx.Create(&result).Error
		case err != nil:
			return err
		}

		manualFlag := item.OutOfStock && item.Quantity > 0
		item.Quantity = entity.ClampQuantity(item.Quantity + delta)
		item.OutOfStock = manualFlag || item.Quantity == 0
		item.UpdatedAt = time.Now()

		if err := tx.Model(&entity.InventoryItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity":     item.Quantity,
				"out_of_stock": item.OutOfStock,
				"updated_at":   item.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOptionNotFound) {
			return nil, err
		}
		metrics.RecordDbError(metricsService, metrics.DbOpUpdate)
		return nil, fmt.Errorf("failed to adjust inventory: %w", err)
	}
	return &result, nil
}

// ensureOption остатки ведутся только для существующих опций
func (r *inventoryRepository) ensureOption(db *gorm.DB, optionID uuid.UUID) error {
	var count int64
	if err := db.Table("product_options").Where("id = ?", optionID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product option: %w", err)
	}
	if count == 0 {
		return ErrOptionNotFound
	}
	return nil
}
