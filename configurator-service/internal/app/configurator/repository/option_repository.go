package repository

import (
	"context"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

// Create сохраняет опцию и ее InventoryItem в одной транзакции
func (r *optionRepository) Create(ctx context.Context, option *entity.Option) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("InventoryItem").Create(option).Error; err != nil {
			return err
		}
		if option.InventoryItem != nil {
			option.InventoryItem.ProductOptionID = option.ID
			return tx.Create(option.InventoryItem).Error
		}
		return nil
	})
	if err != nil {
		return translate(err, ErrOptionNotFound)
	}
	option.InStock = option.IsInStock()
	return nil
}

func (r *optionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Option, error) {
	var option entity.Option
	if err := r.db.WithContext(ctx).Preload("InventoryItem").First(&option, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrOptionNotFound)
	}
	option.InStock = option.IsInStock()
	return &option, nil
}

func (r *optionRepository) GetAll(ctx context.Context) ([]entity.Option, error) {
	options := make([]entity.Option, 0)
	err := r.db.WithContext(ctx).
		Preload("InventoryItem").
		Order("option_group_id, created_at ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	for i := range options {
		options[i].InStock = options[i].IsInStock()
	}
	return options, nil
}

func (r *optionRepository) Update(ctx context.Context, option *entity.Option) error {
	result := r.db.WithContext(ctx).Model(&entity.Option{}).
		Where("id = ?", option.ID).
		Updates(map[string]interface{}{
			"name":         option.Name,
			"display_name": option.DisplayName,
			"base_price":   option.BasePrice,
			"is_active":    option.IsActive,
			"updated_at":   option.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, ErrOptionNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionNotFound
	}
	return nil
}

func (r *optionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Option{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, ErrOptionNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionNotFound
	}
	return nil
}

// SetInventory upsert по product_option_id
func (r *optionRepository) SetInventory(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Option{}).Where("id = ?", optionID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrOptionNotFound
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:              uuid.New(),
		Quantity:        quantity,
		OutOfStock:      outOfStock,
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
		return nil, translate(err, ErrOptionNotFound)
	}
	return item, nil
}
