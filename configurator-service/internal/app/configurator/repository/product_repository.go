package repository

import (
	"context"
	"errors"
	"fmt"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(r.db.WithContext(ctx).Omit("Category", "OptionGroups").Create(product).Error, ErrProductNotFound)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrProductNotFound)
	}
	return &product, nil
}

// GetWithOptions загружает полный граф товара: группы по позиции, опции, инвентарь
// Каждый вызов читает БД заново, кеширования нет
func (r *productRepository) GetWithOptions(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	product, err := loadProductGraph(r.db.WithContext(ctx), id)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		}
		return nil, err
	}
	return product, nil
}

// loadProductGraph группы по позиции, опции по дате создания, инвентарь опций
func loadProductGraph(db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := db.
		Preload("Category").
		Preload("OptionGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("OptionGroups.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("OptionGroups.Options.InventoryItem").
		First(&product, "id = ?", id).Error
	if err != nil {
		if translated := translate(err, ErrProductNotFound); translated != ErrProductNotFound {
			return nil, fmt.Errorf("failed to load product graph: %w", translated)
		}
		return nil, ErrProductNotFound
	}

	product.RefreshStock()
	return &product, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	products := make([]entity.Product, 0)
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"base_price":  product.BasePrice,
			"is_active":   product.IsActive,
			"type":        product.Type,
			"category_id": product.CategoryID,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, ErrProductNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete удаляет товар; группы, опции и инвентарь удаляются через CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpDelete, "products")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)
	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpDelete)
		return translate(result.Error, ErrProductNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
