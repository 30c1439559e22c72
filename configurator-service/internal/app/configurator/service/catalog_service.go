package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/configurator-service/internal/app/configurator/util"
	"bikeshop/pkg/logger"

	"github.com/google/uuid"
)

// CatalogService категории, товары и группы опций
// Координирует репозитории, кеш категорий в Redis и события в Kafka
type CatalogService struct {
	categoryRepo    repository.CategoryRepository
	productRepo     repository.ProductRepository
	optionGroupRepo repository.OptionGroupRepository
	cache           util.CategoryCache
	cacheTTL        time.Duration
	events          eventPublisher
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	optionGroupRepo repository.OptionGroupRepository,
	cache util.CategoryCache,
	cacheTTL time.Duration,
	publisher util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo:    categoryRepo,
		productRepo:     productRepo,
		optionGroupRepo: optionGroupRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		events:          eventPublisher{publisher: publisher},
	}
}

// === CATEGORIES ===

func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategories(ctx)
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetAllCategories сначала читает кеш; промах или ошибка кеша ведут в БД
// Выборка по имени идет мимо кеша
func (s *CatalogService) GetAllCategories(ctx context.Context, name string) ([]entity.Category, error) {
	if name != "" {
		categories, err := s.categoryRepo.GetAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get categories: %w", err)
		}
		return categories, nil
	}

	categories, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories cache")
	} else if categories != nil {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategories(ctx)
	return category, nil
}

// DeleteCategory отказывает, пока на категорию ссылаются товары
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryHasProducts):
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategories(ctx)
	return nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}
}

// === PRODUCTS ===

func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if req.BasePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if _, err := s.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		IsActive:     boolOr(req.IsActive, true),
		Type:         req.Type,
		CategoryID:   req.CategoryID,
		OptionGroups: []entity.OptionGroup{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.events.publish(ctx, entity.EventProductUpdated, product.ID, &product.BasePrice)
	return product, nil
}

// GetProduct возвращает товар с полным графом опций и складским статусом
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetWithOptions(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		product.BasePrice = *req.BasePrice
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if _, err := s.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.events.publish(ctx, entity.EventProductUpdated, product.ID, &product.BasePrice)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.events.publish(ctx, entity.EventProductUpdated, id, nil)
	return nil
}

// === OPTION GROUPS ===

func (s *CatalogService) CreateOptionGroup(ctx context.Context, req *entity.CreateOptionGroupRequest) (*entity.OptionGroup, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	now := time.Now()
	group := &entity.OptionGroup{
		ID:          uuid.New(),
		Name:        req.Name,
		DisplayName: req.DisplayName,
		ProductID:   req.ProductID,
		Position:    req.Position,
		Options:     []entity.Option{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.optionGroupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create option group: %w", err)
	}

	s.events.publish(ctx, entity.EventProductUpdated, group.ProductID, nil)
	return group, nil
}

func (s *CatalogService) GetOptionGroup(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error) {
	group, err := s.optionGroupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOptionGroupNotFound) {
			return nil, ErrOptionGroupNotFound
		}
		return nil, fmt.Errorf("failed to get option group: %w", err)
	}
	return group, nil
}

// GetAllOptionGroups все группы или группы одного товара
func (s *CatalogService) GetAllOptionGroups(ctx context.Context, productID *uuid.UUID) ([]entity.OptionGroup, error) {
	var (
		groups []entity.OptionGroup
		err    error
	)
	if productID != nil {
		groups, err = s.optionGroupRepo.GetByProductID(ctx, *productID)
	} else {
		groups, err = s.optionGroupRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get option groups: %w", err)
	}
	return groups, nil
}

func (s *CatalogService) UpdateOptionGroup(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionGroupRequest) (*entity.OptionGroup, error) {
	group, err := s.GetOptionGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.DisplayName != nil {
		group.DisplayName = *req.DisplayName
	}
	if req.Position != nil {
		group.Position = *req.Position
	}
	group.UpdatedAt = time.Now()

	if err := s.optionGroupRepo.Update(ctx, group); err != nil {
		if errors.Is(err, repository.ErrOptionGroupNotFound) {
			return nil, ErrOptionGroupNotFound
		}
		return nil, fmt.Errorf("failed to update option group: %w", err)
	}

	return group, nil
}

func (s *CatalogService) DeleteOptionGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.GetOptionGroup(ctx, id)
	if err != nil {
		return err
	}

	if err := s.optionGroupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOptionGroupNotFound) {
			return ErrOptionGroupNotFound
		}
		return fmt.Errorf("failed to delete option group: %w", err)
	}

	s.events.publish(ctx, entity.EventProductUpdated, group.ProductID, nil)
	return nil
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
