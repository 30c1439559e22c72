package mocks

import (
	"context"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository мок для CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context, name string) ([]entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) GetWithOptions(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

// MockOptionGroupRepository мок для OptionGroupRepository
type MockOptionGroupRepository struct {
	mock.Mock
}

func (m *MockOptionGroupRepository) Create(ctx context.Context, group *entity.OptionGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockOptionGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OptionGroup), args.Error(1)
}

func (m *MockOptionGroupRepository) GetAll(ctx context.Context) ([]entity.OptionGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionGroup), args.Error(1)
}

func (m *MockOptionGroupRepository) Update(ctx context.Context, group *entity.OptionGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockOptionGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOptionGroupRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.OptionGroup, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionGroup), args.Error(1)
}

// MockOptionRepository мок для OptionRepository
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) Create(ctx context.Context, option *entity.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockOptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Option, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Option), args.Error(1)
}

func (m *MockOptionRepository) GetAll(ctx context.Context) ([]entity.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Option), args.Error(1)
}

func (m *MockOptionRepository) Update(ctx context.Context, option *entity.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOptionRepository) SetInventory(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error) {
	args := m.Called(ctx, optionID, quantity, outOfStock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InventoryItem), args.Error(1)
}

// MockOptionRuleRepository мок для OptionRuleRepository
type MockOptionRuleRepository struct {
	mock.Mock
}

func (m *MockOptionRuleRepository) Create(ctx context.Context, rule *entity.OptionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockOptionRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OptionRule), args.Error(1)
}

func (m *MockOptionRuleRepository) GetAll(ctx context.Context) ([]entity.OptionRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionRule), args.Error(1)
}

func (m *MockOptionRuleRepository) Update(ctx context.Context, rule *entity.OptionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockOptionRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOptionPriceRuleRepository мок для OptionPriceRuleRepository
type MockOptionPriceRuleRepository struct {
	mock.Mock
}

func (m *MockOptionPriceRuleRepository) Create(ctx context.Context, rule *entity.OptionPriceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockOptionPriceRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionPriceRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OptionPriceRule), args.Error(1)
}

func (m *MockOptionPriceRuleRepository) GetAll(ctx context.Context) ([]entity.OptionPriceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionPriceRule), args.Error(1)
}

func (m *MockOptionPriceRuleRepository) Update(ctx context.Context, rule *entity.OptionPriceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockOptionPriceRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCartRepository мок для CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryCache мок для util.CategoryCache
type MockCategoryCache struct {
	mock.Mock
}

func (m *MockCategoryCache) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	args := m.Called(ctx, categories, ttl)
	return args.Error(0)
}

func (m *MockCategoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryCache) DeleteCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenBlacklist мок для util.TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockConfigurationRepository мок для ConfigurationRepository
type MockConfigurationRepository struct {
	mock.Mock
}

func (m *MockConfigurationRepository) LoadSnapshot(ctx context.Context, productID uuid.UUID) (*repository.ConfigurationSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConfigurationSnapshot), args.Error(1)
}
