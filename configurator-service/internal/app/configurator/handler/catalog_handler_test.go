package handler

import (
	"net/http"
	"testing"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/configurator-service/internal/app/configurator/repository/mocks"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестового окружения

type catalogFixture struct {
	router          *gin.Engine
	categoryRepo    *mocks.MockCategoryRepository
	productRepo     *mocks.MockProductRepository
	optionGroupRepo *mocks.MockOptionGroupRepository
	cache           *mocks.MockCategoryCache
	publisher       *mocks.MockMessagePublisher
}

func setupCatalogRouter() *catalogFixture {
	f := &catalogFixture{
		categoryRepo:    new(mocks.MockCategoryRepository),
		productRepo:     new(mocks.MockProductRepository),
		optionGroupRepo: new(mocks.MockOptionGroupRepository),
		cache:           new(mocks.MockCategoryCache),
		publisher:       new(mocks.MockMessagePublisher),
	}

	catalogService := service.NewCatalogService(f.categoryRepo, f.productRepo, f.optionGroupRepo, f.cache, time.Hour, f.publisher)
	h := NewCatalogHandler(catalogService)

	router := gin.New()
	router.POST("/product-categories", h.CreateCategory)
	router.GET("/product-categories", h.GetAllCategories)
	router.GET("/product-categories/:id", h.GetCategory)
	router.DELETE("/product-categories/:id", h.DeleteCategory)
	router.GET("/products/:id", h.GetProduct)
	router.GET("/product-option-groups", h.GetAllOptionGroups)
	f.router = router
	return f
}

func newTestCategory() *entity.Category {
	return &entity.Category{
		ID:        uuid.New(),
		Name:      "Bicycles",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// ==================== Category Handler Tests ====================

func TestCatalogHandler_CreateCategory_Success(t *testing.T) {
	// Arrange
	f := setupCatalogRouter()
	f.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)
	f.cache.On("DeleteCategories", mock.Anything).Return(nil)

	// Act
	rec := performRequest(f.router, http.MethodPost, "/product-categories", entity.CreateCategoryRequest{Name: "Bicycles"}, "")

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	var category entity.Category
	decodeBody(t, rec, &category)
	assert.Equal(t, "Bicycles", category.Name)
	assert.True(t, category.IsActive)
	f.categoryRepo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestCatalogHandler_CreateCategory_ValidationError(t *testing.T) {
	f := setupCatalogRouter()

	rec := performRequest(f.router, http.MethodPost, "/product-categories", entity.CreateCategoryRequest{Name: "B"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogHandler_CreateCategory_Conflict(t *testing.T) {
	f := setupCatalogRouter()
	f.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).
		Return(repository.ErrCategoryAlreadyExists)

	rec := performRequest(f.router, http.MethodPost, "/product-categories", entity.CreateCategoryRequest{Name: "Bicycles"}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCatalogHandler_GetAllCategories_FromCache(t *testing.T) {
	f := setupCatalogRouter()
	categories := []entity.Category{*newTestCategory(), *newTestCategory()}
	f.cache.On("GetCategories", mock.Anything).Return(categories, nil)

	rec := performRequest(f.router, http.MethodGet, "/product-categories", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body entity.CategoryListResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, 2, body.Total)
	f.categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything)
}

func TestCatalogHandler_GetAllCategories_ByName(t *testing.T) {
	f := setupCatalogRouter()
	bikes := *newTestCategory()
	f.categoryRepo.On("GetAll", mock.Anything, "Bikes").Return([]entity.Category{bikes}, nil)

	rec := performRequest(f.router, http.MethodGet, "/product-categories?categoryName=+Bikes+", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body entity.CategoryListResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, 1, body.Total)
	f.cache.AssertNotCalled(t, "GetCategories", mock.Anything)
}

func TestCatalogHandler_GetCategory_NotFound(t *testing.T) {
	f := setupCatalogRouter()
	id := uuid.New()
	f.categoryRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrCategoryNotFound)

	rec := performRequest(f.router, http.MethodGet, "/product-categories/"+id.String(), nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_DeleteCategory_HasProducts(t *testing.T) {
	f := setupCatalogRouter()
	id := uuid.New()
	f.categoryRepo.On("Delete", mock.Anything, id).Return(repository.ErrCategoryHasProducts)

	rec := performRequest(f.router, http.MethodDelete, "/product-categories/"+id.String(), nil, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// ==================== Product Handler Tests ====================

func TestCatalogHandler_GetProduct_WithOptionGraph(t *testing.T) {
	f := setupCatalogRouter()
	bike := newTestBike()
	f.productRepo.On("GetWithOptions", mock.Anything, bike.ID).Return(bike, nil)

	rec := performRequest(f.router, http.MethodGet, "/products/"+bike.ID.String(), nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var product entity.Product
	decodeBody(t, rec, &product)
	require.Len(t, product.OptionGroups, 2)
	assert.True(t, product.OptionGroups[0].Options[0].InStock)
}

func TestCatalogHandler_GetProduct_InvalidID(t *testing.T) {
	f := setupCatalogRouter()

	rec := performRequest(f.router, http.MethodGet, "/products/not-a-uuid", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==================== Option Group Handler Tests ====================

func TestCatalogHandler_GetAllOptionGroups_FilterByProduct(t *testing.T) {
	f := setupCatalogRouter()
	bike := newTestBike()
	f.optionGroupRepo.On("GetByProductID", mock.Anything, bike.ID).Return(bike.OptionGroups, nil)

	rec := performRequest(f.router, http.MethodGet, "/product-option-groups?productId="+bike.ID.String(), nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body entity.OptionGroupListResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, 2, body.Total)
	f.optionGroupRepo.AssertExpectations(t)
}

func TestCatalogHandler_GetAllOptionGroups_InvalidProductID(t *testing.T) {
	f := setupCatalogRouter()

	rec := performRequest(f.router, http.MethodGet, "/product-option-groups?productId=bike", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
