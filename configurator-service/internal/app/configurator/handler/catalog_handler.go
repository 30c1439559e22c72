package handler

import (
	"net/http"
	"strings"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler обрабатывает HTTP запросы для категорий, товаров и групп опций
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === CATEGORIES HANDLERS ===

// CreateCategory обрабатывает POST /product-categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategory обрабатывает GET /product-categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetAllCategories обрабатывает GET /product-categories?categoryName=
// Без фильтра список отдается из кеша
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	name := strings.TrimSpace(c.Query("categoryName"))
	categories, err := h.catalogService.GetAllCategories(c.Request.Context(), name)
	if err != nil {
		respondServiceError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// UpdateCategory обрабатывает PATCH /product-categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory обрабатывает DELETE /product-categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Category deleted successfully"})
}

// === PRODUCTS HANDLERS ===

// CreateProduct обрабатывает POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct обрабатывает GET /products/:id
// Возвращает товар с группами опций и признаком наличия каждой опции
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetAllProducts обрабатывает GET /products
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// UpdateProduct обрабатывает PATCH /products/:id (отправляет событие в Kafka)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
}

// === OPTION GROUPS HANDLERS ===

// CreateOptionGroup обрабатывает POST /product-option-groups
func (h *CatalogHandler) CreateOptionGroup(c *gin.Context) {
	var req entity.CreateOptionGroupRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	group, err := h.catalogService.CreateOptionGroup(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create option group")
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *CatalogHandler) GetOptionGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.catalogService.GetOptionGroup(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get option group")
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetAllOptionGroups обрабатывает GET /product-option-groups[?productId=...]
func (h *CatalogHandler) GetAllOptionGroups(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid productId")
			return
		}
		productID = &id
	}

	groups, err := h.catalogService.GetAllOptionGroups(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err, "Failed to get option groups")
		return
	}

	c.JSON(http.StatusOK, entity.OptionGroupListResponse{
		OptionGroups: groups,
		Total:        len(groups),
	})
}

func (h *CatalogHandler) UpdateOptionGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateOptionGroupRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	group, err := h.catalogService.UpdateOptionGroup(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update option group")
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *CatalogHandler) DeleteOptionGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteOptionGroup(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete option group")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Option group deleted successfully"})
}
