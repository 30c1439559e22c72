package handler

import (
	"net/http"
	"testing"

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

type adminFixture struct {
	router        *gin.Engine
	optionRepo    *mocks.MockOptionRepository
	ruleRepo      *mocks.MockOptionRuleRepository
	priceRuleRepo *mocks.MockOptionPriceRuleRepository
}

func setupAdminRouter() *adminFixture {
	optionRepo := new(mocks.MockOptionRepository)
	optionGroupRepo := new(mocks.MockOptionGroupRepository)
	ruleRepo := new(mocks.MockOptionRuleRepository)
	priceRuleRepo := new(mocks.MockOptionPriceRuleRepository)

	options := NewOptionHandler(service.NewOptionService(optionRepo, optionGroupRepo, nil))
	rules := NewRuleHandler(service.NewRuleService(ruleRepo, priceRuleRepo, optionRepo, nil))

	router := gin.New()
	router.PUT("/product-options/:id/inventory", options.SetInventory)
	router.POST("/option-rules", rules.CreateOptionRule)
	router.GET("/option-rules", rules.GetAllOptionRules)
	router.POST("/option-price-rules", rules.CreateOptionPriceRule)

	return &adminFixture{
		router:        router,
		optionRepo:    optionRepo,
		ruleRepo:      ruleRepo,
		priceRuleRepo: priceRuleRepo,
	}
}

func intPtr(v int) *int { return &v }

func TestOptionHandler_SetInventory_Success(t *testing.T) {
	f := setupAdminRouter()
	optionID := uuid.New()
	item := &entity.InventoryItem{ID: uuid.New(), ProductOptionID: optionID, Quantity: 7}
	f.optionRepo.On("SetInventory", mock.Anything, optionID, 7, false).Return(item, nil)

	rec := performRequest(f.router, http.MethodPut, "/product-options/"+optionID.String()+"/inventory",
		entity.SetInventoryRequest{Quantity: intPtr(7)}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body entity.InventoryItem
	decodeBody(t, rec, &body)
	assert.Equal(t, 7, body.Quantity)
}

func TestOptionHandler_SetInventory_Validation(t *testing.T) {
	f := setupAdminRouter()
	path := "/product-options/" + uuid.NewString() + "/inventory"

	missing := performRequest(f.router, http.MethodPut, path, map[string]interface{}{"outOfStock": true}, "")
	negative := performRequest(f.router, http.MethodPut, path, entity.SetInventoryRequest{Quantity: intPtr(-1)}, "")

	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, http.StatusBadRequest, negative.Code)
	f.optionRepo.AssertNotCalled(t, "SetInventory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOptionHandler_SetInventory_UnknownOption(t *testing.T) {
	f := setupAdminRouter()
	optionID := uuid.New()
	f.optionRepo.On("SetInventory", mock.Anything, optionID, 0, true).Return(nil, repository.ErrOptionNotFound)

	rec := performRequest(f.router, http.MethodPut, "/product-options/"+optionID.String()+"/inventory",
		entity.SetInventoryRequest{Quantity: intPtr(0), OutOfStock: true}, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRuleHandler_CreateOptionRule_SelfReference(t *testing.T) {
	f := setupAdminRouter()
	optionID := uuid.New()

	rec := performRequest(f.router, http.MethodPost, "/option-rules", entity.CreateOptionRuleRequest{
		RuleType:     entity.RuleTypeRequires,
		IfOptionID:   optionID,
		ThenOptionID: optionID,
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.ruleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRuleHandler_CreateOptionRule_UnknownRuleType(t *testing.T) {
	f := setupAdminRouter()

	rec := performRequest(f.router, http.MethodPost, "/option-rules", map[string]interface{}{
		"ruleType":     "SUGGESTS",
		"ifOptionId":   uuid.NewString(),
		"thenOptionId": uuid.NewString(),
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuleHandler_CreateOptionRule_DanglingOption(t *testing.T) {
	f := setupAdminRouter()
	ifID, thenID := uuid.New(), uuid.New()
	f.optionRepo.On("GetByID", mock.Anything, ifID).Return(&entity.Option{ID: ifID}, nil)
	f.optionRepo.On("GetByID", mock.Anything, thenID).Return(nil, repository.ErrOptionNotFound)

	rec := performRequest(f.router, http.MethodPost, "/option-rules", entity.CreateOptionRuleRequest{
		RuleType:     entity.RuleTypeExcludes,
		IfOptionID:   ifID,
		ThenOptionID: thenID,
	}, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRuleHandler_CreateOptionRule_Success(t *testing.T) {
	f := setupAdminRouter()
	ifID, thenID := uuid.New(), uuid.New()
	f.optionRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&entity.Option{}, nil)
	f.ruleRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.OptionRule")).Return(nil)

	rec := performRequest(f.router, http.MethodPost, "/option-rules", entity.CreateOptionRuleRequest{
		RuleType:     entity.RuleTypeOnlyAllows,
		IfOptionID:   ifID,
		ThenOptionID: thenID,
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var rule entity.OptionRule
	decodeBody(t, rec, &rule)
	assert.Equal(t, entity.RuleTypeOnlyAllows, rule.RuleType)
	assert.True(t, rule.IsActive)
}

func TestRuleHandler_GetAllOptionRules_IncludesInactive(t *testing.T) {
	f := setupAdminRouter()
	rules := []entity.OptionRule{
		{ID: uuid.New(), RuleType: entity.RuleTypeRequires, IsActive: true},
		{ID: uuid.New(), RuleType: entity.RuleTypeExcludes, IsActive: false},
	}
	f.ruleRepo.On("GetAll", mock.Anything).Return(rules, nil)

	rec := performRequest(f.router, http.MethodGet, "/option-rules", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body entity.OptionRuleListResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, 2, body.Total)
}

func TestRuleHandler_CreateOptionPriceRule_NegativeOverrideAllowed(t *testing.T) {
	// Отрицательная цена переопределения допустима, это скидка за комбинацию
	f := setupAdminRouter()
	f.optionRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&entity.Option{}, nil)
	f.priceRuleRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.OptionPriceRule")).Return(nil)

	rec := performRequest(f.router, http.MethodPost, "/option-price-rules", map[string]interface{}{
		"price":             "-25.50",
		"targetOptionId":    uuid.NewString(),
		"dependentOptionId": uuid.NewString(),
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var rule entity.OptionPriceRule
	decodeBody(t, rec, &rule)
	assert.True(t, rule.Price.Equal(money("-25.5")))
}
