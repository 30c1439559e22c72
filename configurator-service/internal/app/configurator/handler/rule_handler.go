package handler

import (
	"net/http"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RuleHandler администрирование правил совместимости и ценовых правил
type RuleHandler struct {
	ruleService service.RuleServiceInterface
	validator   *validator.Validate
}

func NewRuleHandler(ruleService service.RuleServiceInterface) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		validator:   validator.New(),
	}
}

// === OPTION RULES ===

// CreateOptionRule обрабатывает POST /option-rules
func (h *RuleHandler) CreateOptionRule(c *gin.Context) {
	var req entity.CreateOptionRuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	rule, err := h.ruleService.CreateOptionRule(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create option rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *RuleHandler) GetOptionRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rule, err := h.ruleService.GetOptionRule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get option rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// GetAllOptionRules отдает активные и неактивные правила
func (h *RuleHandler) GetAllOptionRules(c *gin.Context) {
	rules, err := h.ruleService.GetAllOptionRules(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get option rules")
		return
	}

	c.JSON(http.StatusOK, entity.OptionRuleListResponse{
		OptionRules: rules,
		Total:       len(rules),
	})
}

func (h *RuleHandler) UpdateOptionRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateOptionRuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	rule, err := h.ruleService.UpdateOptionRule(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update option rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) DeleteOptionRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ruleService.DeleteOptionRule(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete option rule")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Option rule deleted successfully"})
}

// === OPTION PRICE RULES ===

// CreateOptionPriceRule обрабатывает POST /option-price-rules
func (h *RuleHandler) CreateOptionPriceRule(c *gin.Context) {
	var req entity.CreateOptionPriceRuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	rule, err := h.ruleService.CreateOptionPriceRule(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create option price rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *RuleHandler) GetOptionPriceRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rule, err := h.ruleService.GetOptionPriceRule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get option price rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) GetAllOptionPriceRules(c *gin.Context) {
	rules, err := h.ruleService.GetAllOptionPriceRules(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get option price rules")
		return
	}

	c.JSON(http.StatusOK, entity.OptionPriceRuleListResponse{
		OptionPriceRules: rules,
		Total:            len(rules),
	})
}

func (h *RuleHandler) UpdateOptionPriceRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateOptionPriceRuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	rule, err := h.ruleService.UpdateOptionPriceRule(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update option price rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) DeleteOptionPriceRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ruleService.DeleteOptionPriceRule(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete option price rule")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Option price rule deleted successfully"})
}
