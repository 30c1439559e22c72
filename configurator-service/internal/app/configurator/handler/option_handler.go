package handler

import (
	"net/http"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OptionHandler администрирование опций и их складских остатков
type OptionHandler struct {
	optionService service.OptionServiceInterface
	validator     *validator.Validate
}

func NewOptionHandler(optionService service.OptionServiceInterface) *OptionHandler {
	return &OptionHandler{
		optionService: optionService,
		validator:     validator.New(),
	}
}

// CreateOption обрабатывает POST /product-options
func (h *OptionHandler) CreateOption(c *gin.Context) {
	var req entity.CreateOptionRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	option, err := h.optionService.CreateOption(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create option")
		return
	}

	c.JSON(http.StatusCreated, option)
}

func (h *OptionHandler) GetOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	option, err := h.optionService.GetOption(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get option")
		return
	}

	c.JSON(http.StatusOK, option)
}

func (h *OptionHandler) GetAllOptions(c *gin.Context) {
	options, err := h.optionService.GetAllOptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get options")
		return
	}

	c.JSON(http.StatusOK, entity.OptionListResponse{
		Options: options,
		Total:   len(options),
	})
}

func (h *OptionHandler) UpdateOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateOptionRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	option, err := h.optionService.UpdateOption(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update option")
		return
	}

	c.JSON(http.StatusOK, option)
}

func (h *OptionHandler) DeleteOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.optionService.DeleteOption(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete option")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Option deleted successfully"})
}

// SetInventory обрабатывает PUT /product-options/:id/inventory
func (h *OptionHandler) SetInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.SetInventoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	item, err := h.optionService.SetInventory(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to set inventory")
		return
	}

	c.JSON(http.StatusOK, item)
}
