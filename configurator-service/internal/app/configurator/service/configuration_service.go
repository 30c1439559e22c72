package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/engine"
	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
)

const (
	evaluationValid      = "valid"
	evaluationInvalid    = "invalid"
	evaluationIncomplete = "incomplete"
)

// Evaluation результат вычисления одной конфигурации
type Evaluation struct {
	Product    *entity.Product
	Selection  engine.Selection
	Validation engine.ValidationResult
	Price      engine.PriceBreakdown
}

// WithOptionsResponse товар с отмеченной выборкой, ценой с разбивкой по опциям и валидностью
func (e *Evaluation) WithOptionsResponse() *entity.ProductWithOptionsResponse {
	e.Product.MarkSelected(e.Selection.Contains)
	return &entity.ProductWithOptionsResponse{
		Product:              e.Product,
		Price:                e.Price.Total,
		PriceLines:           e.Price.Lines,
		IsValidConfiguration: e.Validation.IsValid,
		Incomplete:           e.Validation.Incomplete,
		Violations:           e.Validation.Violations,
	}
}

// ConfigurationService оркестрирует валидатор и калькулятор
// Граф товара и правила читаются одним снимком на каждый вызов
type ConfigurationService struct {
	configRepo repository.ConfigurationRepository
	validator  *engine.Validator
	calculator *engine.Calculator
}

func NewConfigurationService(configRepo repository.ConfigurationRepository, validator *engine.Validator) *ConfigurationService {
	if validator == nil {
		validator = engine.NewValidator()
	}
	return &ConfigurationService{
		configRepo: configRepo,
		validator:  validator,
		calculator: engine.NewCalculator(),
	}
}

// Evaluate валидирует выборку и считает цену; цена считается и для невалидной выборки
func (s *ConfigurationService) Evaluate(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*Evaluation, error) {
	start := time.Now()

	snapshot, err := s.configRepo.LoadSnapshot(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	product := snapshot.Product

	selection := engine.NewSelection(optionIDs)
	evaluation := &Evaluation{
		Product:    product,
		Selection:  selection,
		Validation: s.validator.Validate(product, snapshot.Rules, selection),
		Price:      s.calculator.Calculate(product, snapshot.PriceRules, selection),
	}

	result := evaluationValid
	switch {
	case evaluation.Validation.Incomplete:
		result = evaluationIncomplete
	case !evaluation.Validation.IsValid:
		result = evaluationInvalid
	}
	metrics.ObserveEvaluation(result, time.Since(start), evaluation.Validation.Codes())

	logger.Debug().
		Str("product_id", productID.String()).
		Int("selected", selection.Len()).
		Str("result", result).
		Str("price", evaluation.Price.Total.String()).
		Msg("Configuration evaluated")

	return evaluation, nil
}

func (s *ConfigurationService) ValidateConfiguration(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*engine.ValidationResult, error) {
	evaluation, err := s.Evaluate(ctx, productID, optionIDs)
	if err != nil {
		return nil, err
	}
	return &evaluation.Validation, nil
}

func (s *ConfigurationService) CalculatePrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*engine.PriceBreakdown, error) {
	evaluation, err := s.Evaluate(ctx, productID, optionIDs)
	if err != nil {
		return nil, err
	}
	return &evaluation.Price, nil
}
