package service

import (
	"errors"
	"fmt"

	"bikeshop/configurator-service/internal/app/configurator/entity"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryAlreadyExists   = errors.New("category with this name already exists")
	ErrCategoryHasProducts     = errors.New("cannot delete category with existing products")
	ErrProductNotFound         = errors.New("product not found")
	ErrOptionGroupNotFound     = errors.New("option group not found")
	ErrOptionNotFound          = errors.New("option not found")
	ErrOptionRuleNotFound      = errors.New("option rule not found")
	ErrOptionPriceRuleNotFound = errors.New("option price rule not found")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCartBusy                = errors.New("cart is being modified, try again")
	ErrConflict                = errors.New("resource already exists")

	ErrNegativePrice        = errors.New("price must not be negative")
	ErrInvalidRuleType      = errors.New("rule type must be one of REQUIRES, EXCLUDES, ONLY_ALLOWS")
	ErrSelfReferencingRule  = errors.New("rule must reference two different options")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidConfiguration = errors.New("invalid product configuration")
)

// InvalidConfigurationError конфигурация не прошла валидацию
// errors.Is(err, ErrInvalidConfiguration) возвращает true
type InvalidConfigurationError struct {
	Incomplete bool
	Violations []entity.Violation
}

func (e *InvalidConfigurationError) Error() string {
	if e.Incomplete {
		return "configuration is incomplete: select at least one option"
	}
	return fmt.Sprintf("%s: %d violation(s)", ErrInvalidConfiguration.Error(), len(e.Violations))
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
