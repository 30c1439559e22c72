package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ViolationCode причина, по которой конфигурация не проходит валидацию
type ViolationCode string

const (
	ViolationUnknownOption         ViolationCode = "UNKNOWN_OPTION"
	ViolationInvalidOption         ViolationCode = "INVALID_OPTION"
	ViolationMissingRequiredOption ViolationCode = "MISSING_REQUIRED_OPTION"
	ViolationConflictingOptions    ViolationCode = "CONFLICTING_OPTIONS"
	ViolationDisallowedOption      ViolationCode = "DISALLOWED_OPTION"
	ViolationGroupCardinality      ViolationCode = "GROUP_CARDINALITY"
)

// Violation одно нарушение конфигурации
// RuleID заполнен для нарушений правил, GroupID для групповых политик
type Violation struct {
	Code     ViolationCode `json:"code"`
	OptionID *uuid.UUID    `json:"optionId,omitempty"`
	RuleID   *uuid.UUID    `json:"ruleId,omitempty"`
	GroupID  *uuid.UUID    `json:"groupId,omitempty"`
	Message  string        `json:"message"`
}

// PriceLine вклад одной выбранной опции в итоговую цену
type PriceLine struct {
	OptionID      uuid.UUID       `json:"optionId"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Price         decimal.Decimal `json:"price"`
	AppliedRuleID *uuid.UUID      `json:"appliedRuleId,omitempty"`
}
