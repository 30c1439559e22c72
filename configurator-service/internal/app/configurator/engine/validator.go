package engine

import (
	"fmt"
	"sort"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
)

// ValidationResult результат проверки конфигурации
// Incomplete выставляется только для пустой выборки, нарушения при этом нет
type ValidationResult struct {
	IsValid    bool               `json:"isValid"`
	Incomplete bool               `json:"incomplete"`
	Violations []entity.Violation `json:"violations"`
}

// Codes коды нарушений в порядке их следования
func (r ValidationResult) Codes() []string {
	codes := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		codes = append(codes, string(v.Code))
	}
	return codes
}

// GroupPolicy ограничение на выбор внутри одной группы опций
type GroupPolicy interface {
	Check(group *entity.OptionGroup, selected []uuid.UUID) []entity.Violation
}

// SingleChoicePerGroup не более одной опции из каждой группы
type SingleChoicePerGroup struct{}

func (SingleChoicePerGroup) Check(group *entity.OptionGroup, selected []uuid.UUID) []entity.Violation {
	if len(selected) <= 1 {
		return nil
	}
	groupID := group.ID
	return []entity.Violation{{
		Code:    entity.ViolationGroupCardinality,
		GroupID: &groupID,
		Message: fmt.Sprintf("at most one option may be selected in group %q, got %d", group.DisplayName, len(selected)),
	}}
}

// ValidatorOption настройка валидатора
type ValidatorOption func(*Validator)

// WithGroupPolicy подключает групповую политику
func WithGroupPolicy(policy GroupPolicy) ValidatorOption {
	return func(v *Validator) {
		v.policies = append(v.policies, policy)
	}
}

// Validator проверяет выборку опций против графа товара и OptionRule
type Validator struct {
	policies []GroupPolicy
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate проверяет выборку. Нарушения упорядочены так:
// сначала по опциям (ID опции), затем по правилам (ID правила, ID опции),
// затем по групповым политикам (ID группы)
func (v *Validator) Validate(product *entity.Product, rules []entity.OptionRule, sel Selection) ValidationResult {
	graph := newOptionGraph(product)
	violations := make([]entity.Violation, 0)

	violations = append(violations, checkOptions(graph, sel)...)
	violations = append(violations, checkRules(graph, rules, sel)...)

	for _, group := range graph.groups {
		selected := graph.selectedInGroup(group.ID, sel)
		for _, policy := range v.policies {
			violations = append(violations, policy.Check(group, selected)...)
		}
	}

	incomplete := sel.IsEmpty()
	return ValidationResult{
		IsValid:    !incomplete && len(violations) == 0,
		Incomplete: incomplete,
		Violations: violations,
	}
}

func checkOptions(graph *optionGraph, sel Selection) []entity.Violation {
	var violations []entity.Violation
	for _, id := range sel.IDs() {
		optionID := id
		option, ok := graph.resolve(id)
		switch {
		case !ok:
			violations = append(violations, entity.Violation{
				Code:     entity.ViolationUnknownOption,
				OptionID: &optionID,
				Message:  fmt.Sprintf("option %s does not belong to this product", id),
			})
		case !option.IsActive:
			violations = append(violations, entity.Violation{
				Code:     entity.ViolationInvalidOption,
				OptionID: &optionID,
				Message:  fmt.Sprintf("option %q is not active", option.DisplayName),
			})
		case !option.IsInStock():
			violations = append(violations, entity.Violation{
				Code:     entity.ViolationInvalidOption,
				OptionID: &optionID,
				Message:  fmt.Sprintf("option %q is out of stock", option.DisplayName),
			})
		}
	}
	return violations
}

func checkRules(graph *optionGraph, rules []entity.OptionRule, sel Selection) []entity.Violation {
	var violations []entity.Violation
	for _, rule := range sortedRules(rules) {
		if !rule.IsActive || !graph.usable(rule.IfOptionID) || !graph.usable(rule.ThenOptionID) {
			continue
		}
		if !sel.Contains(rule.IfOptionID) {
			continue
		}

		ruleID := rule.ID
		ifOption, _ := graph.resolve(rule.IfOptionID)
		thenOption, _ := graph.resolve(rule.ThenOptionID)

		switch rule.RuleType {
		case entity.RuleTypeRequires:
			if !sel.Contains(rule.ThenOptionID) {
				thenID := rule.ThenOptionID
				violations = append(violations, entity.Violation{
					Code:     entity.ViolationMissingRequiredOption,
					OptionID: &thenID,
					RuleID:   &ruleID,
					Message:  fmt.Sprintf("option %q requires %q", ifOption.DisplayName, thenOption.DisplayName),
				})
			}
		case entity.RuleTypeExcludes:
			if sel.Contains(rule.ThenOptionID) {
				thenID := rule.ThenOptionID
				violations = append(violations, entity.Violation{
					Code:     entity.ViolationConflictingOptions,
					OptionID: &thenID,
					RuleID:   &ruleID,
					Message:  fmt.Sprintf("option %q cannot be combined with %q", ifOption.DisplayName, thenOption.DisplayName),
				})
			}
		case entity.RuleTypeOnlyAllows:
			groupID := graph.groupOf[rule.ThenOptionID]
			for _, id := range graph.selectedInGroup(groupID, sel) {
				if id == rule.ThenOptionID {
					continue
				}
				offending := id
				other, _ := graph.resolve(id)
				violations = append(violations, entity.Violation{
					Code:     entity.ViolationDisallowedOption,
					OptionID: &offending,
					RuleID:   &ruleID,
					Message:  fmt.Sprintf("option %q only allows %q in its group, %q is selected", ifOption.DisplayName, thenOption.DisplayName, other.DisplayName),
				})
			}
		}
	}
	return violations
}

func sortedRules(rules []entity.OptionRule) []entity.OptionRule {
	out := make([]entity.OptionRule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool {
		return compareIDs(out[i].ID, out[j].ID) < 0
	})
	return out
}
