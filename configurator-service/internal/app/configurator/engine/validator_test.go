package engine

import (
	"testing"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelection_DeduplicatesAndSorts(t *testing.T) {
	sel := NewSelection([]uuid.UUID{mountainWheels, fullSuspension, mountainWheels})

	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, []uuid.UUID{fullSuspension, mountainWheels}, sel.IDs())
	assert.True(t, sel.Contains(mountainWheels))
	assert.False(t, sel.Contains(roadWheels))
}

func TestValidate_ValidSelection(t *testing.T) {
	// Arrange
	v := NewValidator()
	product := newBike()

	// Act
	result := v.Validate(product, nil, NewSelection([]uuid.UUID{fullSuspension, mountainWheels}))

	// Assert
	assert.True(t, result.IsValid)
	assert.False(t, result.Incomplete)
	assert.Empty(t, result.Violations)
}

func TestValidate_EmptySelectionIsIncomplete(t *testing.T) {
	v := NewValidator()

	result := v.Validate(newBike(), nil, NewSelection(nil))

	assert.False(t, result.IsValid)
	assert.True(t, result.Incomplete)
	assert.Empty(t, result.Violations)
}

func TestValidate_OptionLevelViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *entity.Product)
		selected []uuid.UUID
		code    entity.ViolationCode
		option  uuid.UUID
	}{
		{
			name:    "option from another product",
			mutate:  func(p *entity.Product) {},
			selected: []uuid.UUID{foreignOption},
			code:    entity.ViolationUnknownOption,
			option:  foreignOption,
		},
		{
			name:    "inactive option",
			mutate:  func(p *entity.Product) { findOption(p, roadWheels).IsActive = false },
			selected: []uuid.UUID{roadWheels},
			code:    entity.ViolationInvalidOption,
			option:  roadWheels,
		},
		{
			name:    "marked out of stock",
			mutate:  func(p *entity.Product) { findOption(p, roadWheels).InventoryItem.OutOfStock = true },
			selected: []uuid.UUID{roadWheels},
			code:    entity.ViolationInvalidOption,
			option:  roadWheels,
		},
		{
			name:    "zero quantity",
			mutate:  func(p *entity.Product) { findOption(p, roadWheels).InventoryItem.Quantity = 0 },
			selected: []uuid.UUID{roadWheels},
			code:    entity.ViolationInvalidOption,
			option:  roadWheels,
		},
		{
			name:    "no inventory record",
			mutate:  func(p *entity.Product) { findOption(p, roadWheels).InventoryItem = nil },
			selected: []uuid.UUID{roadWheels},
			code:    entity.ViolationInvalidOption,
			option:  roadWheels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := newBike()
			tt.mutate(product)

			result := NewValidator().Validate(product, nil, NewSelection(tt.selected))

			assert.False(t, result.IsValid)
			require.Len(t, result.Violations, 1)
			assert.Equal(t, tt.code, result.Violations[0].Code)
			require.NotNil(t, result.Violations[0].OptionID)
			assert.Equal(t, tt.option, *result.Violations[0].OptionID)
		})
	}
}

func TestValidate_Requires(t *testing.T) {
	rules := []entity.OptionRule{
		rule("00000000-0000-0000-0000-00000000a001", entity.RuleTypeRequires, fullSuspension, mountainWheels),
	}

	t.Run("missing required option", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{fullSuspension, roadWheels}))

		assert.False(t, result.IsValid)
		require.Len(t, result.Violations, 1)
		violation := result.Violations[0]
		assert.Equal(t, entity.ViolationMissingRequiredOption, violation.Code)
		assert.Equal(t, rules[0].ID, *violation.RuleID)
		assert.Equal(t, mountainWheels, *violation.OptionID)
	})

	t.Run("required option present", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{fullSuspension, mountainWheels}))

		assert.True(t, result.IsValid)
	})

	t.Run("rule is directional", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{diamondFrame, mountainWheels}))

		assert.True(t, result.IsValid)
	})
}

func TestValidate_Excludes(t *testing.T) {
	rules := []entity.OptionRule{
		rule("00000000-0000-0000-0000-00000000a002", entity.RuleTypeExcludes, diamondFrame, fatWheels),
	}

	result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{diamondFrame, fatWheels}))

	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, entity.ViolationConflictingOptions, result.Violations[0].Code)
	assert.Equal(t, fatWheels, *result.Violations[0].OptionID)

	// Обратное направление не выводится
	result = NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{fatWheels, fullSuspension}))
	assert.True(t, result.IsValid)
}

func TestValidate_OnlyAllows(t *testing.T) {
	rules := []entity.OptionRule{
		rule("00000000-0000-0000-0000-00000000a003", entity.RuleTypeOnlyAllows, fullSuspension, mountainWheels),
	}

	t.Run("then option not selected is allowed", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{fullSuspension}))

		assert.True(t, result.IsValid)
	})

	t.Run("only the allowed option", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules, NewSelection([]uuid.UUID{fullSuspension, mountainWheels}))

		assert.True(t, result.IsValid)
	})

	t.Run("other options of the group are disallowed", func(t *testing.T) {
		result := NewValidator().Validate(newBike(), rules,
			NewSelection([]uuid.UUID{fullSuspension, fatWheels, roadWheels, mountainWheels}))

		assert.False(t, result.IsValid)
		require.Len(t, result.Violations, 2)
		assert.Equal(t, []string{"DISALLOWED_OPTION", "DISALLOWED_OPTION"}, result.Codes())
		assert.Equal(t, roadWheels, *result.Violations[0].OptionID)
		assert.Equal(t, fatWheels, *result.Violations[1].OptionID)
	})
}

func TestValidate_SkippedRules(t *testing.T) {
	inactive := rule("00000000-0000-0000-0000-00000000a004", entity.RuleTypeRequires, fullSuspension, mountainWheels)
	inactive.IsActive = false
	dangling := rule("00000000-0000-0000-0000-00000000a005", entity.RuleTypeRequires, fullSuspension, foreignOption)
	toInactiveOption := rule("00000000-0000-0000-0000-00000000a006", entity.RuleTypeRequires, fullSuspension, fatWheels)

	product := newBike()
	findOption(product, fatWheels).IsActive = false

	result := NewValidator().Validate(product, []entity.OptionRule{inactive, dangling, toInactiveOption},
		NewSelection([]uuid.UUID{fullSuspension, roadWheels}))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
}

func TestValidate_ViolationOrdering(t *testing.T) {
	rules := []entity.OptionRule{
		rule("00000000-0000-0000-0000-00000000b002", entity.RuleTypeExcludes, diamondFrame, roadWheels),
		rule("00000000-0000-0000-0000-00000000b001", entity.RuleTypeRequires, diamondFrame, mountainWheels),
	}
	v := NewValidator(WithGroupPolicy(SingleChoicePerGroup{}))

	result := v.Validate(newBike(), rules,
		NewSelection([]uuid.UUID{roadWheels, foreignOption, diamondFrame, fatWheels}))

	assert.Equal(t, []string{
		"UNKNOWN_OPTION",
		"MISSING_REQUIRED_OPTION",
		"CONFLICTING_OPTIONS",
		"GROUP_CARDINALITY",
	}, result.Codes())
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-00000000b001"), *result.Violations[1].RuleID)
	assert.Equal(t, wheelsGroupID, *result.Violations[3].GroupID)
}

func TestValidate_MultiSelectPerGroupAllowedByDefault(t *testing.T) {
	result := NewValidator().Validate(newBike(), nil, NewSelection([]uuid.UUID{roadWheels, mountainWheels}))

	assert.True(t, result.IsValid)
}

func TestValidate_IsDeterministic(t *testing.T) {
	rules := []entity.OptionRule{
		rule("00000000-0000-0000-0000-00000000a001", entity.RuleTypeRequires, fullSuspension, mountainWheels),
		rule("00000000-0000-0000-0000-00000000a002", entity.RuleTypeExcludes, fullSuspension, roadWheels),
	}
	sel := NewSelection([]uuid.UUID{roadWheels, fullSuspension})
	v := NewValidator()

	first := v.Validate(newBike(), rules, sel)
	second := v.Validate(newBike(), rules, sel)

	assert.Equal(t, first, second)
}
