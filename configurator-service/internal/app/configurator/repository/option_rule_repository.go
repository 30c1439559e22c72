package repository

import (
	"context"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type optionRuleRepository struct {
	db *gorm.DB
}

func NewOptionRuleRepository(db *gorm.DB) OptionRuleRepository {
	return &optionRuleRepository{db: db}
}

func (r *optionRuleRepository) Create(ctx context.Context, rule *entity.OptionRule) error {
	return translate(r.db.WithContext(ctx).Create(rule).Error, ErrOptionRuleNotFound)
}

func (r *optionRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionRule, error) {
	var rule entity.OptionRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrOptionRuleNotFound)
	}
	return &rule, nil
}

func (r *optionRuleRepository) GetAll(ctx context.Context) ([]entity.OptionRule, error) {
	rules := make([]entity.OptionRule, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *optionRuleRepository) Update(ctx context.Context, rule *entity.OptionRule) error {
	result := r.db.WithContext(ctx).Model(&entity.OptionRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"rule_type":      rule.RuleType,
			"if_option_id":   rule.IfOptionID,
			"then_option_id": rule.ThenOptionID,
			"is_active":      rule.IsActive,
			"updated_at":     rule.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, ErrOptionRuleNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionRuleNotFound
	}
	return nil
}

func (r *optionRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.OptionRule{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, ErrOptionRuleNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionRuleNotFound
	}
	return nil
}
