package repository

import (
	"context"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type optionPriceRuleRepository struct {
	db *gorm.DB
}

func NewOptionPriceRuleRepository(db *gorm.DB) OptionPriceRuleRepository {
	return &optionPriceRuleRepository{db: db}
}

func (r *optionPriceRuleRepository) Create(ctx context.Context, rule *entity.OptionPriceRule) error {
	return translate(r.db.WithContext(ctx).Create(rule).Error, ErrOptionPriceRuleNotFound)
}

func (r *optionPriceRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionPriceRule, error) {
	var rule entity.OptionPriceRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrOptionPriceRuleNotFound)
	}
	return &rule, nil
}

func (r *optionPriceRuleRepository) GetAll(ctx context.Context) ([]entity.OptionPriceRule, error) {
	rules := make([]entity.OptionPriceRule, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *optionPriceRuleRepository) Update(ctx context.Context, rule *entity.OptionPriceRule) error {
	result := r.db.WithContext(ctx).Model(&entity.OptionPriceRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"price":               rule.Price,
			"target_option_id":    rule.TargetOptionID,
			"dependent_option_id": rule.DependentOptionID,
			"is_active":           rule.IsActive,
			"updated_at":          rule.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, ErrOptionPriceRuleNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionPriceRuleNotFound
	}
	return nil
}

func (r *optionPriceRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.OptionPriceRule{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, ErrOptionPriceRuleNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionPriceRuleNotFound
	}
	return nil
}
