package repository

import (
	"context"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type optionGroupRepository struct {
	db *gorm.DB
}

func NewOptionGroupRepository(db *gorm.DB) OptionGroupRepository {
	return &optionGroupRepository{db: db}
}

func (r *optionGroupRepository) Create(ctx context.Context, group *entity.OptionGroup) error {
	return translate(r.db.WithContext(ctx).Omit("Options").Create(group).Error, ErrOptionGroupNotFound)
}

func (r *optionGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error) {
	var group entity.OptionGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrOptionGroupNotFound)
	}
	return &group, nil
}

func (r *optionGroupRepository) GetAll(ctx context.Context) ([]entity.OptionGroup, error) {
	groups := make([]entity.OptionGroup, 0)
	if err := r.db.WithContext(ctx).Order("product_id, position ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *optionGroupRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.OptionGroup, error) {
	groups := make([]entity.OptionGroup, 0)
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, created_at ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *optionGroupRepository) Update(ctx context.Context, group *entity.OptionGroup) error {
	result := r.db.WithContext(ctx).Model(&entity.OptionGroup{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"name":         group.Name,
			"display_name": group.DisplayName,
			"position":     group.Position,
			"updated_at":   group.UpdatedAt,
		})
	if result.Error != nil {
		return translate(result.Error, ErrOptionGroupNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionGroupNotFound
	}
	return nil
}

func (r *optionGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.OptionGroup{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, ErrOptionGroupNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrOptionGroupNotFound
	}
	return nil
}
