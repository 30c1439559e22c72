package repository

import (
	"fmt"

	"bikeshop/orders-service/internal/app/orders/entity"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Order{}, &entity.OrderItem{}); err != nil {
		return fmt.Errorf("failed to migrate orders schema: %w", err)
	}
	return nil
}
