package repository

import (
	"fmt"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"gorm.io/gorm"
)

// Migrate создает или дополняет схему каталога и правил
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Product{},
		&entity.OptionGroup{},
		&entity.Option{},
		&entity.InventoryItem{},
		&entity.OptionRule{},
		&entity.OptionPriceRule{},
	); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}
