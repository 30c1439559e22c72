package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type configurationRepository struct {
	db *gorm.DB
}

// NewConfigurationRepository источник снимков для вычисления конфигурации
func NewConfigurationRepository(db *gorm.DB) ConfigurationRepository {
	return &configurationRepository{db: db}
}

var snapshotTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// LoadSnapshot правка каталога между запросами не попадает в снимок частично
func (r *configurationRepository) LoadSnapshot(ctx context.Context, productID uuid.UUID) (*ConfigurationSnapshot, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "configuration_snapshot")
	defer timer.ObserveDuration()

	snapshot := &ConfigurationSnapshot{
		Rules:      make([]entity.OptionRule, 0),
		PriceRules: make([]entity.OptionPriceRule, 0),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := loadProductGraph(tx, productID)
		if err != nil {
			return err
		}
		snapshot.Product = product

		if err := tx.Order("id ASC").Find(&snapshot.Rules).Error; err != nil {
			return fmt.Errorf("failed to load option rules: %w", err)
		}
		if err := tx.Order("id ASC").Find(&snapshot.PriceRules).Error; err != nil {
			return fmt.Errorf("failed to load option price rules: %w", err)
		}
		return nil
	}, snapshotTxOptions)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, err
	}

	return snapshot, nil
}
