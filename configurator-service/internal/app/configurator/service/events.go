package service

import (
	"context"
	"encoding/json"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/util"
	"bikeshop/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// eventPublisher отправляет события каталога; ошибки только логируются
type eventPublisher struct {
	publisher util.MessagePublisher
}

func (p eventPublisher) publish(ctx context.Context, eventType string, entityID uuid.UUID, price *decimal.Decimal) {
	if p.publisher == nil {
		return
	}

	event := entity.CatalogEvent{
		EventType: eventType,
		EntityID:  entityID,
		Price:     price,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal catalog event")
		return
	}

	if err := p.publisher.PublishMessage(ctx, entityID.String(), data); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("entity_id", entityID.String()).
			Msg("Failed to publish catalog event")
	}
}
