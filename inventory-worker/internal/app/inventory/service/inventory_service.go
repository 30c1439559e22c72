package service

import (
	"context"
	"errors"
	"fmt"

	"bikeshop/inventory-worker/internal/app/inventory/entity"
	"bikeshop/inventory-worker/internal/app/inventory/repository"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
)

type InventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// ProcessEvent ошибки с ErrUnprocessableEvent не повторяются, остальные временные
func (s *InventoryService) ProcessEvent(ctx context.Context, event *entity.InventoryEvent) error {
	if event.OptionID == uuid.Nil {
		metrics.RecordInventoryEvent(event.EventType, "rejected")
		return fmt.Errorf("%w: missing optionId", ErrUnprocessableEvent)
	}

	var (
		item *entity.InventoryItem
		err  error
	)
	switch event.EventType {
	case entity.EventTypeStockSet:
		if event.Quantity < 0 {
			metrics.RecordInventoryEvent(event.EventType, "rejected")
			return fmt.Errorf("%w: negative quantity %d", ErrUnprocessableEvent, event.Quantity)
		}
		item, err = s.repo.SetStock(ctx, event.OptionID, event.Quantity, event.OutOfStock)
	case entity.EventTypeStockAdjusted:
		item, err = s.repo.AdjustStock(ctx, event.OptionID, event.Delta)
	default:
		metrics.RecordInventoryEvent("unknown", "rejected")
		return fmt.Errorf("%w: unknown event type %q", ErrUnprocessableEvent, event.EventType)
	}

	if err != nil {
		if errors.Is(err, repository.ErrOptionNotFound) {
			metrics.RecordInventoryEvent(event.EventType, "rejected")
			return fmt.Errorf("%w: option %s not found", ErrUnprocessableEvent, event.OptionID)
		}
		metrics.RecordInventoryEvent(event.EventType, "error")
		return fmt.Errorf("failed to apply %s: %w", event.EventType, err)
	}

	metrics.RecordInventoryEvent(event.EventType, "success")
	logger.Info().
		Str("event_type", event.EventType).
		Str("option_id", event.OptionID.String()).
		Int("quantity", item.Quantity).
		Bool("out_of_stock", item.OutOfStock).
		Msg("Inventory updated")
	return nil
}
