package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/configurator-service/internal/app/configurator/util"

	"github.com/google/uuid"
)

// OptionService опции и их складские остатки
type OptionService struct {
	optionRepo      repository.OptionRepository
	optionGroupRepo repository.OptionGroupRepository
	events          eventPublisher
}

func NewOptionService(
	optionRepo repository.OptionRepository,
	optionGroupRepo repository.OptionGroupRepository,
	publisher util.MessagePublisher,
) *OptionService {
	return &OptionService{
		optionRepo:      optionRepo,
		optionGroupRepo: optionGroupRepo,
		events:          eventPublisher{publisher: publisher},
	}
}

// CreateOption создает опцию в существующей группе
// Если передан quantity, сразу создается складская запись
func (s *OptionService) CreateOption(ctx context.Context, req *entity.CreateOptionRequest) (*entity.Option, error) {
	if req.BasePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if _, err := s.optionGroupRepo.GetByID(ctx, req.OptionGroupID); err != nil {
		if errors.Is(err, repository.ErrOptionGroupNotFound) {
			return nil, ErrOptionGroupNotFound
		}
		return nil, fmt.Errorf("failed to get option group: %w", err)
	}

	now := time.Now()
	option := &entity.Option{
		ID:            uuid.New(),
		Name:          req.Name,
		DisplayName:   req.DisplayName,
		BasePrice:     req.BasePrice,
		IsActive:      boolOr(req.IsActive, true),
		OptionGroupID: req.OptionGroupID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Quantity != nil {
		option.InventoryItem = &entity.InventoryItem{
			ID:         uuid.New(),
			Quantity:   *req.Quantity,
			OutOfStock: *req.Quantity == 0,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	if err := s.optionRepo.Create(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to create option: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionUpdated, option.ID, &option.BasePrice)
	return option, nil
}

func (s *OptionService) GetOption(ctx context.Context, id uuid.UUID) (*entity.Option, error) {
	option, err := s.optionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOptionNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	return option, nil
}

func (s *OptionService) GetAllOptions(ctx context.Context) ([]entity.Option, error) {
	options, err := s.optionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}
	return options, nil
}

func (s *OptionService) UpdateOption(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionRequest) (*entity.Option, error) {
	option, err := s.GetOption(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		option.BasePrice = *req.BasePrice
	}
	if req.Name != nil {
		option.Name = *req.Name
	}
	if req.DisplayName != nil {
		option.DisplayName = *req.DisplayName
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}
	option.UpdatedAt = time.Now()

	if err := s.optionRepo.Update(ctx, option); err != nil {
		if errors.Is(err, repository.ErrOptionNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to update option: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionUpdated, option.ID, &option.BasePrice)
	return option, nil
}

// DeleteOption удаляет опцию; правила, ссылающиеся на нее, остаются и
// при вычислении конфигураций пропускаются
func (s *OptionService) DeleteOption(ctx context.Context, id uuid.UUID) error {
	if err := s.optionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOptionNotFound) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("failed to delete option: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionUpdated, id, nil)
	return nil
}

// SetInventory заменяет складской остаток опции
func (s *OptionService) SetInventory(ctx context.Context, optionID uuid.UUID, req *entity.SetInventoryRequest) (*entity.InventoryItem, error) {
	item, err := s.optionRepo.SetInventory(ctx, optionID, *req.Quantity, req.OutOfStock)
	if err != nil {
		if errors.Is(err, repository.ErrOptionNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to set inventory: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionUpdated, optionID, nil)
	return item, nil
}
