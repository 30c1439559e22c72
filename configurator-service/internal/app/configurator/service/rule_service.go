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

// RuleService логические и ценовые правила между опциями
type RuleService struct {
	ruleRepo      repository.OptionRuleRepository
	priceRuleRepo repository.OptionPriceRuleRepository
	optionRepo    repository.OptionRepository
	events        eventPublisher
}

func NewRuleService(
	ruleRepo repository.OptionRuleRepository,
	priceRuleRepo repository.OptionPriceRuleRepository,
	optionRepo repository.OptionRepository,
	publisher util.MessagePublisher,
) *RuleService {
	return &RuleService{
		ruleRepo:      ruleRepo,
		priceRuleRepo: priceRuleRepo,
		optionRepo:    optionRepo,
		events:        eventPublisher{publisher: publisher},
	}
}

// === OPTION RULES ===

func (s *RuleService) CreateOptionRule(ctx context.Context, req *entity.CreateOptionRuleRequest) (*entity.OptionRule, error) {
	if !req.RuleType.IsValid() {
		return nil, ErrInvalidRuleType
	}
	if err := s.checkOptionPair(ctx, req.IfOptionID, req.ThenOptionID); err != nil {
		return nil, err
	}

	now := time.Now()
	rule := &entity.OptionRule{
		ID:           uuid.New(),
		RuleType:     req.RuleType,
		IfOptionID:   req.IfOptionID,
		ThenOptionID: req.ThenOptionID,
		IsActive:     boolOr(req.IsActive, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create option rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionRulesChanged, rule.ID, nil)
	return rule, nil
}

func (s *RuleService) GetOptionRule(ctx context.Context, id uuid.UUID) (*entity.OptionRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOptionRuleNotFound) {
			return nil, ErrOptionRuleNotFound
		}
		return nil, fmt.Errorf("failed to get option rule: %w", err)
	}
	return rule, nil
}

func (s *RuleService) GetAllOptionRules(ctx context.Context) ([]entity.OptionRule, error) {
	rules, err := s.ruleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get option rules: %w", err)
	}
	return rules, nil
}

func (s *RuleService) UpdateOptionRule(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionRuleRequest) (*entity.OptionRule, error) {
	rule, err := s.GetOptionRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RuleType != nil {
		if !req.RuleType.IsValid() {
			return nil, ErrInvalidRuleType
		}
		rule.RuleType = *req.RuleType
	}
	ifID, thenID := rule.IfOptionID, rule.ThenOptionID
	if req.IfOptionID != nil {
		ifID = *req.IfOptionID
	}
	if req.ThenOptionID != nil {
		thenID = *req.ThenOptionID
	}
	if ifID != rule.IfOptionID || thenID != rule.ThenOptionID {
		if err := s.checkOptionPair(ctx, ifID, thenID); err != nil {
			return nil, err
		}
		rule.IfOptionID, rule.ThenOptionID = ifID, thenID
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.UpdatedAt = time.Now()

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrOptionRuleNotFound) {
			return nil, ErrOptionRuleNotFound
		}
		return nil, fmt.Errorf("failed to update option rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionRulesChanged, rule.ID, nil)
	return rule, nil
}

func (s *RuleService) DeleteOptionRule(ctx context.Context, id uuid.UUID) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOptionRuleNotFound) {
			return ErrOptionRuleNotFound
		}
		return fmt.Errorf("failed to delete option rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionRulesChanged, id, nil)
	return nil
}

// === OPTION PRICE RULES ===

func (s *RuleService) CreateOptionPriceRule(ctx context.Context, req *entity.CreateOptionPriceRuleRequest) (*entity.OptionPriceRule, error) {
	if err := s.checkOptionPair(ctx, req.TargetOptionID, req.DependentOptionID); err != nil {
		return nil, err
	}

	now := time.Now()
	rule := &entity.OptionPriceRule{
		ID:                uuid.New(),
		Price:             req.Price,
		TargetOptionID:    req.TargetOptionID,
		DependentOptionID: req.DependentOptionID,
		IsActive:          boolOr(req.IsActive, true),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.priceRuleRepo.Create(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create option price rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionPriceRulesChanged, rule.ID, &rule.Price)
	return rule, nil
}

func (s *RuleService) GetOptionPriceRule(ctx context.Context, id uuid.UUID) (*entity.OptionPriceRule, error) {
	rule, err := s.priceRuleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOptionPriceRuleNotFound) {
			return nil, ErrOptionPriceRuleNotFound
		}
		return nil, fmt.Errorf("failed to get option price rule: %w", err)
	}
	return rule, nil
}

func (s *RuleService) GetAllOptionPriceRules(ctx context.Context) ([]entity.OptionPriceRule, error) {
	rules, err := s.priceRuleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get option price rules: %w", err)
	}
	return rules, nil
}

func (s *RuleService) UpdateOptionPriceRule(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionPriceRuleRequest) (*entity.OptionPriceRule, error) {
	rule, err := s.GetOptionPriceRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		rule.Price = *req.Price
	}
	targetID, dependentID := rule.TargetOptionID, rule.DependentOptionID
	if req.TargetOptionID != nil {
		targetID = *req.TargetOptionID
	}
	if req.DependentOptionID != nil {
		dependentID = *req.DependentOptionID
	}
	if targetID != rule.TargetOptionID || dependentID != rule.DependentOptionID {
		if err := s.checkOptionPair(ctx, targetID, dependentID); err != nil {
			return nil, err
		}
		rule.TargetOptionID, rule.DependentOptionID = targetID, dependentID
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.UpdatedAt = time.Now()

	if err := s.priceRuleRepo.Update(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrOptionPriceRuleNotFound) {
			return nil, ErrOptionPriceRuleNotFound
		}
		return nil, fmt.Errorf("failed to update option price rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionPriceRulesChanged, rule.ID, &rule.Price)
	return rule, nil
}

func (s *RuleService) DeleteOptionPriceRule(ctx context.Context, id uuid.UUID) error {
	if err := s.priceRuleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOptionPriceRuleNotFound) {
			return ErrOptionPriceRuleNotFound
		}
		return fmt.Errorf("failed to delete option price rule: %w", err)
	}

	s.events.publish(ctx, entity.EventOptionPriceRulesChanged, id, nil)
	return nil
}

// checkOptionPair обе опции различны и существуют
func (s *RuleService) checkOptionPair(ctx context.Context, first, second uuid.UUID) error {
	if first == second {
		return ErrSelfReferencingRule
	}
	for _, id := range []uuid.UUID{first, second} {
		if _, err := s.optionRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrOptionNotFound) {
				return fmt.Errorf("%w: %s", ErrOptionNotFound, id)
			}
			return fmt.Errorf("failed to get option: %w", err)
		}
	}
	return nil
}
