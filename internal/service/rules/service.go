package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-ConsultationService/internal/service/rules/models"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Service сервис управления правилами расписания (операции персонала)
type Service struct {
	ruleRepo RuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// Create создает правило расписания
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	rule, err := s.buildRule(req)
	if err != nil {
		s.logger.Warn("Create: invalid rule: %v", err)
		return nil, err
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: rule id=%d type=%s created", created.ID, created.RuleType)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RuleResponse, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("GetByID: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetByID: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// List получает все правила расписания
func (s *Service) List(ctx context.Context) (*models.RuleListResponse, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// Update обновляет изменяемые поля правила.
// Тип правила и его привязка к дате/дню недели не меняются - вместо
// этого правило удаляется и создается заново.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := applyUpdates(rule, req); err != nil {
		s.logger.Warn("Update: invalid update for rule id=%d: %v", id, err)
		return nil, err
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: rule id=%d updated", id)
	return models.FromDomainRule(rule), nil
}

// Delete удаляет правило расписания
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: rule id=%d deleted", id)
	return nil
}

// buildRule валидирует запрос и собирает domain модель
func (s *Service) buildRule(req *models.CreateRuleRequest) (*domain.AvailabilityRule, error) {
	ruleType := domain.RuleType(req.RuleType)

	rule := &domain.AvailabilityRule{
		RuleType:  ruleType,
		ServiceID: req.ServiceID,
		Priority:  req.Priority,
	}

	switch ruleType {
	case domain.RuleWeekly:
		if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: weekly rule requires day_of_week in [0..6]", ErrInvalidInput)
		}
		rule.DayOfWeek = req.DayOfWeek
	case domain.RuleDateOverride, domain.RuleBlock:
		if req.SpecificDate == nil {
			return nil, fmt.Errorf("%w: %s rule requires specific_date", ErrInvalidInput, ruleType)
		}
		date, err := time.Parse(domain.DateFormat, *req.SpecificDate)
		if err != nil {
			return nil, fmt.Errorf("%w: specific_date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		rule.SpecificDate = &date
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidInput, req.RuleType)
	}

	start, end, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	rule.StartTime = start
	rule.EndTime = end

	// Блокировки всегда закрывают время; для остальных типов по умолчанию открытое окно
	rule.IsAvailable = ruleType != domain.RuleBlock
	if req.IsAvailable != nil && ruleType != domain.RuleBlock {
		rule.IsAvailable = *req.IsAvailable
	}

	if rule.Priority < 0 {
		return nil, fmt.Errorf("%w: priority must be non-negative", ErrInvalidInput)
	}

	return rule, nil
}

// applyUpdates применяет изменения запроса к существующему правилу
func applyUpdates(rule *domain.AvailabilityRule, req *models.UpdateRuleRequest) error {
	startStr := rule.StartTime.String()
	endStr := rule.EndTime.String()
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	if req.EndTime != nil {
		endStr = *req.EndTime
	}

	start, end, err := parseTimeRange(startStr, endStr)
	if err != nil {
		return err
	}
	rule.StartTime = start
	rule.EndTime = end

	if req.IsAvailable != nil && rule.RuleType != domain.RuleBlock {
		rule.IsAvailable = *req.IsAvailable
	}
	if req.ServiceID != nil {
		rule.ServiceID = req.ServiceID
	}
	if req.Priority != nil {
		if *req.Priority < 0 {
			return fmt.Errorf("%w: priority must be non-negative", ErrInvalidInput)
		}
		rule.Priority = *req.Priority
	}

	return nil
}

// parseTimeRange разбирает и валидирует временное окно правила
func parseTimeRange(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: start_time must be in HH:MM format", ErrInvalidInput)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: end_time must be in HH:MM format", ErrInvalidInput)
	}

	if start.Minutes() >= end.Minutes() {
		return "", "", fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}

	return start, end, nil
}
