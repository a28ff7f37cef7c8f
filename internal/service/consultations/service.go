package consultations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations/models"
)

// Service сервис управления типами консультаций
type Service struct {
	consultationRepo ConsultationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса типов консультаций
func NewService(consultationRepo ConsultationRepository, logger Logger) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		logger:           logger,
	}
}

// List получает типы консультаций.
// Публичный каталог запрашивает только активные, персонал - все.
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.ConsultationListResponse, error) {
	consultations, err := s.consultationRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultationList(consultations), nil
}

// GetByID получает тип консультации по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("GetByID: consultation type id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("GetByID: repository error for consultation type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultation(consultation), nil
}

// Create создает тип консультации
func (s *Service) Create(ctx context.Context, req *models.CreateConsultationRequest) (*models.ConsultationResponse, error) {
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: invalid consultation type: %v", err)
		return nil, err
	}

	consultation := &domain.ConsultationType{
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		DurationMinutes:     req.DurationMinutes,
		BufferBeforeMinutes: req.BufferBeforeMinutes,
		BufferAfterMinutes:  req.BufferAfterMinutes,
		Price:               req.Price,
		Status:              domain.ConsultationActive,
	}

	created, err := s.consultationRepo.Create(ctx, consultation)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: consultation type id=%d %q created", created.ID, created.Name)
	return models.FromDomainConsultation(created), nil
}

// Update обновляет тип консультации.
// Изменение длительности не затрагивает существующие бронирования:
// их длительность зафиксирована в момент создания.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConsultationRequest) (*models.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Update: consultation type id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("Update: repository error for consultation type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := applyUpdates(consultation, req); err != nil {
		s.logger.Warn("Update: invalid update for consultation type id=%d: %v", id, err)
		return nil, err
	}

	if err := s.consultationRepo.Update(ctx, consultation); err != nil {
		s.logger.Error("Update: repository error for consultation type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: consultation type id=%d updated", id)
	return models.FromDomainConsultation(consultation), nil
}

// validateCreate проверяет параметры нового типа консультации
func validateCreate(req *models.CreateConsultationRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration_minutes must be in [%d..%d]", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.BufferBeforeMinutes < 0 || req.BufferBeforeMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer_before_minutes must be in [0..%d]", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if req.BufferAfterMinutes < 0 || req.BufferAfterMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer_after_minutes must be in [0..%d]", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	return nil
}

// applyUpdates применяет изменения запроса к типу консультации
func applyUpdates(c *domain.ConsultationType, req *models.UpdateConsultationRequest) error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration_minutes must be in [%d..%d]", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		c.DurationMinutes = *req.DurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		if *req.BufferBeforeMinutes < 0 || *req.BufferBeforeMinutes > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: buffer_before_minutes must be in [0..%d]", ErrInvalidInput, domain.MaxBufferMinutes)
		}
		c.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		if *req.BufferAfterMinutes < 0 || *req.BufferAfterMinutes > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: buffer_after_minutes must be in [0..%d]", ErrInvalidInput, domain.MaxBufferMinutes)
		}
		c.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
		}
		c.Price = *req.Price
	}
	if req.Status != nil {
		status := domain.ConsultationStatus(*req.Status)
		if status != domain.ConsultationActive && status != domain.ConsultationInactive {
			return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
		}
		c.Status = status
	}
	return nil
}
