package consultations

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// ConsultationRepository интерфейс репозитория типов консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, ct *domain.ConsultationType) (*domain.ConsultationType, error)
	GetByID(ctx context.Context, id int64) (*domain.ConsultationType, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.ConsultationType, error)
	Update(ctx context.Context, ct *domain.ConsultationType) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
