package manage_consultations

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations/models"
)

type ConsultationService interface {
	List(ctx context.Context, onlyActive bool) (*models.ConsultationListResponse, error)
	Create(ctx context.Context, req *models.CreateConsultationRequest) (*models.ConsultationResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateConsultationRequest) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
