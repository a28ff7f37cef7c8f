package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Request модели

// CreateConsultationRequest запрос на создание типа консультации
type CreateConsultationRequest struct {
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes,omitempty"`
	Price               float64 `json:"price"`
}

// UpdateConsultationRequest запрос на обновление типа консультации
type UpdateConsultationRequest struct {
	Name                *string  `json:"name,omitempty"`
	Description         *string  `json:"description,omitempty"`
	DurationMinutes     *int     `json:"durationMinutes,omitempty"`
	BufferBeforeMinutes *int     `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes  *int     `json:"bufferAfterMinutes,omitempty"`
	Price               *float64 `json:"price,omitempty"`
	Status              *string  `json:"status,omitempty"` // active | inactive
}

// Response модели

// ConsultationResponse ответ с данными типа консультации
type ConsultationResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Price               float64 `json:"price"`
	Status              string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConsultationListResponse ответ со списком типов консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
}

// Методы конвертации

// FromDomainConsultation конвертирует domain модель в DTO
func FromDomainConsultation(c *domain.ConsultationType) *ConsultationResponse {
	if c == nil {
		return nil
	}

	return &ConsultationResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Description:         c.Description,
		DurationMinutes:     c.DurationMinutes,
		BufferBeforeMinutes: c.BufferBeforeMinutes,
		BufferAfterMinutes:  c.BufferAfterMinutes,
		Price:               c.Price,
		Status:              string(c.Status),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromDomainConsultationList конвертирует список domain моделей в DTO
func FromDomainConsultationList(consultations []*domain.ConsultationType) *ConsultationListResponse {
	if consultations == nil {
		return &ConsultationListResponse{Consultations: []ConsultationResponse{}}
	}

	resp := &ConsultationListResponse{
		Consultations: make([]ConsultationResponse, len(consultations)),
	}

	for i, c := range consultations {
		if cResp := FromDomainConsultation(c); cResp != nil {
			resp.Consultations[i] = *cResp
		}
	}

	return resp
}
