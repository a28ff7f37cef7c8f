package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание правила расписания
type CreateRuleRequest struct {
	RuleType     string  `json:"ruleType"`               // weekly | date_override | block
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 0=воскресенье ... 6=суббота
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "10:00"
	EndTime      string  `json:"endTime"`                // "18:00"
	IsAvailable  *bool   `json:"isAvailable,omitempty"`  // по умолчанию true, для block игнорируется
	ServiceID    *int64  `json:"serviceId,omitempty"`    // nil = применяется ко всем услугам
	Priority     int     `json:"priority,omitempty"`
}

// UpdateRuleRequest запрос на обновление правила расписания
type UpdateRuleRequest struct {
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	ServiceID   *int64  `json:"serviceId,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// Response модели

// RuleResponse ответ с данными правила расписания
type RuleResponse struct {
	ID           int64   `json:"id"`
	RuleType     string  `json:"ruleType"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	IsAvailable  bool    `json:"isAvailable"`
	ServiceID    *int64  `json:"serviceId,omitempty"`
	Priority     int     `json:"priority"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:          r.ID,
		RuleType:    string(r.RuleType),
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		IsAvailable: r.IsAvailable,
		ServiceID:   r.ServiceID,
		Priority:    r.Priority,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.SpecificDate != nil {
		dateStr := r.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &dateStr
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	if rules == nil {
		return &RuleListResponse{Rules: []RuleResponse{}}
	}

	resp := &RuleListResponse{
		Rules: make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules[i] = *ruleResp
		}
	}

	return resp
}
