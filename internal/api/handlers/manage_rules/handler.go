package manage_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/rules"
	"github.com/m04kA/SMC-ConsultationService/internal/service/rules/models"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректные параметры правила"
	msgNotFound           = "правило не найдено"
)

// Handler обслуживает CRUD правил расписания (операции персонала)
type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/staff/rules
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("POST /staff/rules - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /staff/rules - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/rules - Rule created: rule_id=%d, type=%s", rule.ID, rule.RuleType)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}

// HandleList GET /api/v1/staff/rules
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /staff/rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/rules - %d rules returned", len(resp.Rules))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleGet GET /api/v1/staff/rules/{ruleId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r, "GET")
	if !ok {
		return
	}

	rule, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondRuleError(w, "GET", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rule)
}

// HandleUpdate PUT /api/v1/staff/rules/{ruleId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r, "PUT")
	if !ok {
		return
	}

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondRuleError(w, "PUT", id, err)
		return
	}

	h.logger.Info("PUT /staff/rules/{id} - Rule updated: rule_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, rule)
}

// HandleDelete DELETE /api/v1/staff/rules/{ruleId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r, "DELETE")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondRuleError(w, "DELETE", id, err)
		return
	}

	h.logger.Info("DELETE /staff/rules/{id} - Rule deleted: rule_id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// ruleID извлекает и валидирует ruleId из URL
func (h *Handler) ruleID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /staff/rules/{id} - Invalid rule ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondRuleError(w http.ResponseWriter, method string, id int64, err error) {
	switch {
	case errors.Is(err, rules.ErrRuleNotFound):
		h.logger.Warn("%s /staff/rules/{id} - Rule not found: rule_id=%d", method, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, rules.ErrInvalidInput):
		h.logger.Warn("%s /staff/rules/{id} - Invalid rule: rule_id=%d, error=%v", method, id, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s /staff/rules/{id} - Failed: rule_id=%d, error=%v", method, id, err)
		handlers.RespondInternalError(w)
	}
}
