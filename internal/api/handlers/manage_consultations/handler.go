package manage_consultations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные параметры услуги"
	msgNotFound           = "услуга не найдена"
)

// Handler обслуживает управление типами консультаций (операции персонала)
type Handler struct {
	service ConsultationService
	logger  Logger
}

func NewHandler(service ConsultationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/staff/services
// В отличие от публичного каталога возвращает и неактивные услуги
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /staff/services - Failed to list consultation types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/services - %d consultation types returned", len(resp.Consultations))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleCreate POST /api/v1/staff/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	consultation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("POST /staff/services - Invalid consultation type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("POST /staff/services - Failed to create consultation type: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/services - Consultation type created: service_id=%d", consultation.ID)
	handlers.RespondJSON(w, http.StatusCreated, consultation)
}

// HandleUpdate PATCH /api/v1/staff/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /staff/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	consultation, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /staff/services/{id} - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PATCH /staff/services/{id} - Invalid update: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("PATCH /staff/services/{id} - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/services/{id} - Consultation type updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, consultation)
}
