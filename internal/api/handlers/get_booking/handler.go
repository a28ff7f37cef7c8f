package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings"
	"github.com/m04kA/SMC-ConsultationService/pkg/reference"
)

const (
	msgInvalidReference = "некорректный номер бронирования"
	msgMissingEmail     = "отсутствует параметр email"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{reference}?email=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reference из URL
	vars := mux.Vars(r)
	ref := vars["reference"]

	if !reference.IsValid(ref) {
		h.logger.Warn("GET /bookings/{reference} - Invalid reference format: %s", ref)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	// Клиент подтверждает владение бронированием своим email
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /bookings/{reference} - Missing email parameter")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), ref, email)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Booking not found: reference=%s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{reference} - Access denied: reference=%s", ref)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{reference} - Failed: reference=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{reference} - Booking retrieved: reference=%s", ref)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
