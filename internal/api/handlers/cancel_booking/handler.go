package cancel_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ConsultationService/pkg/reference"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReference   = "некорректный номер бронирования"
	msgMissingEmail       = "отсутствует email"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
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

// Handle PATCH /api/v1/bookings/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reference из URL
	vars := mux.Vars(r)
	ref := vars["reference"]

	if !reference.IsValid(ref) {
		h.logger.Warn("PATCH /bookings/{reference}/cancel - Invalid reference format: %s", ref)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{reference}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		h.logger.Warn("PATCH /bookings/{reference}/cancel - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	booking, err := h.service.Cancel(r.Context(), ref, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Booking not found: reference=%s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Access denied: reference=%s", ref)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Cannot cancel: reference=%s, error=%v", ref, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{reference}/cancel - Failed: reference=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{reference}/cancel - Booking cancelled: reference=%s", ref)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
