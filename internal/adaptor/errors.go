package adaptor

import (
	"errors"
	"net/http"

	"padel-booking/internal/data/repository"
	"padel-booking/internal/usecase"
	"padel-booking/internal/wizard"
	"padel-booking/pkg/apiclient"

	"go.uber.org/zap"
)

const (
	msgStaleStep  = "La reserva cambió en otra pestaña. Revisa el paso actual."
	msgConfirmed  = "La reserva ya fue confirmada."
	msgUnexpected = "Ocurrió un error inesperado. Inténtalo de nuevo."
)

// failure is how a service error is shown: a status code, an optional
// page banner and optional inline field errors.
type failure struct {
	status int
	banner string
	fields map[string]string
}

// classifyError maps service errors onto HTTP statuses and user messages.
func classifyError(log *zap.Logger, err error, operation string) failure {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Debug(operation+" validation failed",
			zap.Any("errors", validationErr.Fields),
			zap.String("operation", operation))
		return failure{status: http.StatusUnprocessableEntity, fields: validationErr.Fields}

	case errors.Is(err, repository.ErrPayment):
		status := http.StatusPaymentRequired
		if apiclient.IsTransient(err) {
			status = http.StatusBadGateway
		}
		log.Warn(operation+" failed - payment not accepted",
			zap.Error(err),
			zap.String("operation", operation))
		return failure{status: status, banner: repository.PaymentMessage(err)}

	case errors.Is(err, repository.ErrCreateReservation):
		banner := apiclient.MessageOf(err)
		if banner == "" {
			banner = repository.ErrCreateReservation.Error()
		}
		log.Warn(operation+" failed - reservation not created",
			zap.Error(err),
			zap.String("operation", operation))
		return failure{status: http.StatusBadGateway, banner: banner}

	case errors.Is(err, repository.ErrLoadCourts),
		errors.Is(err, repository.ErrLoadAvailability):
		log.Warn(operation+" failed - backend unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		banner := repository.ErrLoadAvailability.Error()
		if errors.Is(err, repository.ErrLoadCourts) {
			banner = repository.ErrLoadCourts.Error()
		}
		return failure{status: http.StatusBadGateway, banner: banner}

	case errors.Is(err, usecase.ErrCourtNotFound),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrDateOutOfRange):
		log.Warn(operation+" failed - selection no longer valid",
			zap.Error(err),
			zap.String("operation", operation))
		return failure{status: http.StatusConflict, banner: sentinelMessage(err)}

	case errors.Is(err, wizard.ErrTerminal):
		return failure{status: http.StatusConflict, banner: msgConfirmed}

	case errors.Is(err, wizard.ErrOutOfOrder),
		errors.Is(err, wizard.ErrCannotGoBack),
		errors.Is(err, wizard.ErrNoPayment),
		errors.Is(err, wizard.ErrEmptySlice):
		log.Warn(operation+" failed - invalid wizard state",
			zap.Error(err),
			zap.String("operation", operation))
		return failure{status: http.StatusConflict, banner: msgStaleStep}

	default:
		log.Error(operation+" failed - internal error",
			zap.Error(err),
			zap.String("operation", operation))
		return failure{status: http.StatusInternalServerError, banner: msgUnexpected}
	}
}

func sentinelMessage(err error) string {
	for _, sentinel := range []error{usecase.ErrCourtNotFound, usecase.ErrSlotUnavailable, usecase.ErrDateOutOfRange} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return msgUnexpected
}
