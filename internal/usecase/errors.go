package usecase

import (
	"errors"
	"fmt"

	"padel-booking/pkg/utils"
)

var (
	ErrCourtNotFound   = errors.New("La cancha seleccionada no existe")
	ErrSlotUnavailable = errors.New("El horario seleccionado ya no está disponible")
	ErrDateOutOfRange  = errors.New("La fecha seleccionada no está disponible")
)

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
