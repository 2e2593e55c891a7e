package repository

import (
	"errors"
)

var (
	ErrLoadCourts        = errors.New("Error al cargar las canchas")
	ErrLoadAvailability  = errors.New("Error al cargar la disponibilidad")
	ErrCreateReservation = errors.New("Error al crear la reserva")
	ErrPayment           = errors.New("Error procesando el pago")
)

// PaymentError is a payment the backend refused or could not process.
// Message is safe to show to the payer.
type PaymentError struct {
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PaymentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPayment}
	}
	return []error{ErrPayment, e.Err}
}

// PaymentMessage returns the text to show for a failed payment.
func PaymentMessage(err error) string {
	var payErr *PaymentError
	if errors.As(err, &payErr) && payErr.Message != "" {
		return payErr.Message
	}
	return ErrPayment.Error()
}
