package repository

import (
	"padel-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type Repository struct {
	Court       CourtRepository
	Reservation ReservationRepository
	Payment     PaymentRepository
	Session     SessionRepository
}

func NewRepository(api *apiclient.Client, sessions SessionRepository, log *zap.Logger) *Repository {
	return &Repository{
		Court:       NewCourtRepository(api, log),
		Reservation: NewReservationRepository(api, log),
		Payment:     NewPaymentRepository(api, log),
		Session:     sessions,
	}
}
