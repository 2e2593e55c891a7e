package repository

import (
	"context"
	"fmt"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type ReservationRepository interface {
	// Create books the slot. idempotencyKey lets the backend collapse retries.
	Create(ctx context.Context, req entity.ReservationRequest, idempotencyKey string) (*entity.Reservation, error)
}

type reservationRepository struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewReservationRepository(api *apiclient.Client, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		api: api,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, req entity.ReservationRequest, idempotencyKey string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	if err := r.api.PostJSON(ctx, "create_reservation", "/reservations", req, idempotency(idempotencyKey), &reservation); err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.Int64("court_id", req.CourtID),
			zap.String("date", req.Date),
			zap.String("start_time", req.StartTime),
		)
		return nil, fmt.Errorf("%w: %w", ErrCreateReservation, err)
	}

	if reservation.ID == 0 {
		r.log.Error("Reservation created without id", zap.Int64("court_id", req.CourtID))
		return nil, fmt.Errorf("%w: backend returned no id", ErrCreateReservation)
	}

	return &reservation, nil
}
