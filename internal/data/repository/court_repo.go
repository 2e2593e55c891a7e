package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/apiclient"

	"go.uber.org/zap"
)

type CourtRepository interface {
	FindAll(ctx context.Context) ([]entity.Court, error)
	// CheckAvailability lists the open slots of a court on date (YYYY-MM-DD).
	// An empty list is a valid answer.
	CheckAvailability(ctx context.Context, courtID int64, date string) ([]entity.Slot, error)
}

type courtRepository struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewCourtRepository(api *apiclient.Client, log *zap.Logger) CourtRepository {
	return &courtRepository{
		api: api,
		log: log.With(zap.String("repository", "court")),
	}
}

func (r *courtRepository) FindAll(ctx context.Context) ([]entity.Court, error) {
	var courts []entity.Court
	if err := r.api.GetJSON(ctx, "get_courts", "/courts", nil, &courts); err != nil {
		r.log.Error("Failed to load courts", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadCourts, err)
	}

	return courts, nil
}

func (r *courtRepository) CheckAvailability(ctx context.Context, courtID int64, date string) ([]entity.Slot, error) {
	path := "/courts/" + strconv.FormatInt(courtID, 10) + "/availability"

	var availability entity.Availability
	if err := r.api.GetJSON(ctx, "check_availability", path, url.Values{"date": {date}}, &availability); err != nil {
		r.log.Error("Failed to load availability",
			zap.Error(err),
			zap.Int64("court_id", courtID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("%w: %w", ErrLoadAvailability, err)
	}

	if availability.AvailableSlots == nil {
		return []entity.Slot{}, nil
	}
	return availability.AvailableSlots, nil
}
