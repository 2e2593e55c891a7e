package usecase

import (
	"context"
	"fmt"
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/data/repository"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

type ScheduleService interface {
	// Days lists the dates offered by the date strip, starting today.
	Days(now time.Time) []time.Time
	// ParseDay parses a YYYY-MM-DD value and checks it is one of Days(now).
	ParseDay(now time.Time, value string) (time.Time, error)
	Availability(ctx context.Context, courtID int64, date string) ([]entity.Slot, error)
	// FindSlot checks against fresh availability that slot can be booked.
	FindSlot(ctx context.Context, courtID int64, date string, slot entity.Slot) (*entity.Slot, error)
}

type scheduleService struct {
	repo      repository.CourtRepository
	daysAhead int
	log       *zap.Logger
}

func NewScheduleService(repo repository.CourtRepository, daysAhead int, log *zap.Logger) ScheduleService {
	if daysAhead < 1 {
		daysAhead = 7
	}
	return &scheduleService{
		repo:      repo,
		daysAhead: daysAhead,
		log:       log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) Days(now time.Time) []time.Time {
	return utils.UpcomingDays(now, s.daysAhead)
}

func (s *scheduleService) ParseDay(now time.Time, value string) (time.Time, error) {
	day, err := utils.ParseDate(value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, ErrDateOutOfRange)
	}

	for _, d := range s.Days(now) {
		if utils.SameDay(d, day) {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %s: %w", value, ErrDateOutOfRange)
}

func (s *scheduleService) Availability(ctx context.Context, courtID int64, date string) ([]entity.Slot, error) {
	slots, err := s.repo.CheckAvailability(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		s.log.Debug("No availability", zap.Int64("court_id", courtID), zap.String("date", date))
	}
	return slots, nil
}

func (s *scheduleService) FindSlot(ctx context.Context, courtID int64, date string, slot entity.Slot) (*entity.Slot, error) {
	slots, err := s.repo.CheckAvailability(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	for _, candidate := range slots {
		if candidate.Same(slot) {
			found := candidate
			return &found, nil
		}
	}

	s.log.Warn("Slot not available",
		zap.Int64("court_id", courtID),
		zap.String("date", date),
		zap.String("slot", slot.Key()),
	)
	return nil, fmt.Errorf("slot %s on %s: %w", slot.Key(), date, ErrSlotUnavailable)
}

