package usecase

import (
	"context"
	"fmt"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/data/repository"

	"go.uber.org/zap"
)

type CourtService interface {
	GetCourts(ctx context.Context) ([]entity.Court, error)
	// FindCourt looks id up in a freshly fetched catalog.
	FindCourt(ctx context.Context, id int64) (*entity.Court, error)
}

type courtService struct {
	repo repository.CourtRepository
	log  *zap.Logger
}

func NewCourtService(repo repository.CourtRepository, log *zap.Logger) CourtService {
	return &courtService{
		repo: repo,
		log:  log.With(zap.String("service", "court")),
	}
}

func (s *courtService) GetCourts(ctx context.Context) ([]entity.Court, error) {
	courts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *courtService) FindCourt(ctx context.Context, id int64) (*entity.Court, error) {
	courts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range courts {
		if c.ID == id {
			court := c
			return &court, nil
		}
	}

	s.log.Warn("Court not in catalog", zap.Int64("court_id", id))
	return nil, fmt.Errorf("court %d: %w", id, ErrCourtNotFound)
}
