package usecase

import (
	"padel-booking/internal/data/repository"
	"padel-booking/pkg/metrics"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Court    CourtService
	Schedule ScheduleService
	Payment  PaymentService
	Booking  BookingService
	Checkout CheckoutService
}

func NewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) *Service {
	court := NewCourtService(repo.Court, log)
	schedule := NewScheduleService(repo.Court, config.Booking.DaysAhead, log)
	payment := NewPaymentService(repo, m, log)

	return &Service{
		Court:    court,
		Schedule: schedule,
		Payment:  payment,
		Booking:  NewBookingService(repo.Session, court, schedule, payment, config, m, log),
		Checkout: NewCheckoutService(repo.Payment, m, log),
	}
}
