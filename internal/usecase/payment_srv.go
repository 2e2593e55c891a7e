package usecase

import (
	"context"
	"errors"
	"fmt"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/data/repository"
	"padel-booking/internal/wizard"
	"padel-booking/pkg/metrics"

	"go.uber.org/zap"
)

type PaymentService interface {
	// Reserve creates the backend reservation the payment is made for.
	Reserve(ctx context.Context, draft wizard.Draft, idempotencyKey string) (*entity.Reservation, error)
	Submit(ctx context.Context, sub entity.PaymentSubmission) (*entity.PaymentResult, error)
}

type paymentService struct {
	reservations repository.ReservationRepository
	payments     repository.PaymentRepository
	metrics      *metrics.Metrics
	log          *zap.Logger
}

func NewPaymentService(repo *repository.Repository, m *metrics.Metrics, log *zap.Logger) PaymentService {
	return &paymentService{
		reservations: repo.Reservation,
		payments:     repo.Payment,
		metrics:      m,
		log:          log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Reserve(ctx context.Context, draft wizard.Draft, idempotencyKey string) (*entity.Reservation, error) {
	if draft.Court == nil || draft.TimeSlot == nil || draft.UserDetails == nil {
		return nil, fmt.Errorf("reserve: %w", wizard.ErrBrokenDraft)
	}

	reservation, err := s.reservations.Create(ctx, entity.ReservationRequest{
		CourtID:   draft.Court.ID,
		Date:      draft.DateString(),
		StartTime: draft.TimeSlot.StartTime,
		EndTime:   draft.TimeSlot.EndTime,
		Name:      draft.UserDetails.Name,
		Email:     draft.UserDetails.Email,
		Phone:     draft.UserDetails.Phone,
	}, idempotencyKey)
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("court_id", draft.Court.ID),
		zap.String("date", draft.DateString()),
	)
	return reservation, nil
}

func (s *paymentService) Submit(ctx context.Context, sub entity.PaymentSubmission) (*entity.PaymentResult, error) {
	result, err := s.payments.Process(ctx, sub)
	s.metrics.ObservePayment(string(sub.Method), err == nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment accepted",
		zap.String("method", string(sub.Method)),
		zap.Int64("reservation_id", sub.ReservationID),
		zap.Int64("payment_id", result.PaymentID),
	)
	return result, nil
}

type CheckoutService interface {
	// Pay submits the stand-alone payment form.
	Pay(ctx context.Context, payment entity.SimplePayment, idempotencyKey string) (*entity.PaymentResult, error)
}

type checkoutService struct {
	payments repository.PaymentRepository
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewCheckoutService(repo repository.PaymentRepository, m *metrics.Metrics, log *zap.Logger) CheckoutService {
	return &checkoutService{
		payments: repo,
		metrics:  m,
		log:      log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) Pay(ctx context.Context, payment entity.SimplePayment, idempotencyKey string) (*entity.PaymentResult, error) {
	if payment.PaymentType == "" {
		return nil, errors.New("checkout: payment type is required")
	}

	// a disconnecting browser must not leave the charge in an unknown state
	result, err := s.payments.ProcessSimple(context.WithoutCancel(ctx), payment, idempotencyKey)
	s.metrics.ObservePayment(string(payment.PaymentType), err == nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("Simple payment accepted",
		zap.String("method", string(payment.PaymentType)),
		zap.Int64("payment_id", result.PaymentID),
	)
	return result, nil
}
