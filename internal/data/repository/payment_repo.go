package repository

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/apiclient"

	"go.uber.org/zap"
)

const (
	idempotencyHeader = "Idempotency-Key"
	proofField        = "proof"
)

type PaymentRepository interface {
	// Process submits a wizard payment with its proof as multipart form.
	Process(ctx context.Context, sub entity.PaymentSubmission) (*entity.PaymentResult, error)
	// ProcessSimple submits the stand-alone payment form as JSON.
	ProcessSimple(ctx context.Context, payment entity.SimplePayment, idempotencyKey string) (*entity.PaymentResult, error)
}

type paymentRepository struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewPaymentRepository(api *apiclient.Client, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		api: api,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Process(ctx context.Context, sub entity.PaymentSubmission) (*entity.PaymentResult, error) {
	form := apiclient.NewMultipart().
		Field("payment_type", string(sub.Method)).
		Field("email", sub.Email).
		Field("phone", sub.Phone).
		Field("bank", sub.Bank).
		Field("reference", sub.Reference)
	if sub.ReservationID != 0 {
		form.Field("reservation_id", strconv.FormatInt(sub.ReservationID, 10))
	}
	if sub.Proof != nil {
		form.File(proofField, sub.Proof.Filename, sub.Proof.ContentType, sub.Proof.Data)
	}

	var result entity.PaymentResult
	err := r.api.PostMultipart(ctx, "process_payment", "/payments", form, idempotency(sub.IdempotencyKey), &result)

	return r.verdict(&result, err,
		zap.String("method", string(sub.Method)),
		zap.Int64("reservation_id", sub.ReservationID),
		zap.String("idempotency_key", sub.IdempotencyKey),
	)
}

func (r *paymentRepository) ProcessSimple(ctx context.Context, payment entity.SimplePayment, idempotencyKey string) (*entity.PaymentResult, error) {
	var result entity.PaymentResult
	err := r.api.PostJSON(ctx, "process_simple_payment", "/payments/process", payment, idempotency(idempotencyKey), &result)

	return r.verdict(&result, err,
		zap.String("method", string(payment.PaymentType)),
		zap.String("idempotency_key", idempotencyKey),
	)
}

// verdict turns a transport result into a PaymentResult or a *PaymentError.
// A 2xx answer with success=false is a refusal.
func (r *paymentRepository) verdict(result *entity.PaymentResult, err error, fields ...zap.Field) (*entity.PaymentResult, error) {
	if err != nil {
		message := apiclient.MessageOf(err)
		if message == "" {
			message = ErrPayment.Error()
		}
		r.log.Error("Payment request failed", append(fields, zap.Error(err))...)
		return nil, &PaymentError{Message: message, Err: err}
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = ErrPayment.Error()
		}
		r.log.Warn("Payment refused", append(fields, zap.String("message", message))...)
		return nil, &PaymentError{Message: message, Err: errors.New("backend reported success=false")}
	}

	return result, nil
}

func idempotency(key string) http.Header {
	if key == "" {
		return nil
	}
	header := http.Header{}
	header.Set(idempotencyHeader, key)
	return header
}
